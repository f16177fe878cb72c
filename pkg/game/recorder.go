package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StepRecord is one recorded tick
type StepRecord struct {
	Step  int      `json:"step"`
	State Snapshot `json:"state"`
}

// GameRecorder handles asynchronous logging of game steps
type GameRecorder struct {
	file       *os.File
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	dropped    int
}

// RecordFileName builds the file name for a match: game_{matchID}_{timestamp}.jsonl
func RecordFileName(matchID string, at time.Time) string {
	return fmt.Sprintf("game_%s_%d.jsonl", matchID, at.Unix())
}

// NewRecorder creates a new recorder that writes into dir
func NewRecorder(dir, matchID string) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	path := filepath.Join(dir, RecordFileName(matchID, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := &GameRecorder{
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan StepRecord, 1000), // Buffer up to 1000 frames
	}

	// Start background writer
	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// Path returns the file being written
func (r *GameRecorder) Path() string {
	return r.file.Name()
}

// RecordStep queues a record to be written. Non-blocking (drops if full).
func (r *GameRecorder) RecordStep(rec StepRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.recordChan <- rec:
	default:
		// Channel full, drop frame to protect the tick loop
		r.dropped++
	}
}

// Dropped returns how many frames were discarded because the queue was full
func (r *GameRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes the buffer and closes the file
func (r *GameRecorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait() // Wait for writeLoop to finish
	return r.file.Close()
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording frame: %v\n", err)
			continue
		}
	}
	if err := r.writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing recording: %v\n", err)
	}
}

// ReadRecords decodes a recording file written by GameRecorder
func ReadRecords(path string) ([]StepRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record: %w", err)
	}
	defer f.Close()

	var records []StepRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var rec StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return records, fmt.Errorf("failed to parse step %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
