package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/snake_arena/pkg/game"
	"github.com/trytobebee/snake_arena/pkg/proto"
)

// writeRecording records a few ticks of a seeded match and returns the file name
func writeRecording(t *testing.T, dir string, steps int) string {
	t.Helper()
	g := game.NewGame(game.Options{Seed: 9})
	rec, err := game.NewRecorder(dir, g.ID)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for i := 1; i <= steps; i++ {
		g.Tick()
		rec.RecordStep(game.StepRecord{Step: i, State: g.Snapshot()})
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return filepath.Base(rec.Path())
}

func newTestReplay(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	name := writeRecording(t, dir, 3)

	s := NewReplayServer(dir)
	s.frameDelay = time.Millisecond
	srv := httptest.NewServer(s.Routes(""))
	t.Cleanup(srv.Close)
	return srv, name
}

func TestListRecords(t *testing.T) {
	srv, name := newTestReplay(t)

	resp, err := http.Get(srv.URL + "/api/records")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var records []RecordFile
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != name || records[0].Size == 0 {
		t.Fatalf("unexpected records %+v", records)
	}
	if !strings.Contains(name, records[0].MatchID) || records[0].MatchID == "" {
		t.Errorf("match id not parsed from %s: %q", name, records[0].MatchID)
	}
}

func TestListRecordsMissingDir(t *testing.T) {
	records, err := listRecords(filepath.Join(t.TempDir(), "none"))
	if err != nil || len(records) != 0 {
		t.Errorf("expected empty list, got %v, %v", records, err)
	}
}

func TestReplayStreamsRecording(t *testing.T) {
	srv, name := newTestReplay(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/replay?file=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var steps []float64
	for {
		var f proto.Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if f.Type == "end" {
			break
		}
		if f.Type != "state" || f.State == nil {
			t.Fatalf("unexpected frame %+v", f)
		}
		steps = append(steps, f.Meta["step"].(float64))
	}
	if len(steps) != 3 || steps[0] != 1 || steps[2] != 3 {
		t.Errorf("expected steps 1..3, got %v", steps)
	}
}

func TestReplayRejectsTraversal(t *testing.T) {
	srv, _ := newTestReplay(t)
	for _, q := range []string{"", "../secret.jsonl", "notes.txt"} {
		resp, err := http.Get(srv.URL + "/ws/replay?file=" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("file=%q: expected 400, got %d", q, resp.StatusCode)
		}
	}

	resp, err := http.Get(srv.URL + "/ws/replay?file=missing.jsonl")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for a missing record, got %d", resp.StatusCode)
	}
}
