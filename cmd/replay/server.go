package main

import (
	"bufio"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/snake_arena/pkg/game"
	"github.com/trytobebee/snake_arena/pkg/proto"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const defaultFrameDelay = 100 * time.Millisecond // 10fps playback

// ReplayServer handles serving replay UI and data
type ReplayServer struct {
	recordDir  string
	frameDelay time.Duration
}

func NewReplayServer(recordDir string) *ReplayServer {
	return &ReplayServer{recordDir: recordDir, frameDelay: defaultFrameDelay}
}

func (s *ReplayServer) Routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		mux.Handle("/static/", http.StripPrefix("/static/", fs))
	}
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/view", s.handleView)
	mux.HandleFunc("/api/records", s.handleList)
	mux.HandleFunc("/ws/replay", s.handleReplayWS)
	return mux
}

type RecordFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Time    time.Time `json:"time"`
	MatchID string    `json:"matchId"`
}

// listRecords returns the recordings in dir, newest first
func listRecords(dir string) ([]RecordFile, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []RecordFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	records := []RecordFile{}
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		// expecting format: game_{matchID}_{timestamp}.jsonl
		matchID := ""
		if parts := strings.Split(strings.TrimSuffix(f.Name(), ".jsonl"), "_"); len(parts) == 3 {
			matchID = parts[1]
		}
		records = append(records, RecordFile{
			Name:    f.Name(),
			Size:    info.Size(),
			Time:    info.ModTime(),
			MatchID: matchID,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

var indexTmpl = template.Must(template.New("index").Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>Snake Arena Replays</title>
    <style>
        body { font-family: monospace; background: #1a202c; color: #fff; padding: 2rem; }
        h1 { color: #48bb78; }
        .file-list { display: grid; gap: 1rem; }
        .file-item {
            background: #2d3748; padding: 1rem; border-radius: 8px;
            display: flex; justify-content: space-between; align-items: center;
        }
        .file-item:hover { background: #4a5568; }
        a { color: #63b3ed; text-decoration: none; font-weight: bold; }
        .meta { color: #a0aec0; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>📼 Replay Library</h1>
    <div class="file-list">
        {{range .}}
        <div class="file-item">
            <div>
                <div class="name">{{.Name}}</div>
                <div class="meta">Match: {{.MatchID}} | Size: {{.Size}} bytes | {{.Time.Format "2006-01-02 15:04:05"}}</div>
            </div>
            <a href="/view?file={{.Name}}">WATCH REPLAY ▶</a>
        </div>
        {{else}}
        <p>No recordings found.</p>
        {{end}}
    </div>
</body>
</html>`))

func (s *ReplayServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	records, err := listRecords(s.recordDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := indexTmpl.Execute(w, records); err != nil {
		log.Println("Template error:", err)
	}
}

func (s *ReplayServer) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := listRecords(s.recordDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (s *ReplayServer) handleView(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("file")
	if filename == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	// Redirect to the static HTML page with the file parameter
	http.Redirect(w, r, "/static/replay.html?file="+filename, http.StatusFound)
}

// recordPath confines the requested name to the records directory
func (s *ReplayServer) recordPath(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) || filepath.Ext(name) != ".jsonl" {
		return "", false
	}
	return filepath.Join(s.recordDir, name), true
}

// Websocket logic
func (s *ReplayServer) handleReplayWS(w http.ResponseWriter, r *http.Request) {
	path, ok := s.recordPath(r.URL.Query().Get("file"))
	if !ok {
		http.Error(w, "invalid record name", http.StatusBadRequest)
		return
	}
	file, err := os.Open(path)
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	delay := s.frameDelay
	if v := r.URL.Query().Get("speed"); v != "" {
		if speed, err := strconv.ParseFloat(v, 64); err == nil && speed > 0 {
			delay = time.Duration(float64(delay) / speed)
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var paused atomic.Bool
	closed := make(chan struct{})

	// Read Loop for controls
	go func() {
		defer close(closed)
		for {
			var cmd struct {
				Command string `json:"command"`
			}
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			switch cmd.Command {
			case "pause":
				paused.Store(true)
			case "resume":
				paused.Store(false)
			}
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	// Stream Loop
	for scanner.Scan() {
		var rec game.StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			log.Println("JSON parse error:", err)
			continue
		}

		for paused.Load() {
			select {
			case <-closed:
				return
			case <-time.After(delay):
			}
		}
		select {
		case <-closed:
			return
		case <-time.After(delay):
		}

		frame := proto.StateFrame(rec.State)
		frame.Meta = map[string]any{"step": rec.Step}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}

	conn.WriteJSON(proto.Frame{Type: "end"})
}
