package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/leaderboard"
	"github.com/trytobebee/snake_arena/pkg/proto"
)

func newTestServer(t *testing.T) (*httptest.Server, *leaderboard.Store) {
	t.Helper()
	settings, err := config.LoadSettings("test", nil)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	gs := NewGameServer(settings, store)
	srv := httptest.NewServer(gs.Routes(""))
	t.Cleanup(func() {
		srv.Close()
		gs.Wait()
		store.Close()
	})
	return srv, store
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readFrame skips frames until one of the wanted type arrives
func readFrame(t *testing.T, conn *websocket.Conn, format proto.Format, want string) proto.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage waiting for %q: %v", want, err)
		}
		if format.Binary() != (msgType == websocket.BinaryMessage) {
			t.Fatalf("unexpected message type %d for %s", msgType, format)
		}
		var f proto.Frame
		if err := format.Decode(data, &f); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if f.Type == want {
			return f
		}
	}
}

func TestWebSocketMatch(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?seed=1&mode=multi")

	first := readFrame(t, conn, proto.FormatJSON, "state")
	if first.State.Mode != "multi" || len(first.State.Snakes) != 2 {
		t.Fatalf("unexpected initial state: %+v", first.State)
	}

	if err := conn.WriteJSON(proto.ClientMessage{Action: "pause"}); err != nil {
		t.Fatal(err)
	}
	for {
		f := readFrame(t, conn, proto.FormatJSON, "state")
		if f.State.Paused {
			break
		}
	}

	if err := conn.WriteJSON(proto.ClientMessage{Action: "fly"}); err != nil {
		t.Fatal(err)
	}
	if f := readFrame(t, conn, proto.FormatJSON, "error"); !strings.Contains(f.Error, "fly") {
		t.Errorf("unexpected error frame %+v", f)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?seed=1")

	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	for {
		var f proto.Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("waiting for result: %v", err)
		}
		if f.Type == "result" {
			break
		}
	}

	// Keys pressed on the game-over screen must not wedge the session
	for i := 0; i < 20; i++ {
		if err := conn.WriteJSON(proto.ClientMessage{Action: "up"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := conn.WriteJSON(proto.ClientMessage{Action: "restart"}); err != nil {
		t.Fatal(err)
	}

	f := readFrame(t, conn, proto.FormatJSON, "state")
	if f.State.GameOver || f.State.Tick != 0 || f.State.Score != 0 {
		t.Errorf("expected a fresh match after restart, got %+v", f.State)
	}
}

func TestWebSocketMsgpackFrames(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?seed=2&format=msgpack")

	f := readFrame(t, conn, proto.FormatMsgpack, "state")
	if f.State == nil || f.State.Width != config.DefaultWidth {
		t.Fatalf("bad msgpack state frame: %+v", f)
	}

	// Text messages are still accepted as JSON
	if err := conn.WriteJSON(proto.ClientMessage{Action: "leaderboard"}); err != nil {
		t.Fatal(err)
	}
	lb := readFrame(t, conn, proto.FormatMsgpack, "leaderboard")
	if len(lb.Leaderboard) != 0 {
		t.Errorf("expected empty leaderboard, got %+v", lb.Leaderboard)
	}
}

func TestBestScoreTracksLeaderboard(t *testing.T) {
	_, store := newTestServer(t)
	best := bestScore{ctx: context.Background(), store: store}

	if n, err := best.Load(); err != nil || n != 0 {
		t.Fatalf("empty leaderboard: got %d, %v", n, err)
	}
	for _, score := range []int{30, 90, 60} {
		if err := store.SubmitScore(context.Background(), "p", score, 1, "neon"); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := best.Load(); err != nil || n != 90 {
		t.Errorf("expected 90, got %d, %v", n, err)
	}
}

func TestRejectsBadOptions(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, q := range []string{"?mode=battle", "?format=xml", "?seed=abc"} {
		resp, err := http.Get(srv.URL + "/ws" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestLeaderboardRoute(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.SubmitScore(context.Background(), "ann", 60, 2, "neon"); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].PlayerName != "ann" {
		t.Errorf("unexpected entries %+v", entries)
	}
}
