package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/game"
	"github.com/trytobebee/snake_arena/pkg/leaderboard"
	"github.com/trytobebee/snake_arena/pkg/proto"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// GameServer hosts one match per websocket connection and the leaderboard API
type GameServer struct {
	settings config.Settings
	store    *leaderboard.Store
	matches  sync.WaitGroup
}

func NewGameServer(settings config.Settings, store *leaderboard.Store) *GameServer {
	return &GameServer{settings: settings, store: store}
}

// Routes wires the static client, the websocket endpoint and the API
func (gs *GameServer) Routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	mux.HandleFunc("/ws", gs.handleWebSocket)
	mux.Handle("/api/leaderboard", leaderboard.NewHandler(gs.store))
	return mux
}

// Wait blocks until every match goroutine has returned
func (gs *GameServer) Wait() {
	gs.matches.Wait()
}

// bestScore reports the leaderboard's top score as the high score. Saving is
// a no-op since the submission itself persists the new best.
type bestScore struct {
	ctx   context.Context
	store *leaderboard.Store
}

func (b bestScore) Load() (int, error) {
	top, err := b.store.Top(b.ctx, 1)
	if err != nil || len(top) == 0 {
		return 0, err
	}
	return top[0].Score, nil
}

func (b bestScore) Save(int) error { return nil }

// matchOptions reads ?mode=&theme=&seed=&auto= over the server defaults
func (gs *GameServer) matchOptions(r *http.Request) (game.Options, proto.Format, error) {
	q := r.URL.Query()
	s := gs.settings
	if v := q.Get("mode"); v != "" {
		s.Mode = v
	}
	if v := q.Get("theme"); v != "" {
		s.Theme = v
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return game.Options{}, "", fmt.Errorf("invalid seed %q", v)
		}
		s.Seed = seed
	}
	if err := s.Validate(); err != nil {
		return game.Options{}, "", err
	}
	format, err := proto.ParseFormat(q.Get("format"))
	if err != nil {
		return game.Options{}, "", err
	}
	auto, _ := strconv.ParseBool(q.Get("auto"))

	return game.Options{
		Mode:     game.Mode(s.Mode),
		Theme:    game.Theme(s.Theme),
		Width:    s.Width,
		Height:   s.Height,
		Seed:     s.Seed,
		AutoPlay: auto,
	}, format, nil
}

// wsSession is the state of one connection
type wsSession struct {
	conn    *websocket.Conn
	format  proto.Format
	writeMu sync.Mutex
	runner  atomic.Pointer[game.Runner]
	restart chan struct{}
	cancel  context.CancelFunc
}

// safeWrite serialises writes; the runner and the reader both send frames
func (s *wsSession) safeWrite(f proto.Frame) error {
	data, err := proto.EncodeFrame(s.format, f)
	if err != nil {
		return err
	}
	msgType := websocket.TextMessage
	if s.format.Binary() {
		msgType = websocket.BinaryMessage
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(msgType, data)
}

func (gs *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	opts, format, err := gs.matchOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = gs.settings.PlayerName
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()
	log.Println("New WebSocket connection from:", r.RemoteAddr)

	gs.matches.Add(1)
	defer gs.matches.Done()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	sess := &wsSession{
		conn:    conn,
		format:  format,
		restart: make(chan struct{}, 1),
		cancel:  cancel,
	}

	go gs.readLoop(ctx, sess, opts.Mode)

	for {
		// a restart sent while the match was still running is stale
		select {
		case <-sess.restart:
		default:
		}

		res, err := gs.runMatch(ctx, sess, opts, name)
		if err != nil {
			return
		}
		if err := sess.safeWrite(proto.Frame{Type: "result", Result: proto.ToProtoResult(res)}); err != nil {
			log.Println("Write error:", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-sess.restart:
		}
	}
}

func (gs *GameServer) runMatch(ctx context.Context, sess *wsSession, opts game.Options, name string) (game.Result, error) {
	g := game.NewGame(opts)
	r := game.NewRunner(g, name)
	r.OnFrame = func(snap game.Snapshot) {
		if err := sess.safeWrite(proto.StateFrame(snap)); err != nil {
			log.Println("Write error:", err)
			sess.cancel()
		}
	}
	r.Submitter = gs.store
	r.HighScores = bestScore{ctx: ctx, store: gs.store}

	if gs.settings.Record {
		rec, err := game.NewRecorder(gs.settings.RecordDir, g.ID)
		if err != nil {
			log.Printf("recording disabled: %v", err)
		} else {
			r.Recorder = rec
			defer rec.Close()
		}
	}

	sess.runner.Store(r)
	defer sess.runner.Store(nil)
	return r.Run(ctx)
}

// readLoop turns client messages into runner input until the socket closes
func (gs *GameServer) readLoop(ctx context.Context, sess *wsSession, mode game.Mode) {
	defer sess.cancel()
	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Read error:", err)
			}
			return
		}

		// Clients may answer in either encoding regardless of the frame format
		decoder := proto.FormatJSON
		if msgType == websocket.BinaryMessage {
			decoder = proto.FormatMsgpack
		}
		var msg proto.ClientMessage
		if err := decoder.Decode(data, &msg); err != nil {
			sess.safeWrite(proto.Frame{Type: "error", Error: err.Error()})
			continue
		}
		gs.handleAction(ctx, sess, msg, mode)
	}
}

func (gs *GameServer) handleAction(ctx context.Context, sess *wsSession, msg proto.ClientMessage, mode game.Mode) {
	r := sess.runner.Load()

	switch msg.Action {
	case "pause":
		if r != nil {
			r.TogglePause()
		}
	case "restart":
		select {
		case sess.restart <- struct{}{}:
		default:
		}
	case "leaderboard":
		top, err := gs.store.Top(ctx, config.DefaultLeaderboardLimit)
		if err != nil {
			sess.safeWrite(proto.Frame{Type: "error", Error: err.Error()})
			return
		}
		sess.safeWrite(proto.Frame{Type: "leaderboard", Leaderboard: proto.ToProtoLeaderboard(top)})
	default:
		in, ok := proto.ToIntent(msg, mode)
		if !ok {
			sess.safeWrite(proto.Frame{Type: "error", Error: "unknown action " + strconv.Quote(msg.Action)})
			return
		}
		if r != nil {
			r.Send(ctx, in)
		}
	}
}
