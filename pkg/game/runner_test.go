package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (f *fakeSubmitter) SubmitScore(ctx context.Context, playerName string, score, level int, theme string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, score)
	return f.err
}

type memHighScores struct {
	best  int
	saves int
}

func (m *memHighScores) Load() (int, error) { return m.best, nil }

func (m *memHighScores) Save(score int) error {
	m.best = score
	m.saves++
	return nil
}

// doomedGame returns a match whose primary snake hits the wall on the
// third tick after eating one power-up
func doomedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, ModeSingle)
	g.TickInterval = 5 * time.Millisecond
	s := g.Primary()
	s.Body = []Cell{{27, 10}}
	g.PowerUps = []PowerUp{{Pos: Cell{28, 10}, Kind: KindSuper}}
	return g
}

func TestRunnerFinishesMatch(t *testing.T) {
	g := doomedGame(t)
	sub := &fakeSubmitter{}
	hs := &memHighScores{best: 5}

	r := NewRunner(g, "tester")
	r.Submitter = sub
	r.HighScores = hs
	frames := 0
	r.OnFrame = func(Snapshot) { frames++ }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Score != 20 {
		t.Errorf("expected final score 20, got %d", res.Score)
	}
	if !res.NewHighScore || res.HighScore != 20 || hs.best != 20 || hs.saves != 1 {
		t.Errorf("high score not updated: %+v store=%+v", res, hs)
	}
	if len(sub.calls) != 1 || sub.calls[0] != 20 {
		t.Errorf("expected exactly one submission of 20, got %v", sub.calls)
	}
	if frames < 3 {
		t.Errorf("expected a frame per tick, got %d", frames)
	}
}

func TestSendAfterMatchEndDoesNotBlock(t *testing.T) {
	r := NewRunner(doomedGame(t), "tester")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sent := make(chan struct{})
	go func() {
		defer close(sent)
		for i := 0; i < 40; i++ {
			r.Send(ctx, Intent{Role: RolePlayer, Direction: DirUp})
		}
	}()
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a finished match")
	}
	select {
	case <-r.Done():
	default:
		t.Error("Done not closed after Run returned")
	}
}

func TestRunnerSwallowsSubmitFailure(t *testing.T) {
	g := doomedGame(t)
	sub := &fakeSubmitter{err: errors.New("service down")}
	hs := &memHighScores{best: 100}

	r := NewRunner(g, "tester")
	r.Submitter = sub
	r.HighScores = hs

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("submission failure must not surface: %v", err)
	}
	if res.NewHighScore || hs.saves != 0 {
		t.Errorf("lower score must not overwrite the high score: %+v", res)
	}
	if len(sub.calls) != 1 {
		t.Errorf("expected one submission attempt, got %d", len(sub.calls))
	}
}

func TestRunnerAppliesIntents(t *testing.T) {
	g := newTestGame(t, ModeSingle)
	g.TickInterval = time.Hour // ticks never fire during the test

	r := NewRunner(g, "tester")
	got := make(chan Snapshot, 8)
	r.OnFrame = func(s Snapshot) { got <- s }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx)
		done <- err
	}()

	<-got // initial frame
	r.Send(ctx, Intent{Role: RolePlayer, Direction: DirUp})
	if snap := <-got; snap.Snakes[0].NextDirection != DirUp {
		t.Errorf("intent not applied, pending=%v", snap.Snakes[0].NextDirection)
	}

	r.TogglePause()
	if snap := <-got; !snap.Paused {
		t.Error("expected paused snapshot")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerRecordsTicks(t *testing.T) {
	dir := t.TempDir()
	g := doomedGame(t)

	rec, err := NewRecorder(dir, g.ID)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	r := NewRunner(g, "tester")
	r.Recorder = rec

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadRecords(rec.Path())
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 recorded ticks, got %d", len(records))
	}
	last := records[len(records)-1]
	if !last.State.GameOver || last.State.Score != 20 || last.Step != 3 {
		t.Errorf("unexpected final record %+v", last)
	}
	if last.State.Snakes[0].Direction != DirRight {
		t.Errorf("direction did not survive the round trip: %v", last.State.Snakes[0].Direction)
	}
}
