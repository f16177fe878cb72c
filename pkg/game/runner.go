package game

import (
	"context"
	"log"
	"time"
)

// ScoreSubmitter receives the final score once a match ends
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, playerName string, score, level int, theme string) error
}

// HighScoreStore persists the best local score
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Result summarises a finished match
type Result struct {
	Score        int
	Level        int
	HighScore    int
	NewHighScore bool
	Loser        *Role
}

// Runner drives a Game on a timer. It is the only goroutine that touches the
// game, so intents and pause toggles are delivered through channels.
type Runner struct {
	game       *Game
	intents    chan Intent
	pauses     chan struct{}
	done       chan struct{}
	playerName string

	// OnFrame is called after every tick and every input with a fresh snapshot
	OnFrame func(Snapshot)

	Submitter  ScoreSubmitter
	HighScores HighScoreStore
	Recorder   *GameRecorder
}

// NewRunner wraps g; playerName is what the leaderboard sees
func NewRunner(g *Game, playerName string) *Runner {
	return &Runner{
		game:       g,
		intents:    make(chan Intent, 16),
		pauses:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		playerName: playerName,
	}
}

// Game returns the driven match. Only read it from OnFrame or after Run returns.
func (r *Runner) Game() *Game {
	return r.game
}

// Send queues an intent. It blocks only while the queue is full and the
// match is still running; intents sent after Run returns are dropped.
func (r *Runner) Send(ctx context.Context, in Intent) {
	select {
	case r.intents <- in:
	case <-r.done:
	case <-ctx.Done():
	}
}

// Done is closed once Run returns
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// TogglePause requests a pause toggle; repeated requests before the loop
// picks one up collapse into one.
func (r *Runner) TogglePause() {
	select {
	case r.pauses <- struct{}{}:
	default:
	}
}

// Run ticks the match until it ends or ctx is cancelled. Once the match ends
// the high score is updated and the score is submitted exactly once.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	defer close(r.done)
	g := r.game
	log.Printf("match %s started: mode=%s theme=%s", g.ID, g.Mode, g.Theme)

	timer := time.NewTimer(g.EffectiveInterval())
	defer timer.Stop()
	r.emit()

	for {
		select {
		case <-ctx.Done():
			return r.result(), ctx.Err()

		case in := <-r.intents:
			g.ApplyIntent(in)
			r.emit()

		case <-r.pauses:
			g.TogglePause()
			if g.Paused() {
				stopTimer(timer)
			} else {
				// Resume restarts from a fresh interval
				timer.Reset(g.EffectiveInterval())
			}
			r.emit()

		case <-timer.C:
			g.Tick()
			if r.Recorder != nil {
				r.Recorder.RecordStep(StepRecord{Step: g.TickCount, State: g.Snapshot()})
			}
			r.emit()
			if g.Over() {
				return r.finish(ctx), nil
			}
			timer.Reset(g.EffectiveInterval())
		}
	}
}

func (r *Runner) emit() {
	if r.OnFrame != nil {
		r.OnFrame(r.game.Snapshot())
	}
}

func (r *Runner) result() Result {
	return Result{Score: r.game.Score, Level: r.game.Level, Loser: r.game.Loser}
}

// finish updates the local high score and submits to the leaderboard.
// Failures are logged and never block the game-over transition.
func (r *Runner) finish(ctx context.Context) Result {
	g := r.game
	res := r.result()
	log.Printf("match %s over: score=%d level=%d", g.ID, g.Score, g.Level)

	if r.HighScores != nil {
		best, err := r.HighScores.Load()
		if err != nil {
			log.Printf("high score load failed: %v", err)
		}
		res.HighScore = best
		if g.Score > best {
			res.HighScore = g.Score
			res.NewHighScore = true
			if err := r.HighScores.Save(g.Score); err != nil {
				log.Printf("high score save failed: %v", err)
			}
		}
	}

	if r.Submitter != nil {
		if err := r.Submitter.SubmitScore(ctx, r.playerName, g.Score, g.Level, string(g.Theme)); err != nil {
			log.Printf("leaderboard submit failed: %v", err)
		}
	}
	return res
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
