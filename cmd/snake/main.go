package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/game"
	"github.com/trytobebee/snake_arena/pkg/highscore"
	"github.com/trytobebee/snake_arena/pkg/input"
	"github.com/trytobebee/snake_arena/pkg/leaderboard"
	"github.com/trytobebee/snake_arena/pkg/renderer"
)

type session struct {
	settings   config.Settings
	keys       <-chan input.KeyInput
	render     *renderer.TerminalRenderer
	submitter  game.ScoreSubmitter
	highScores game.HighScoreStore
}

func main() {
	settings, err := config.LoadSettings("snake", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	// Log lines would tear the board apart, so they go to a file
	logPath := filepath.Join(filepath.Dir(settings.HighScorePath), "snake.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}

	if cols, rows, ok := renderer.TerminalSize(int(os.Stdout.Fd())); !ok {
		fmt.Println("snake needs an interactive terminal")
		return
	} else if !renderer.Fits(cols, rows, settings.Width, settings.Height) {
		needCols, needRows := renderer.FrameSize(settings.Width, settings.Height)
		fmt.Printf("Terminal is %dx%d, the arena needs %dx%d; the board may wrap.\n", cols, rows, needCols, needRows)
		time.Sleep(2 * time.Second)
	}

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(os.Stdout)
	render.HideCursor()
	defer render.ShowCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	highScores := highscore.NewFileStore(settings.HighScorePath)
	best, err := highScores.Load()
	if err != nil {
		log.Printf("high score load failed: %v", err)
	}

	s := &session{
		settings:   settings,
		keys:       inputHandler.GetInputChan(),
		render:     render,
		highScores: highScores,
	}
	if settings.LeaderboardURL != "" {
		client := leaderboard.NewClient(settings.LeaderboardURL)
		if err := client.Ping(ctx); err != nil {
			log.Printf("leaderboard unavailable, scores stay local: %v", err)
		} else {
			s.submitter = client
		}
	}

	fmt.Print(menuText(settings, best))
	if quit := s.waitForStart(ctx); quit {
		return
	}

	for {
		if quit := s.playMatch(ctx); quit {
			fmt.Println("\n  Thanks for playing! 👋")
			return
		}
	}
}

// playMatch runs one match and then waits for restart or quit
func (s *session) playMatch(ctx context.Context) (quit bool) {
	mode := game.Mode(s.settings.Mode)
	g := game.NewGame(game.Options{
		Mode:   mode,
		Theme:  game.Theme(s.settings.Theme),
		Width:  s.settings.Width,
		Height: s.settings.Height,
		Seed:   s.settings.Seed,
	})

	r := game.NewRunner(g, s.settings.PlayerName)
	r.OnFrame = func(snap game.Snapshot) {
		if err := s.render.Render(snap); err != nil {
			log.Println("Render error:", err)
		}
	}
	r.Submitter = s.submitter
	r.HighScores = s.highScores

	if s.settings.Record {
		rec, err := game.NewRecorder(s.settings.RecordDir, g.ID)
		if err != nil {
			log.Printf("recording disabled: %v", err)
		} else {
			r.Recorder = rec
			defer func() {
				if err := rec.Close(); err != nil {
					log.Printf("close recording: %v", err)
				}
			}()
		}
	}

	matchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		res game.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(matchCtx)
		done <- outcome{res, err}
	}()

	for {
		select {
		case <-ctx.Done():
			<-done
			return true

		case out := <-done:
			if out.err != nil && !errors.Is(out.err, context.Canceled) {
				log.Printf("match ended with error: %v", out.err)
			}
			if out.res.NewHighScore {
				fmt.Printf("  🏆 New high score: %d\n", out.res.HighScore)
			} else {
				fmt.Printf("  High score: %d\n", out.res.HighScore)
			}
			return s.waitForRestart(ctx)

		case key := <-s.keys:
			switch {
			case input.IsQuit(key):
				cancel()
				<-done
				return true
			case input.IsPause(key):
				r.TogglePause()
			default:
				if in, ok := input.ParseIntent(key, mode); ok {
					r.Send(matchCtx, in)
				}
			}
		}
	}
}

// menuText is the start screen shown before the first match
func menuText(settings config.Settings, best int) string {
	var b strings.Builder
	b.WriteString("\n  🐍 SNAKE ARENA\n\n")
	fmt.Fprintf(&b, "  Player: %s   Mode: %s   Theme: %s\n", settings.PlayerName, settings.Mode, settings.Theme)
	fmt.Fprintf(&b, "  High score: %d\n\n", best)
	b.WriteString("  Press any key to start, Q to quit\n")
	return b.String()
}

func (s *session) waitForStart(ctx context.Context) (quit bool) {
	select {
	case <-ctx.Done():
		return true
	case key := <-s.keys:
		return input.IsQuit(key)
	}
}

func (s *session) waitForRestart(ctx context.Context) (quit bool) {
	for {
		select {
		case <-ctx.Done():
			return true
		case key := <-s.keys:
			if input.IsQuit(key) {
				return true
			}
			if input.IsRestart(key) {
				return false
			}
		}
	}
}
