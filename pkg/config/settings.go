package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Settings holds runtime options shared by the binaries.
// Every flag falls back to a SNAKE_* environment variable, then to a default.
type Settings struct {
	Addr           string
	DBPath         string
	RecordDir      string
	Record         bool
	LeaderboardURL string
	HighScorePath  string
	PlayerName     string
	Theme          string
	Mode           string
	Width          int
	Height         int
	Seed           int64
}

// LoadSettings parses args (usually os.Args[1:]) into Settings.
func LoadSettings(name string, args []string) (Settings, error) {
	var s Settings
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&s.Addr, "addr", envString("SNAKE_ADDR", ":8080"), "listen address")
	fs.StringVar(&s.DBPath, "db", envString("SNAKE_DB", "data/game.db"), "sqlite database path")
	fs.StringVar(&s.RecordDir, "records", envString("SNAKE_RECORDS", "records"), "match recording directory")
	fs.BoolVar(&s.Record, "record", envBool("SNAKE_RECORD", false), "record every tick to a jsonl file")
	fs.StringVar(&s.LeaderboardURL, "leaderboard", envString("SNAKE_LEADERBOARD", ""), "leaderboard service base url (empty disables submission)")
	fs.StringVar(&s.HighScorePath, "highscore", envString("SNAKE_HIGHSCORE", "data/highscore"), "local high score file")
	fs.StringVar(&s.PlayerName, "name", envString("SNAKE_PLAYER", DefaultPlayerName), "player name sent to the leaderboard")
	fs.StringVar(&s.Theme, "theme", envString("SNAKE_THEME", DefaultTheme), "theme: forest, desert, neon or galaxy")
	fs.StringVar(&s.Mode, "mode", envString("SNAKE_MODE", "single"), "mode: single, multi or ai")
	fs.IntVar(&s.Width, "width", envInt("SNAKE_WIDTH", DefaultWidth), "initial arena width")
	fs.IntVar(&s.Height, "height", envInt("SNAKE_HEIGHT", DefaultHeight), "initial arena height")
	fs.Int64Var(&s.Seed, "seed", int64(envInt("SNAKE_SEED", 0)), "rng seed (0 = time based)")

	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the engine cannot start with.
func (s Settings) Validate() error {
	switch s.Mode {
	case "single", "multi", "ai":
	default:
		return fmt.Errorf("invalid mode %q", s.Mode)
	}
	switch s.Theme {
	case "forest", "desert", "neon", "galaxy":
	default:
		return fmt.Errorf("invalid theme %q", s.Theme)
	}
	if s.Width > MaxWidth || s.Height > MaxHeight {
		return fmt.Errorf("arena %dx%d exceeds maximum %dx%d", s.Width, s.Height, MaxWidth, MaxHeight)
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
