package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/highscore"
)

func TestMenuShowsSavedHighScore(t *testing.T) {
	store := highscore.NewFileStore(filepath.Join(t.TempDir(), "highscore"))
	if err := store.Save(340); err != nil {
		t.Fatalf("Save: %v", err)
	}
	best, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	settings, err := config.LoadSettings("snake", []string{"-name", "ann", "-mode", "ai"})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	menu := menuText(settings, best)
	for _, want := range []string{"High score: 340", "Player: ann", "Mode: ai"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu missing %q:\n%s", want, menu)
		}
	}
}
