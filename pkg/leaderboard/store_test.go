package leaderboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/trytobebee/snake_arena/pkg/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "game.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOrdersByScore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{PlayerName: "ann", Score: 40, Level: 1, Theme: "neon"},
		{PlayerName: "bob", Score: 120, Level: 3, Theme: "forest"},
		{PlayerName: "cat", Score: 40, Level: 1, Theme: "desert"},
		{PlayerName: "dan", Score: 0, Level: 1},
	} {
		if err := s.Submit(ctx, e); err != nil {
			t.Fatalf("Submit(%s): %v", e.PlayerName, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []string{"bob", "ann", "cat"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].PlayerName != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, top[i].PlayerName)
		}
	}
	if top[0].Level != 3 || top[0].Theme != "forest" || top[0].CreatedAt == "" {
		t.Errorf("fields not round-tripped: %+v", top[0])
	}
}

func TestStoreKeepsBestEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	total := config.MaxLeaderboardEntries + 5
	for i := 0; i < total; i++ {
		if err := s.SubmitScore(ctx, "p", i*10, 1, "neon"); err != nil {
			t.Fatalf("SubmitScore %d: %v", i, err)
		}
	}

	all, err := s.Top(ctx, total)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(all) != config.MaxLeaderboardEntries {
		t.Fatalf("expected %d entries retained, got %d", config.MaxLeaderboardEntries, len(all))
	}
	if lowest := all[len(all)-1].Score; lowest != 50 {
		t.Errorf("lowest scores should be pruned first, lowest kept = %d", lowest)
	}
}

func TestStoreRejectsInvalidEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"blank name", Entry{PlayerName: "  ", Score: 10, Level: 1}, ErrNameRequired},
		{"negative score", Entry{PlayerName: "x", Score: -1, Level: 1}, ErrInvalidScore},
		{"zero level", Entry{PlayerName: "x", Score: 10, Level: 0}, ErrInvalidLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Submit(ctx, tc.entry); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	top, _ := s.Top(ctx, 10)
	if len(top) != 0 {
		t.Errorf("invalid entries must not be stored, found %d", len(top))
	}
}

func TestStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SubmitScore(context.Background(), "ann", 70, 2, "galaxy"); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	top, err := s.Top(context.Background(), 10)
	if err != nil || len(top) != 1 || top[0].Score != 70 {
		t.Errorf("entry lost across reopen: %+v, %v", top, err)
	}
}
