package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trytobebee/snake_arena/pkg/leaderboard"
)

// legacyEntry accepts both the current field names and the snake_case keys
// older dumps used
type legacyEntry struct {
	PlayerName string `json:"playerName"`
	Name       string `json:"player_name"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Theme      string `json:"theme"`
}

func (e legacyEntry) toEntry() leaderboard.Entry {
	name := e.PlayerName
	if name == "" {
		name = e.Name
	}
	return leaderboard.Entry{PlayerName: name, Score: e.Score, Level: e.Level, Theme: e.Theme}
}

// readDump parses a JSON array of entries, or a single object holding one
// under "leaderboard"
func readDump(path string) ([]leaderboard.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var list []legacyEntry
	if err := json.Unmarshal(content, &list); err != nil {
		var wrapped struct {
			Leaderboard []legacyEntry `json:"leaderboard"`
		}
		if err2 := json.Unmarshal(content, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		list = wrapped.Leaderboard
	}

	entries := make([]leaderboard.Entry, len(list))
	for i, e := range list {
		entries[i] = e.toEntry()
	}
	return entries, nil
}

// importEntries stores each valid entry and reports how many made it
func importEntries(ctx context.Context, store *leaderboard.Store, entries []leaderboard.Entry) int {
	count := 0
	for _, e := range entries {
		if err := store.Submit(ctx, e); err != nil {
			log.Printf("Skipping %q (score %d): %v", e.PlayerName, e.Score, err)
			continue
		}
		count++
	}
	return count
}

func main() {
	in := flag.String("in", "leaderboard.json", "JSON dump to import")
	dbPath := flag.String("db", "data/game.db", "sqlite database path")
	flag.Parse()

	if _, err := os.Stat(*in); os.IsNotExist(err) {
		log.Fatalf("%s not found. Point -in at a leaderboard export.", *in)
	}

	entries, err := readDump(*in)
	if err != nil {
		log.Fatal(err)
	}

	store, err := leaderboard.Open(*dbPath)
	if err != nil {
		log.Fatal("Failed to open DB:", err)
	}
	defer store.Close()

	log.Printf("Found %d entries to import...", len(entries))
	count := importEntries(context.Background(), store, entries)

	fmt.Printf("✅ Import complete! Imported %d of %d entries into %s\n", count, len(entries), *dbPath)
}
