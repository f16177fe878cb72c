package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trytobebee/snake_arena/pkg/config"
	_ "modernc.org/sqlite"
)

// Store keeps the leaderboard in SQLite
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			theme TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard (score DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table (%s): %w", query, err)
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Submit validates and stores e, then trims the table to the best MaxLeaderboardEntries rows
func (s *Store) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO leaderboard (player_name, score, level, theme) VALUES (?, ?, ?, ?)`,
		e.PlayerName, e.Score, e.Level, e.Theme,
	); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM leaderboard WHERE id NOT IN (
			SELECT id FROM leaderboard ORDER BY score DESC, id ASC LIMIT ?
		)`,
		config.MaxLeaderboardEntries,
	); err != nil {
		return fmt.Errorf("trim leaderboard: %w", err)
	}

	return tx.Commit()
}

// SubmitScore lets the store act as the engine's score sink directly
func (s *Store) SubmitScore(ctx context.Context, playerName string, score, level int, theme string) error {
	return s.Submit(ctx, Entry{PlayerName: playerName, Score: score, Level: level, Theme: theme})
}

// Top returns up to limit entries, best score first; ties go to the earlier entry
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_name, score, level, COALESCE(theme, ''), created_at
		 FROM leaderboard ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerName, &e.Score, &e.Level, &e.Theme, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
