package leaderboard

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired = errors.New("player name is required")
	ErrInvalidScore = errors.New("valid score is required")
	ErrInvalidLevel = errors.New("valid level is required")
)

// Entry is one leaderboard row
type Entry struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Theme      string `json:"theme"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Validate checks the fields a submission must carry
func (e Entry) Validate() error {
	if strings.TrimSpace(e.PlayerName) == "" {
		return ErrNameRequired
	}
	if e.Score < 0 {
		return ErrInvalidScore
	}
	if e.Level < 1 {
		return ErrInvalidLevel
	}
	return nil
}
