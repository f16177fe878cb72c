package proto

import (
	"github.com/trytobebee/snake_arena/pkg/game"
	"github.com/trytobebee/snake_arena/pkg/leaderboard"
)

func ToProtoPoint(p game.Cell) *Point {
	return &Point{X: int32(p.X), Y: int32(p.Y)}
}

func FromProtoPoint(p *Point) game.Cell {
	if p == nil {
		return game.Cell{}
	}
	return game.Cell{X: int(p.X), Y: int(p.Y)}
}

func toProtoPoints(cells []game.Cell) []*Point {
	pts := make([]*Point, len(cells))
	for i, c := range cells {
		pts[i] = ToProtoPoint(c)
	}
	return pts
}

func ToProtoGameState(snap game.Snapshot) *GameStateSnapshot {
	snakes := make([]*Snake, len(snap.Snakes))
	for i, s := range snap.Snakes {
		snakes[i] = &Snake{
			Role:      s.Role.String(),
			Body:      toProtoPoints(s.Body),
			Direction: s.Direction.String(),
			Alive:     s.Alive,
		}
	}

	powerUps := make([]*PowerUp, len(snap.PowerUps))
	for i, pu := range snap.PowerUps {
		powerUps[i] = &PowerUp{
			Pos:    ToProtoPoint(pu.Pos),
			Kind:   pu.Kind.String(),
			Points: int32(pu.Kind.Points()),
		}
	}

	moving := make([]*MovingObstacle, len(snap.MovingObstacles))
	for i, m := range snap.MovingObstacles {
		moving[i] = &MovingObstacle{Pos: ToProtoPoint(m.Pos), Dir: m.Dir.String()}
	}

	portals := make([]*Portal, len(snap.Portals))
	for i, p := range snap.Portals {
		portals[i] = &Portal{Entry: ToProtoPoint(p.Entry), Exit: ToProtoPoint(p.Exit)}
	}

	modifiers := make([]*Modifier, len(snap.Modifiers))
	for i, m := range snap.Modifiers {
		modifiers[i] = &Modifier{Name: string(m.Name), RemainingMs: m.RemainingMs}
	}

	state := &GameStateSnapshot{
		MatchID:         snap.MatchID,
		Mode:            string(snap.Mode),
		Theme:           string(snap.Theme),
		Width:           int32(snap.Width),
		Height:          int32(snap.Height),
		Snakes:          snakes,
		PowerUps:        powerUps,
		Obstacles:       toProtoPoints(snap.Obstacles),
		MovingObstacles: moving,
		Portals:         portals,
		Modifiers:       modifiers,
		Score:           int32(snap.Score),
		Level:           int32(snap.Level),
		TickIntervalMs:  snap.TickIntervalMs,
		Tick:            int32(snap.Tick),
		Paused:          snap.Paused,
		GameOver:        snap.GameOver,
	}
	if snap.Loser != nil {
		state.Loser = snap.Loser.String()
	}
	if snap.CrashPoint != nil {
		state.CrashPoint = ToProtoPoint(*snap.CrashPoint)
	}
	return state
}

func ToProtoResult(res game.Result) *MatchResult {
	return &MatchResult{
		Score:        int32(res.Score),
		Level:        int32(res.Level),
		HighScore:    int32(res.HighScore),
		NewHighScore: res.NewHighScore,
	}
}

func ToProtoLeaderboard(entries []leaderboard.Entry) []*LeaderboardEntry {
	res := make([]*LeaderboardEntry, len(entries))
	for i, e := range entries {
		res[i] = &LeaderboardEntry{
			PlayerName: e.PlayerName,
			Score:      int32(e.Score),
			Level:      int32(e.Level),
			Theme:      e.Theme,
			Date:       e.CreatedAt,
		}
	}
	return res
}

// StateFrame wraps a snapshot in a "state" frame
func StateFrame(snap game.Snapshot) Frame {
	return Frame{Type: "state", State: ToProtoGameState(snap)}
}

// ToIntent resolves a client action into a steering intent for the given mode
func ToIntent(msg ClientMessage, mode game.Mode) (game.Intent, bool) {
	dir, ok := game.ParseDirection(msg.Action)
	if !ok {
		return game.Intent{}, false
	}
	role := game.RolePlayer
	if msg.Player == 2 && mode == game.ModeMulti {
		role = game.RoleSecond
	}
	return game.Intent{Role: role, Direction: dir}, true
}
