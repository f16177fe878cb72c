package game

import "github.com/trytobebee/snake_arena/pkg/config"

// newSnake creates a single-segment snake at its role's spawn cell. The
// secondary spawn is pulled in from the right wall on narrow arenas.
func newSnake(role Role, width int) *Snake {
	s := &Snake{Role: role, Alive: true}
	switch role {
	case RolePlayer:
		s.Body = []Cell{{X: config.PrimarySpawnX, Y: config.PrimarySpawnY}}
		s.Direction = DirRight
	default:
		s.Body = []Cell{{X: min(config.SecondarySpawnX, width-1), Y: config.SecondarySpawnY}}
		s.Direction = DirLeft
	}
	s.NextDirection = s.Direction
	return s
}

// SetDirection stores d as the pending direction unless it would reverse a
// multi-segment snake. It reports whether the intent was accepted.
func (s *Snake) SetDirection(d Direction) bool {
	if len(s.Body) > 1 && d == s.Direction.Opposite() {
		return false
	}
	s.NextDirection = d
	return true
}

// Advance moves s one step. It returns false when the move ends in a
// collision; the body is left untouched in that case.
func (g *Game) Advance(s *Snake) bool {
	if !s.Alive {
		return false
	}

	s.Direction = s.NextDirection
	head := s.Head().Step(s.Direction)

	if g.ModifierActive(ModGhost) {
		head = g.wrap(head)
	}

	// Teleport resolves before the collision check
	if p, ok := g.portalAt(head); ok {
		head = p.Exit
	}

	if g.IsCollision(head, s) {
		s.Alive = false
		crash := head
		g.CrashPoint = &crash
		return false
	}

	s.Body = append([]Cell{head}, s.Body...)

	if i := g.powerUpIndex(head); i >= 0 {
		pu := g.PowerUps[i]
		g.PowerUps = append(g.PowerUps[:i], g.PowerUps[i+1:]...)
		g.ApplyPowerUp(s, pu)
	} else {
		s.Body = s.Body[:len(s.Body)-1]
	}
	return true
}
