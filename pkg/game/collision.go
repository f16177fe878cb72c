package game

// IsCollision classifies a candidate head for snake s against walls, its own
// body, every other snake and all obstacles. With ghost active the caller has
// already wrapped the head back inside the arena.
func (g *Game) IsCollision(head Cell, s *Snake) bool {
	// Wall
	if !g.InBounds(head) {
		return true
	}

	// Self, excluding the current head
	for _, b := range s.Body[1:] {
		if b == head {
			return true
		}
	}

	// Other snakes, dead ones included: their bodies stay on the board
	for _, other := range g.Snakes {
		if other == s {
			continue
		}
		if other.Occupies(head) {
			return true
		}
	}

	// Static and moving obstacles
	return g.obstacleAt(head)
}
