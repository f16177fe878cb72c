package game

// Controller defines the brain of a snake that is not steered by input events
type Controller interface {
	NextDirection(g *Game, s *Snake) Direction
}

// --- Implementation: scripted controller (replays a fixed list of moves) ---

// ScriptedController returns its moves in order, then repeats the last one.
// Useful for demos and deterministic tests.
type ScriptedController struct {
	Moves []Direction
	next  int
}

func (c *ScriptedController) NextDirection(g *Game, s *Snake) Direction {
	if len(c.Moves) == 0 {
		return s.Direction
	}
	if c.next >= len(c.Moves) {
		return c.Moves[len(c.Moves)-1]
	}
	d := c.Moves[c.next]
	c.next++
	return d
}

// SetController attaches c to the snake with role; nil detaches it
func (g *Game) SetController(role Role, c Controller) {
	if c == nil {
		delete(g.controllers, role)
		return
	}
	g.controllers[role] = c
}

// steer asks every attached controller for its snake's next direction.
// Reversals are refused the same way as for player intents.
func (g *Game) steer() {
	for _, s := range g.Snakes {
		c, ok := g.controllers[s.Role]
		if !ok || !s.Alive {
			continue
		}
		s.SetDirection(c.NextDirection(g, s))
	}
}
