package game

import "sort"

// AIController is the reactive opponent policy: chase the nearest non-bomb
// power-up, filtering each step through a one-cell lookahead.
//
// The primary pass checks walls, its own body and obstacles but not the
// opposing snake, so it can steer into the player while a safer move exists.
type AIController struct{}

// NextDirection picks the heading for s on the current board
func (AIController) NextDirection(g *Game, s *Snake) Direction {
	if len(s.Body) == 0 {
		return s.Direction
	}
	head := s.Head()
	current := s.Direction

	target, found := nearestTarget(g, head)
	if !found {
		return randomTurn(g, current)
	}

	for _, d := range candidateMoves(head, target, current) {
		next := head.Step(d)
		if g.InBounds(next) && !s.Occupies(next) && !g.obstacleAt(next) {
			return d
		}
	}

	// Fallback only avoids walls and its own body
	for _, d := range AllDirections {
		if d == current.Opposite() {
			continue
		}
		next := head.Step(d)
		if g.InBounds(next) && !s.Occupies(next) {
			return d
		}
	}

	return current
}

// nearestTarget returns the closest non-bomb power-up by Manhattan distance
func nearestTarget(g *Game, head Cell) (Cell, bool) {
	var target Cell
	found := false
	best := 0
	for _, pu := range g.PowerUps {
		if pu.Kind == KindBomb {
			continue
		}
		d := manhattan(head, pu.Pos)
		if !found || d < best {
			target, best, found = pu.Pos, d, true
		}
	}
	return target, found
}

// randomTurn picks uniformly among the three non-reversing directions
func randomTurn(g *Game, current Direction) Direction {
	options := make([]Direction, 0, 3)
	for _, d := range AllDirections {
		if d != current.Opposite() {
			options = append(options, d)
		}
	}
	return options[g.rng.Intn(len(options))]
}

type candidateMove struct {
	dir      Direction
	priority int
}

// candidateMoves lists directions that close the gap to target, dominant axis
// first and then by descending axis delta, never reversing current.
func candidateMoves(head, target Cell, current Direction) []Direction {
	dx := target.X - head.X
	dy := target.Y - head.Y

	horizontal := func(moves []candidateMove) []candidateMove {
		if dx > 0 && current != DirLeft {
			moves = append(moves, candidateMove{DirRight, abs(dx)})
		}
		if dx < 0 && current != DirRight {
			moves = append(moves, candidateMove{DirLeft, abs(dx)})
		}
		return moves
	}
	vertical := func(moves []candidateMove) []candidateMove {
		if dy > 0 && current != DirUp {
			moves = append(moves, candidateMove{DirDown, abs(dy)})
		}
		if dy < 0 && current != DirDown {
			moves = append(moves, candidateMove{DirUp, abs(dy)})
		}
		return moves
	}

	var moves []candidateMove
	if abs(dx) > abs(dy) {
		moves = vertical(horizontal(moves))
	} else {
		moves = horizontal(vertical(moves))
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].priority > moves[j].priority
	})

	dirs := make([]Direction, len(moves))
	for i, m := range moves {
		dirs[i] = m.dir
	}
	return dirs
}
