package game

import "github.com/zyedidia/generic/mapset"

// EntityClass selects which layer of the board an occupancy query checks
type EntityClass int

const (
	ClassSnake EntityClass = iota
	ClassObstacle
	ClassPowerUp
	ClassPortal
)

// Occupancy indexes every occupied cell by entity class.
// It is a point-in-time view; rebuild it after the board changes.
type Occupancy struct {
	layers [4]mapset.Set[Cell]
}

// NewOccupancy indexes the current board of g
func NewOccupancy(g *Game) *Occupancy {
	o := &Occupancy{}
	for i := range o.layers {
		o.layers[i] = mapset.New[Cell]()
	}
	for _, s := range g.Snakes {
		for _, c := range s.Body {
			o.layers[ClassSnake].Put(c)
		}
	}
	for _, c := range g.Obstacles {
		o.layers[ClassObstacle].Put(c)
	}
	for _, m := range g.MovingObstacles {
		o.layers[ClassObstacle].Put(m.Pos)
	}
	for _, p := range g.PowerUps {
		o.layers[ClassPowerUp].Put(p.Pos)
	}
	for _, p := range g.Portals {
		o.layers[ClassPortal].Put(p.Entry)
		o.layers[ClassPortal].Put(p.Exit)
	}
	return o
}

// Add marks c as occupied by class
func (o *Occupancy) Add(class EntityClass, c Cell) {
	o.layers[class].Put(c)
}

// Occupied reports whether c is taken by any of the given classes
func (o *Occupancy) Occupied(c Cell, classes ...EntityClass) bool {
	for _, class := range classes {
		if o.layers[class].Has(c) {
			return true
		}
	}
	return false
}

// Count returns the number of distinct cells in a class
func (o *Occupancy) Count(class EntityClass) int {
	return o.layers[class].Size()
}

// InBounds reports whether c lies inside the current arena
func (g *Game) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// wrap folds an out-of-bounds cell back into the arena
func (g *Game) wrap(c Cell) Cell {
	c.X = ((c.X % g.Width) + g.Width) % g.Width
	c.Y = ((c.Y % g.Height) + g.Height) % g.Height
	return c
}

func (g *Game) obstacleAt(c Cell) bool {
	for _, o := range g.Obstacles {
		if o == c {
			return true
		}
	}
	for _, m := range g.MovingObstacles {
		if m.Pos == c {
			return true
		}
	}
	return false
}

func (g *Game) powerUpIndex(c Cell) int {
	for i, p := range g.PowerUps {
		if p.Pos == c {
			return i
		}
	}
	return -1
}

func (g *Game) portalAt(c Cell) (Portal, bool) {
	for _, p := range g.Portals {
		if p.Entry == c {
			return p, true
		}
	}
	return Portal{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func chebyshev(a, b Cell) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}
