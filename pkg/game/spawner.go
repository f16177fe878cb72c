package game

import (
	"math/rand"

	"github.com/trytobebee/snake_arena/pkg/config"
)

// powerUpTable is sampled uniformly, so normal is three times as likely as any other kind
var powerUpTable = []PowerUpKind{KindNormal, KindNormal, KindNormal, KindSuper, KindFreeze, KindGhost, KindBomb}

// Spawner places power-ups, obstacles and portals by rejection sampling.
// Placement is best-effort: after SpawnAttempts rejections the last candidate is used.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

func (s *Spawner) randomCell(width, height int) Cell {
	return Cell{X: s.rng.Intn(width), Y: s.rng.Intn(height)}
}

// sample draws cells until reject returns false or attempts run out
func (s *Spawner) sample(width, height int, reject func(Cell) bool) Cell {
	var c Cell
	for attempt := 1; ; attempt++ {
		c = s.randomCell(width, height)
		if !reject(c) || attempt >= config.SpawnAttempts {
			return c
		}
	}
}

// nearPrimary reports whether c falls inside the exclusion zone around the primary head
func nearPrimary(g *Game, c Cell) bool {
	if len(g.Snakes) == 0 || len(g.Snakes[0].Body) == 0 {
		return false
	}
	return chebyshev(c, g.Snakes[0].Head()) < config.SpawnExclusionRadius
}

// PlacePowerUp picks a free cell and a weighted kind. It does not add the power-up to g.
func (s *Spawner) PlacePowerUp(g *Game) PowerUp {
	occ := NewOccupancy(g)
	pos := s.sample(g.Width, g.Height, func(c Cell) bool {
		return occ.Occupied(c, ClassSnake, ClassObstacle, ClassPowerUp) || nearPrimary(g, c)
	})
	return PowerUp{
		Pos:  pos,
		Kind: powerUpTable[s.rng.Intn(len(powerUpTable))],
	}
}

// ObstacleCount returns how many obstacles a level carries
func ObstacleCount(level int) int {
	return min(level/2, config.MaxObstacles)
}

// RepopulateObstacles generates a fresh obstacle layout for level.
// Previous obstacles are ignored; every third obstacle (index 0, 3, 6...) moves.
func (s *Spawner) RepopulateObstacles(g *Game, level int) ([]Cell, []MovingObstacle) {
	occ := NewOccupancy(&Game{
		Snakes:   g.Snakes,
		PowerUps: g.PowerUps,
		Portals:  g.Portals,
	})

	var static []Cell
	var moving []MovingObstacle
	n := ObstacleCount(level)
	for i := 0; i < n; i++ {
		pos := s.sample(g.Width, g.Height, func(c Cell) bool {
			return occ.Occupied(c, ClassSnake, ClassObstacle, ClassPowerUp, ClassPortal) || nearPrimary(g, c)
		})
		occ.Add(ClassObstacle, pos)

		if i%config.MovingObstacleEvery != 0 {
			static = append(static, pos)
			continue
		}
		moving = append(moving, MovingObstacle{
			Pos:  pos,
			Dir:  AllDirections[s.rng.Intn(len(AllDirections))],
			Rate: config.MovingObstacleRate,
		})
	}
	return static, moving
}

// PortalEligible reports whether a portal pair may spawn at level
func PortalEligible(g *Game, level int) bool {
	return level >= config.PortalLevelStep && level%config.PortalLevelStep == 0 && len(g.Portals) == 0
}

// MaybeSpawnPortal returns a new portal pair when the level allows one
func (s *Spawner) MaybeSpawnPortal(g *Game, level int) (Portal, bool) {
	if !PortalEligible(g, level) {
		return Portal{}, false
	}

	var p Portal
	for attempt := 1; ; attempt++ {
		p = Portal{
			Entry: s.randomCell(g.Width, g.Height),
			Exit:  s.randomCell(g.Width, g.Height),
		}
		if !s.rejectPortal(g, p) || attempt >= config.SpawnAttempts {
			return p, true
		}
	}
}

func (s *Spawner) rejectPortal(g *Game, p Portal) bool {
	if abs(p.Entry.X-p.Exit.X) < config.PortalMinSeparation || abs(p.Entry.Y-p.Exit.Y) < config.PortalMinSeparation {
		return true
	}
	return g.obstacleAt(p.Entry) || g.obstacleAt(p.Exit)
}
