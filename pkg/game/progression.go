package game

import (
	"time"

	"github.com/trytobebee/snake_arena/pkg/config"
)

// LevelForScore maps a score to its level
func LevelForScore(score int) int {
	return score/config.PointsPerLevel + 1
}

// TickIntervalForLevel is non-increasing in level and floored at MinTickInterval
func TickIntervalForLevel(level int) time.Duration {
	return max(config.MinTickInterval, config.InitialTickInterval-time.Duration(level-1)*config.TickIntervalStep)
}

// addScore applies delta, floors the score at zero and re-derives the level
func (g *Game) addScore(delta int) {
	g.Score = max(0, g.Score+delta)
	g.updateProgression()
}

// updateProgression keeps level and tick interval in step with the score.
// A level increase also regenerates obstacles, may open a portal and may grow the arena.
func (g *Game) updateProgression() {
	level := LevelForScore(g.Score)
	if level == g.Level {
		return
	}
	increased := level > g.Level
	g.Level = level
	g.TickInterval = TickIntervalForLevel(level)
	if !increased {
		return
	}

	g.Obstacles, g.MovingObstacles = g.spawner.RepopulateObstacles(g, level)
	if p, ok := g.spawner.MaybeSpawnPortal(g, level); ok {
		g.Portals = append(g.Portals, p)
	}
	if level%config.ArenaGrowthLevelStep == 0 {
		g.Width = min(g.Width+config.ArenaGrowth, g.MaxWidth)
		g.Height = min(g.Height+config.ArenaGrowth, g.MaxHeight)
	}
}

// EffectiveInterval is the wall-clock time between ticks, stretched while freeze is active
func (g *Game) EffectiveInterval() time.Duration {
	if g.ModifierActive(ModFreeze) {
		return g.TickInterval * config.FreezeSlowdownNum / config.FreezeSlowdownDen
	}
	return g.TickInterval
}

// advanceMovingObstacles steps every moving obstacle whose rate divides the tick count.
// An obstacle about to leave the arena reverses and steps back instead.
func (g *Game) advanceMovingObstacles() {
	for i := range g.MovingObstacles {
		m := &g.MovingObstacles[i]
		if m.Rate <= 0 || g.TickCount%m.Rate != 0 {
			continue
		}
		next := m.Pos.Step(m.Dir)
		if !g.InBounds(next) {
			m.Dir = m.Dir.Opposite()
			next = m.Pos.Step(m.Dir)
		}
		if g.InBounds(next) {
			m.Pos = next
		}
	}
}
