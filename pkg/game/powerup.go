package game

import (
	"time"

	"github.com/trytobebee/snake_arena/pkg/config"
)

// effect describes what consuming a power-up kind does
type effect struct {
	score    int
	shrink   bool
	modifier Modifier
	duration time.Duration
}

var effects = map[PowerUpKind]effect{
	KindNormal: {score: config.NormalPoints},
	KindSuper:  {score: config.SuperPoints, shrink: true},
	KindFreeze: {score: config.FreezePoints, modifier: ModFreeze, duration: config.FreezeDuration},
	KindGhost:  {score: config.GhostPoints, modifier: ModGhost, duration: config.GhostDuration},
	KindBomb:   {score: -config.BombPenalty, shrink: true},
}

// Points returns the score delta of the kind
func (k PowerUpKind) Points() int {
	return effects[k].score
}

// ApplyPowerUp applies the consequences of s consuming pu. The power-up has
// already been removed from the board and the head pushed.
func (g *Game) ApplyPowerUp(s *Snake, pu PowerUp) {
	e := effects[pu.Kind]

	if e.shrink && len(s.Body) > config.ShrinkMinLen {
		s.Body = s.Body[:len(s.Body)-config.ShrinkBy]
	}

	if e.modifier != "" {
		g.Modifiers[e.modifier] = g.Clock + e.duration
	}

	// Level-up regenerates obstacles first so the replacement power-up avoids them
	g.addScore(e.score)

	if len(g.PowerUps) < config.MinPowerUpsOnBoard {
		g.spawnPowerUp()
	}
}

func (g *Game) spawnPowerUp() {
	g.PowerUps = append(g.PowerUps, g.spawner.PlacePowerUp(g))
}

// ModifierActive reports whether m is currently in effect
func (g *Game) ModifierActive(m Modifier) bool {
	_, ok := g.Modifiers[m]
	return ok
}

// expireModifiers drops every modifier whose expiry the match clock has reached
func (g *Game) expireModifiers() {
	for m, until := range g.Modifiers {
		if g.Clock >= until {
			delete(g.Modifiers, m)
		}
	}
}
