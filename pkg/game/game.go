package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/trytobebee/snake_arena/pkg/config"
)

// NewGame creates a new match with one power-up already on the board
func NewGame(opts Options) *Game {
	opts = withDefaults(opts)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		ID:           uuid.New().String(),
		Mode:         opts.Mode,
		Theme:        opts.Theme,
		Width:        opts.Width,
		Height:       opts.Height,
		MaxWidth:     opts.MaxWidth,
		MaxHeight:    opts.MaxHeight,
		Modifiers:    make(map[Modifier]time.Duration),
		Level:        1,
		TickInterval: config.InitialTickInterval,
		Running:      true,
		rng:          rng,
		spawner:      NewSpawner(rng),
		controllers:  make(map[Role]Controller),
	}

	g.Snakes = []*Snake{newSnake(RolePlayer, g.Width)}
	switch g.Mode {
	case ModeMulti:
		g.Snakes = append(g.Snakes, newSnake(RoleSecond, g.Width))
	case ModeAI:
		g.Snakes = append(g.Snakes, newSnake(RoleAI, g.Width))
		g.controllers[RoleAI] = AIController{}
	}
	if opts.AutoPlay {
		g.controllers[RolePlayer] = AIController{}
	}

	g.spawnPowerUp()
	return g
}

func withDefaults(opts Options) Options {
	if opts.Mode == "" {
		opts.Mode = ModeSingle
	}
	if opts.Theme == "" {
		opts.Theme = config.DefaultTheme
	}
	if opts.Width == 0 {
		opts.Width = config.DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = config.DefaultHeight
	}
	opts.Width = max(opts.Width, config.MinWidth)
	opts.Height = max(opts.Height, config.MinHeight)
	if opts.MaxWidth == 0 {
		opts.MaxWidth = config.MaxWidth
	}
	if opts.MaxHeight == 0 {
		opts.MaxHeight = config.MaxHeight
	}
	opts.MaxWidth = max(opts.MaxWidth, opts.Width)
	opts.MaxHeight = max(opts.MaxHeight, opts.Height)
	return opts
}

// Snake returns the snake steered by role, or nil
func (g *Game) Snake(role Role) *Snake {
	for _, s := range g.Snakes {
		if s.Role == role {
			return s
		}
	}
	return nil
}

// Primary returns the primary player's snake
func (g *Game) Primary() *Snake {
	return g.Snakes[0]
}

// ApplyIntent validates a steering request and stores it as the snake's
// pending direction. Reversals and intents for controller-driven or dead
// snakes are dropped silently.
func (g *Game) ApplyIntent(in Intent) bool {
	if !g.Running {
		return false
	}
	if _, steered := g.controllers[in.Role]; steered {
		return false
	}
	s := g.Snake(in.Role)
	if s == nil || !s.Alive {
		return false
	}
	return s.SetDirection(in.Direction)
}

// TogglePause toggles the pause state. A paused match ignores ticks and its clock stands still.
func (g *Game) TogglePause() {
	if !g.Running {
		return
	}
	g.paused = !g.paused
}

// Paused reports whether the match is paused
func (g *Game) Paused() bool {
	return g.paused
}

// Over reports whether a terminal collision has ended the match
func (g *Game) Over() bool {
	return !g.Running
}

// Tick advances the match by one step: expire modifiers, steer, move every
// live snake, then step moving obstacles on their sub-rate.
func (g *Game) Tick() {
	if !g.Running || g.paused {
		return
	}

	g.TickCount++
	g.Clock += g.EffectiveInterval()
	g.expireModifiers()

	g.steer()

	for _, s := range g.Snakes {
		if !s.Alive {
			continue
		}
		if g.Advance(s) {
			continue
		}
		if s.Role == RoleAI {
			// The opponent crashed: bonus for the human, match goes on
			g.addScore(config.AIDefeatBonus)
			continue
		}
		role := s.Role
		g.Loser = &role
		g.Running = false
		return
	}

	g.advanceMovingObstacles()
}

// Snapshot returns a deep copy of the board for render sinks
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		MatchID:         g.ID,
		Mode:            g.Mode,
		Theme:           g.Theme,
		Width:           g.Width,
		Height:          g.Height,
		Snakes:          make([]Snake, len(g.Snakes)),
		PowerUps:        append([]PowerUp(nil), g.PowerUps...),
		Obstacles:       append([]Cell(nil), g.Obstacles...),
		MovingObstacles: append([]MovingObstacle(nil), g.MovingObstacles...),
		Portals:         append([]Portal(nil), g.Portals...),
		Modifiers:       make([]ModifierState, 0, len(g.Modifiers)),
		Score:           g.Score,
		Level:           g.Level,
		TickIntervalMs:  g.TickInterval.Milliseconds(),
		Tick:            g.TickCount,
		Running:         g.Running,
		Paused:          g.paused,
		GameOver:        !g.Running,
	}

	for i, s := range g.Snakes {
		snap.Snakes[i] = *s
		snap.Snakes[i].Body = append([]Cell(nil), s.Body...)
	}

	for m, until := range g.Modifiers {
		snap.Modifiers = append(snap.Modifiers, ModifierState{
			Name:        m,
			RemainingMs: (until - g.Clock).Milliseconds(),
		})
	}
	sort.Slice(snap.Modifiers, func(i, j int) bool {
		return snap.Modifiers[i].Name < snap.Modifiers[j].Name
	})

	if g.Loser != nil {
		role := *g.Loser
		snap.Loser = &role
	}
	if g.CrashPoint != nil {
		crash := *g.CrashPoint
		snap.CrashPoint = &crash
	}
	return snap
}
