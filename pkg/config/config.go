package config

import "time"

// Arena dimensions
const (
	DefaultWidth  = 30
	DefaultHeight = 20
	MinWidth      = 20
	MinHeight     = 15
	MaxWidth      = 50
	MaxHeight     = 40

	ArenaGrowth          = 2 // cells added to each dimension on a growth level
	ArenaGrowthLevelStep = 3 // arena grows on every level divisible by this
)

// Spawn cells per snake role
const (
	PrimarySpawnX   = 10
	PrimarySpawnY   = 10
	SecondarySpawnX = 20
	SecondarySpawnY = 10
)

// Speed and progression settings
const (
	InitialTickInterval = 200 * time.Millisecond
	MinTickInterval     = 50 * time.Millisecond
	TickIntervalStep    = 5 * time.Millisecond // interval shaved off per level
	PointsPerLevel      = 50

	// Freeze stretches the effective interval by Num/Den (1.5x)
	FreezeSlowdownNum = 3
	FreezeSlowdownDen = 2
)

// Spawn settings
const (
	SpawnAttempts        = 50 // rejection sampling cap, last candidate wins
	SpawnExclusionRadius = 3  // Chebyshev radius around the primary head
	MinPowerUpsOnBoard   = 3  // below this a consumption triggers a new spawn
	MaxObstacles         = 10
	MovingObstacleEvery  = 3 // obstacle indices divisible by this are moving
	MovingObstacleRate   = 3 // ticks per moving obstacle step
	PortalLevelStep      = 5
	PortalMinSeparation  = 5
)

// Modifier durations
const (
	FreezeDuration = 5 * time.Second
	GhostDuration  = 3 * time.Second
)

// Scoring
const (
	NormalPoints  = 10
	SuperPoints   = 20
	FreezePoints  = 15
	GhostPoints   = 15
	BombPenalty   = 20
	ShrinkBy      = 2
	ShrinkMinLen  = 3 // shrink only applies when the body is longer than this
	AIDefeatBonus = 100
)

// Leaderboard settings
const (
	MaxLeaderboardEntries   = 100
	DefaultLeaderboardLimit = 10
	DefaultPlayerName       = "Player"
	DefaultTheme            = "neon"
)

// Characters for terminal rendering
const (
	CharEmpty    = "  " // Two spaces to match emoji width
	CharWall     = "⬜"
	CharHead     = "🟢"
	CharBody     = "🟩"
	CharP2Head   = "🟣"
	CharP2Body   = "🟪"
	CharAIHead   = "🤖"
	CharAIBody   = "🟧"
	CharObstacle = "🧱"
	CharMoving   = "🪨"
	CharPortalIn = "🌀"
	CharPortal   = "🔘"
	CharCrash    = "💥"
)
