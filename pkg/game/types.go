package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Cell is a coordinate on the arena grid
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring cell in direction d
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is one of the four grid headings
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// AllDirections lists the headings in scan order
var AllDirections = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step of the direction
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reversing direction
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts UP/DOWN/LEFT/RIGHT in any case
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(s) {
	case "UP":
		return DirUp, true
	case "DOWN":
		return DirDown, true
	case "LEFT":
		return DirLeft, true
	case "RIGHT":
		return DirRight, true
	}
	return DirUp, false
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", string(b))
	}
	*d = v
	return nil
}

// Role identifies who steers a snake
type Role int

const (
	RolePlayer Role = iota // primary human player
	RoleSecond             // local second player
	RoleAI                 // AI opponent
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleSecond:
		return "second"
	case RoleAI:
		return "ai"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*r = RolePlayer
	case "second":
		*r = RoleSecond
	case "ai":
		*r = RoleAI
	default:
		return fmt.Errorf("unknown role %q", string(b))
	}
	return nil
}

// Mode selects which snakes take part in a match
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
	ModeAI     Mode = "ai"
)

// Theme is cosmetic but travels with the score to the leaderboard
type Theme string

const (
	ThemeForest Theme = "forest"
	ThemeDesert Theme = "desert"
	ThemeNeon   Theme = "neon"
	ThemeGalaxy Theme = "galaxy"
)

// PowerUpKind represents the different power-ups
type PowerUpKind int

const (
	KindNormal PowerUpKind = iota // +10
	KindSuper                     // +20, sheds two segments
	KindFreeze                    // +15, slows the tick
	KindGhost                     // +15, wall wraparound
	KindBomb                      // -20, sheds two segments
)

func (k PowerUpKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindSuper:
		return "super"
	case KindFreeze:
		return "freeze"
	case KindGhost:
		return "ghost"
	case KindBomb:
		return "bomb"
	}
	return fmt.Sprintf("PowerUpKind(%d)", int(k))
}

func (k PowerUpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PowerUpKind) UnmarshalText(b []byte) error {
	for _, c := range []PowerUpKind{KindNormal, KindSuper, KindFreeze, KindGhost, KindBomb} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown power-up kind %q", string(b))
}

// PowerUp is a consumable item on the board
type PowerUp struct {
	Pos  Cell        `json:"pos"`
	Kind PowerUpKind `json:"kind"`
}

// MovingObstacle patrols in a straight line, bouncing off the walls
type MovingObstacle struct {
	Pos  Cell      `json:"pos"`
	Dir  Direction `json:"dir"`
	Rate int       `json:"rate"` // ticks per step
}

// Portal teleports a head that lands on Entry to Exit
type Portal struct {
	Entry Cell `json:"entry"`
	Exit  Cell `json:"exit"`
}

// Modifier is a time-bounded rule change
type Modifier string

const (
	ModFreeze Modifier = "freeze"
	ModGhost  Modifier = "ghost"
)

// Snake is one competitor's body and heading
type Snake struct {
	Body          []Cell    `json:"body"` // head first
	Direction     Direction `json:"direction"`
	NextDirection Direction `json:"nextDirection"`
	Role          Role      `json:"role"`
	Alive         bool      `json:"alive"`
}

// Head returns the first body cell
func (s *Snake) Head() Cell {
	return s.Body[0]
}

// Occupies reports whether any body cell equals c
func (s *Snake) Occupies(c Cell) bool {
	for _, b := range s.Body {
		if b == c {
			return true
		}
	}
	return false
}

// Intent is a steering request from an input source
type Intent struct {
	Role      Role      `json:"role"`
	Direction Direction `json:"direction"`
}

// Options configures a new match
type Options struct {
	Mode      Mode
	Theme     Theme
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
	Seed      int64 // 0 = time based
	AutoPlay  bool  // primary snake steered by the AI controller
}

// Game is the match state: the single owner of every entity on the board
type Game struct {
	ID    string
	Mode  Mode
	Theme Theme

	Width, Height       int
	MaxWidth, MaxHeight int

	Snakes          []*Snake // index 0 is always the primary player
	PowerUps        []PowerUp
	Obstacles       []Cell
	MovingObstacles []MovingObstacle
	Portals         []Portal
	Modifiers       map[Modifier]time.Duration // expiry on the match clock

	Score        int
	Level        int
	TickInterval time.Duration
	Running      bool
	Loser        *Role // snake whose collision ended the match
	CrashPoint   *Cell

	Clock     time.Duration // simulated time, advanced only by ticks
	TickCount int

	paused      bool
	rng         *rand.Rand
	spawner     *Spawner
	controllers map[Role]Controller
}

// ModifierState is the render view of an active modifier
type ModifierState struct {
	Name        Modifier `json:"name"`
	RemainingMs int64    `json:"remainingMs"`
}

// Snapshot is a read-only copy of the match for render sinks
type Snapshot struct {
	MatchID         string           `json:"matchId"`
	Mode            Mode             `json:"mode"`
	Theme           Theme            `json:"theme"`
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	Snakes          []Snake          `json:"snakes"`
	PowerUps        []PowerUp        `json:"powerUps"`
	Obstacles       []Cell           `json:"obstacles"`
	MovingObstacles []MovingObstacle `json:"movingObstacles"`
	Portals         []Portal         `json:"portals"`
	Modifiers       []ModifierState  `json:"modifiers"`
	Score           int              `json:"score"`
	Level           int              `json:"level"`
	TickIntervalMs  int64            `json:"tickIntervalMs"`
	Tick            int              `json:"tick"`
	Running         bool             `json:"running"`
	Paused          bool             `json:"paused"`
	GameOver        bool             `json:"gameOver"`
	Loser           *Role            `json:"loser,omitempty"`
	CrashPoint      *Cell            `json:"crashPoint,omitempty"`
}
