package proto

// Wire types sent to websocket clients. Enums travel as strings so browser
// clients never need to mirror Go constants.

type Point struct {
	X int32 `json:"x" msgpack:"x"`
	Y int32 `json:"y" msgpack:"y"`
}

type Snake struct {
	Role      string   `json:"role" msgpack:"role"`
	Body      []*Point `json:"body" msgpack:"body"`
	Direction string   `json:"direction" msgpack:"direction"`
	Alive     bool     `json:"alive" msgpack:"alive"`
}

type PowerUp struct {
	Pos    *Point `json:"pos" msgpack:"pos"`
	Kind   string `json:"kind" msgpack:"kind"`
	Points int32  `json:"points" msgpack:"points"`
}

type MovingObstacle struct {
	Pos *Point `json:"pos" msgpack:"pos"`
	Dir string `json:"dir" msgpack:"dir"`
}

type Portal struct {
	Entry *Point `json:"entry" msgpack:"entry"`
	Exit  *Point `json:"exit" msgpack:"exit"`
}

type Modifier struct {
	Name        string `json:"name" msgpack:"name"`
	RemainingMs int64  `json:"remainingMs" msgpack:"remainingMs"`
}

type GameStateSnapshot struct {
	MatchID         string            `json:"matchId" msgpack:"matchId"`
	Mode            string            `json:"mode" msgpack:"mode"`
	Theme           string            `json:"theme" msgpack:"theme"`
	Width           int32             `json:"width" msgpack:"width"`
	Height          int32             `json:"height" msgpack:"height"`
	Snakes          []*Snake          `json:"snakes" msgpack:"snakes"`
	PowerUps        []*PowerUp        `json:"powerUps" msgpack:"powerUps"`
	Obstacles       []*Point          `json:"obstacles" msgpack:"obstacles"`
	MovingObstacles []*MovingObstacle `json:"movingObstacles" msgpack:"movingObstacles"`
	Portals         []*Portal         `json:"portals" msgpack:"portals"`
	Modifiers       []*Modifier       `json:"modifiers" msgpack:"modifiers"`
	Score           int32             `json:"score" msgpack:"score"`
	Level           int32             `json:"level" msgpack:"level"`
	TickIntervalMs  int64             `json:"tickIntervalMs" msgpack:"tickIntervalMs"`
	Tick            int32             `json:"tick" msgpack:"tick"`
	Paused          bool              `json:"paused" msgpack:"paused"`
	GameOver        bool              `json:"gameOver" msgpack:"gameOver"`
	Loser           string            `json:"loser,omitempty" msgpack:"loser,omitempty"`
	CrashPoint      *Point            `json:"crashPoint,omitempty" msgpack:"crashPoint,omitempty"`
}

type LeaderboardEntry struct {
	PlayerName string `json:"playerName" msgpack:"playerName"`
	Score      int32  `json:"score" msgpack:"score"`
	Level      int32  `json:"level" msgpack:"level"`
	Theme      string `json:"theme" msgpack:"theme"`
	Date       string `json:"date,omitempty" msgpack:"date,omitempty"`
}

type MatchResult struct {
	Score        int32 `json:"score" msgpack:"score"`
	Level        int32 `json:"level" msgpack:"level"`
	HighScore    int32 `json:"highScore" msgpack:"highScore"`
	NewHighScore bool  `json:"newHighScore" msgpack:"newHighScore"`
}

// Frame is one server to client message
type Frame struct {
	Type        string              `json:"type" msgpack:"type"` // "state", "result", "leaderboard", "error"
	State       *GameStateSnapshot  `json:"state,omitempty" msgpack:"state,omitempty"`
	Result      *MatchResult        `json:"result,omitempty" msgpack:"result,omitempty"`
	Leaderboard []*LeaderboardEntry `json:"leaderboard,omitempty" msgpack:"leaderboard,omitempty"`
	Error       string              `json:"error,omitempty" msgpack:"error,omitempty"`
	Meta        map[string]any      `json:"meta,omitempty" msgpack:"meta,omitempty"`
}

// ClientMessage is one client to server message
type ClientMessage struct {
	Action string `json:"action" msgpack:"action"`
	Player int    `json:"player,omitempty" msgpack:"player,omitempty"` // 2 steers the second snake in multi mode
}
