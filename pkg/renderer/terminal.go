package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out    io.Writer
	board  [][]string
	buffer strings.Builder
}

var powerUpGlyphs = map[game.PowerUpKind]string{
	game.KindNormal: "🍎",
	game.KindSuper:  "⭐",
	game.KindFreeze: "🧊",
	game.KindGhost:  "👻",
	game.KindBomb:   "💣",
}

var roleGlyphs = map[game.Role][2]string{
	game.RolePlayer: {config.CharHead, config.CharBody},
	game.RoleSecond: {config.CharP2Head, config.CharP2Body},
	game.RoleAI:     {config.CharAIHead, config.CharAIBody},
}

// NewTerminalRenderer creates a renderer writing to out
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// clearScreen clears the terminal using ANSI escape codes
func (r *TerminalRenderer) clearScreen() {
	r.buffer.WriteString("\033[H\033[2J\033[3J")
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// resize reuses the board while the arena keeps its size; a grown arena
// gets a fresh one. The outer ring holds the walls.
func (r *TerminalRenderer) resize(width, height int) {
	h, w := height+2, width+2
	if len(r.board) == h && len(r.board[0]) == w {
		return
	}
	r.board = make([][]string, h)
	for y := range r.board {
		r.board[y] = make([]string, w)
	}
}

func (r *TerminalRenderer) put(c game.Cell, glyph string) {
	y, x := c.Y+1, c.X+1
	if y <= 0 || y >= len(r.board)-1 || x <= 0 || x >= len(r.board[y])-1 {
		return
	}
	r.board[y][x] = glyph
}

// Render draws one frame
func (r *TerminalRenderer) Render(snap game.Snapshot) error {
	r.buffer.Reset()
	r.clearScreen()
	r.resize(snap.Width, snap.Height)

	last := len(r.board) - 1
	for y := range r.board {
		for x := range r.board[y] {
			if y == 0 || y == last || x == 0 || x == len(r.board[y])-1 {
				r.board[y][x] = config.CharWall
			} else {
				r.board[y][x] = config.CharEmpty
			}
		}
	}

	// Later layers win: snakes draw over everything except the crash marker
	for _, p := range snap.Portals {
		r.put(p.Entry, config.CharPortalIn)
		r.put(p.Exit, config.CharPortal)
	}
	for _, o := range snap.Obstacles {
		r.put(o, config.CharObstacle)
	}
	for _, m := range snap.MovingObstacles {
		r.put(m.Pos, config.CharMoving)
	}
	for _, pu := range snap.PowerUps {
		r.put(pu.Pos, powerUpGlyphs[pu.Kind])
	}
	for _, s := range snap.Snakes {
		glyphs := roleGlyphs[s.Role]
		for i := len(s.Body) - 1; i >= 0; i-- {
			if i == 0 {
				r.put(s.Body[i], glyphs[0])
			} else {
				r.put(s.Body[i], glyphs[1])
			}
		}
	}
	if snap.GameOver && snap.CrashPoint != nil {
		r.put(*snap.CrashPoint, config.CharCrash)
	}

	r.buffer.WriteString("\n  🐍 SNAKE ARENA 🐍\n")
	fmt.Fprintf(&r.buffer, "  Score: %d  |  Level: %d  |  Speed: %dms  |  Theme: %s  |  Mode: %s\n",
		snap.Score, snap.Level, snap.TickIntervalMs, snap.Theme, snap.Mode)

	if len(snap.Modifiers) > 0 {
		r.buffer.WriteString("  Active:")
		for _, m := range snap.Modifiers {
			fmt.Fprintf(&r.buffer, " %s %.1fs", m.Name, float64(m.RemainingMs)/1000)
		}
		r.buffer.WriteString("\n")
	} else {
		r.buffer.WriteString("\n")
	}
	r.buffer.WriteString("\n")

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			r.buffer.WriteString(cell)
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString("\n  Arrow keys to move")
	if snap.Mode == game.ModeMulti {
		r.buffer.WriteString(" | Player 2: WASD")
	}
	r.buffer.WriteString("\n  P/Esc to pause, Q to quit\n")

	if snap.Paused {
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press P to continue\n")
	}

	if snap.GameOver {
		r.buffer.WriteString("\n  💀 GAME OVER! " + outcome(snap) + " Press R to restart or Q to quit\n")
	}

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

func outcome(snap game.Snapshot) string {
	if snap.Loser == nil || snap.Mode != game.ModeMulti {
		return fmt.Sprintf("Final score %d.", snap.Score)
	}
	if *snap.Loser == game.RolePlayer {
		return "Player 2 wins!"
	}
	return "Player 1 wins!"
}
