package renderer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trytobebee/snake_arena/pkg/game"
)

func TestFrameSizeMatchesRender(t *testing.T) {
	snap := newSnapshot(t, game.ModeSingle)
	snap.Paused = true

	var out bytes.Buffer
	if err := NewTerminalRenderer(&out).Render(snap); err != nil {
		t.Fatal(err)
	}
	// drop the clear sequence; everything after it is the frame
	frame := out.String()[strings.Index(out.String(), "\033[3J")+len("\033[3J"):]
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")

	_, rows := FrameSize(snap.Width, snap.Height)
	if len(lines) > rows {
		t.Errorf("frame has %d lines, FrameSize promised %d", len(lines), rows)
	}
}

func TestFits(t *testing.T) {
	cols, rows := FrameSize(30, 20)
	if cols != 66 || rows != 32 {
		t.Fatalf("FrameSize(30, 20) = %d, %d", cols, rows)
	}
	tests := []struct {
		cols, rows int
		want       bool
	}{
		{66, 32, true},
		{200, 60, true},
		{65, 32, false},
		{66, 31, false},
	}
	for _, tc := range tests {
		if got := Fits(tc.cols, tc.rows, 30, 20); got != tc.want {
			t.Errorf("Fits(%d, %d) = %v, want %v", tc.cols, tc.rows, got, tc.want)
		}
	}
}

func TestTerminalSizeOnFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, _, ok := TerminalSize(int(f.Fd())); ok {
		t.Error("a regular file is not a terminal")
	}
}
