package renderer

import "golang.org/x/term"

// FrameSize is the terminal area, in columns and rows, one frame of a
// width x height arena occupies. Every cell is two columns wide.
func FrameSize(width, height int) (cols, rows int) {
	cols = 2 + 2*(width+2)
	rows = 5 + (height + 2) + 5
	return cols, rows
}

// TerminalSize reports the size of the terminal behind fd. ok is false when
// fd is not a terminal.
func TerminalSize(fd int) (cols, rows int, ok bool) {
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}

// Fits reports whether a terminal of cols x rows shows a whole arena frame
func Fits(cols, rows, width, height int) bool {
	needCols, needRows := FrameSize(width, height)
	return cols >= needCols && rows >= needRows
}
