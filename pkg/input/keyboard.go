package input

import (
	"github.com/eiannone/keyboard"
	"github.com/trytobebee/snake_arena/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput, 8),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			h.inputChan <- KeyInput{Char: char, Key: key}
		}
	}()

	return nil
}

// Stop stops the keyboard handler
func (h *KeyboardHandler) Stop() {
	keyboard.Close()
}

// GetInputChan returns the input channel
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseIntent maps a key to a steering intent. Arrow keys drive the primary
// snake. WASD drives the second snake in multi mode and the primary otherwise.
func ParseIntent(input KeyInput, mode game.Mode) (game.Intent, bool) {
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Intent{Role: game.RolePlayer, Direction: game.DirUp}, true
	case keyboard.KeyArrowDown:
		return game.Intent{Role: game.RolePlayer, Direction: game.DirDown}, true
	case keyboard.KeyArrowLeft:
		return game.Intent{Role: game.RolePlayer, Direction: game.DirLeft}, true
	case keyboard.KeyArrowRight:
		return game.Intent{Role: game.RolePlayer, Direction: game.DirRight}, true
	}

	role := game.RolePlayer
	if mode == game.ModeMulti {
		role = game.RoleSecond
	}
	switch input.Char {
	case 'w', 'W':
		return game.Intent{Role: role, Direction: game.DirUp}, true
	case 's', 'S':
		return game.Intent{Role: role, Direction: game.DirDown}, true
	case 'a', 'A':
		return game.Intent{Role: role, Direction: game.DirLeft}, true
	case 'd', 'D':
		return game.Intent{Role: role, Direction: game.DirRight}, true
	}

	return game.Intent{}, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' || input.Key == keyboard.KeyCtrlC
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Char == 'r' || input.Char == 'R'
}

// IsPause checks if the input is a pause command
func IsPause(input KeyInput) bool {
	return input.Key == keyboard.KeyEsc || input.Key == keyboard.KeySpace ||
		input.Char == 'p' || input.Char == 'P'
}
