package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/simcore/internal/core"
)

// keyHold is how long a key counts as held after its last press or repeat.
// Terminals never report key-up, so releases are approximated from repeats.
const keyHold = 250 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to engine keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an engine key.
// Returns the key (may be KeyNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (k core.Key, isQuit bool) {
	s := msg.String()

	// Global quit keys
	switch s {
	case "ctrl+c", "q", "Q":
		return core.KeyNone, true
	}

	switch strings.ToLower(s) {
	case "w":
		return core.KeyW, false
	case "a":
		return core.KeyA, false
	case "s":
		return core.KeyS, false
	case "d":
		return core.KeyD, false
	case "up":
		return core.KeyUp, false
	case "down":
		return core.KeyDown, false
	case "left":
		return core.KeyLeft, false
	case "right":
		return core.KeyRight, false
	case " ", "space":
		return core.KeySpace, false
	case "enter":
		return core.KeyEnter, false
	case "esc":
		return core.KeyEscape, false
	case "tab":
		return core.KeyTab, false
	case "p":
		return core.KeyP, false
	case "r":
		return core.KeyR, false
	case "m":
		return core.KeyM, false
	}

	return core.KeyNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}

// SimKeyMap defines the bindings shown in the simulation help line.
type SimKeyMap struct {
	Move  key.Binding
	Pause key.Binding
	Reset key.Binding
	Mute  key.Binding
	Next  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k SimKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pause, k.Reset, k.Mute, k.Next, k.Back, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k SimKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Pause, k.Reset, k.Mute},
		{k.Next, k.Back, k.Quit},
	}
}

// DefaultSimKeyMap returns the default simulation bindings.
func DefaultSimKeyMap() SimKeyMap {
	return SimKeyMap{
		Move: key.NewBinding(
			key.WithKeys("w", "a", "s", "d", "up", "down", "left", "right"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
