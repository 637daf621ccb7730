package core

import "time"

// Key identifies a logical key, abstracted from the platform's raw key events.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyP
	KeyR
	KeyM
	KeyQ
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyTab:
		return "Tab"
	case KeyP:
		return "P"
	case KeyR:
		return "R"
	case KeyM:
		return "M"
	case KeyQ:
		return "Q"
	default:
		return "Unknown"
	}
}

// InputSource is the read-only view of input that simulation code polls.
// Movement controllers depend on this instead of hardware events.
type InputSource interface {
	// IsHeld reports whether the key is currently held down.
	IsHeld(k Key) bool

	// JustPressed reports whether the key was newly pressed since the last
	// call for that key. The event is consumed on read so it fires once.
	JustPressed(k Key) bool

	// Pointer returns the last known pointer position.
	Pointer() Vec2
}

// KeyState tracks held keys, edge-triggered presses and the pointer.
// The platform layer feeds it from raw events; simulation code reads it
// through InputSource.
type KeyState struct {
	held        map[Key]time.Time // key -> time of last press event
	justPressed map[Key]bool
	pointer     Vec2
}

// NewKeyState creates an empty key state.
func NewKeyState() *KeyState {
	return &KeyState{
		held:        make(map[Key]time.Time),
		justPressed: make(map[Key]bool),
	}
}

// Press records a key-down event at the current time.
func (s *KeyState) Press(k Key) {
	s.PressAt(k, time.Now())
}

// PressAt records a key-down event at time t.
// Repeated presses of a held key refresh its timestamp without firing
// JustPressed again.
func (s *KeyState) PressAt(k Key, t time.Time) {
	if _, ok := s.held[k]; !ok {
		s.justPressed[k] = true
	}
	s.held[k] = t
}

// Release records a key-up event.
func (s *KeyState) Release(k Key) {
	delete(s.held, k)
}

// Expire releases every key whose last press is older than ttl.
// Terminals report key repeats but never key-up, so the platform calls this
// once per frame to approximate releases.
func (s *KeyState) Expire(now time.Time, ttl time.Duration) {
	for k, t := range s.held {
		if now.Sub(t) > ttl {
			delete(s.held, k)
		}
	}
}

// SetPointer updates the pointer position.
func (s *KeyState) SetPointer(p Vec2) {
	s.pointer = p
}

// IsHeld implements InputSource.
func (s *KeyState) IsHeld(k Key) bool {
	_, ok := s.held[k]
	return ok
}

// JustPressed implements InputSource.
func (s *KeyState) JustPressed(k Key) bool {
	if !s.justPressed[k] {
		return false
	}
	delete(s.justPressed, k)
	return true
}

// Pointer implements InputSource.
func (s *KeyState) Pointer() Vec2 {
	return s.pointer
}

// Reset clears all held keys and pending presses.
func (s *KeyState) Reset() {
	clear(s.held)
	clear(s.justPressed)
}

var _ InputSource = (*KeyState)(nil)
