package core

import (
	"testing"
	"time"
)

func TestKeyStateHeld(t *testing.T) {
	s := NewKeyState()

	if s.IsHeld(KeyW) {
		t.Error("new key state should have no held keys")
	}

	s.Press(KeyW)
	if !s.IsHeld(KeyW) {
		t.Error("W should be held after Press")
	}

	s.Release(KeyW)
	if s.IsHeld(KeyW) {
		t.Error("W should not be held after Release")
	}
}

func TestKeyStateJustPressedConsumed(t *testing.T) {
	s := NewKeyState()
	s.Press(KeySpace)

	if !s.JustPressed(KeySpace) {
		t.Fatal("JustPressed should fire after Press")
	}
	if s.JustPressed(KeySpace) {
		t.Error("JustPressed should be consumed on read")
	}
	if !s.IsHeld(KeySpace) {
		t.Error("consuming JustPressed must not release the key")
	}
}

func TestKeyStateRepeatDoesNotRetrigger(t *testing.T) {
	s := NewKeyState()
	now := time.Now()

	s.PressAt(KeyD, now)
	s.JustPressed(KeyD)
	s.PressAt(KeyD, now.Add(30*time.Millisecond)) // terminal auto-repeat

	if s.JustPressed(KeyD) {
		t.Error("repeat of a held key should not fire JustPressed")
	}

	s.Release(KeyD)
	s.PressAt(KeyD, now.Add(time.Second))
	if !s.JustPressed(KeyD) {
		t.Error("press after release should fire JustPressed")
	}
}

func TestKeyStateExpire(t *testing.T) {
	s := NewKeyState()
	now := time.Now()

	s.PressAt(KeyA, now)
	s.PressAt(KeyD, now.Add(100*time.Millisecond))

	s.Expire(now.Add(150*time.Millisecond), 80*time.Millisecond)

	if s.IsHeld(KeyA) {
		t.Error("A should have expired")
	}
	if !s.IsHeld(KeyD) {
		t.Error("D should still be held")
	}
}

func TestKeyStatePointerAndReset(t *testing.T) {
	s := NewKeyState()
	s.SetPointer(V(12, 34))
	if s.Pointer() != V(12, 34) {
		t.Errorf("Pointer() = %v, expected (12, 34)", s.Pointer())
	}

	s.Press(KeyQ)
	s.Reset()
	if s.IsHeld(KeyQ) || s.JustPressed(KeyQ) {
		t.Error("Reset should clear held and pending keys")
	}
}

func TestKeyString(t *testing.T) {
	if KeyW.String() != "W" || KeyEscape.String() != "Escape" {
		t.Error("unexpected key names")
	}
	if Key(999).String() != "Unknown" {
		t.Error("out-of-range key should be Unknown")
	}
}
