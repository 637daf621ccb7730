// Package tui provides the Bubble Tea integration for simcore.
// It drives the frame loop, maps terminal keys onto the engine's key state
// and renders the character screen.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps dt after stalls so entities never tunnel through walls.
const maxFrameDelta = 0.1

// generations numbers tick loops so a loop left over from a finished
// simulation cannot drive the next one.
var generations atomic.Uint64

// TickMsg is sent to trigger a simulation frame.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// frameDelta returns the seconds between two ticks. The first tick, a clock
// that went backwards, or a long stall fall back to sane values.
func frameDelta(prev, now time.Time, tickRate int) float64 {
	if prev.IsZero() || !now.After(prev) {
		if tickRate <= 0 {
			tickRate = 60
		}
		return 1 / float64(tickRate)
	}
	return min(now.Sub(prev).Seconds(), maxFrameDelta)
}
