// Package audio provides the sound sink scenes play effects and music through.
package audio

// Sink plays named sounds. Names are resolved by the implementation,
// typically to files in an asset directory.
// Missing assets are never an error: the call logs and does nothing.
type Sink interface {
	PlaySound(name string)
	// PlayMusic starts a looping track, replacing any current one.
	PlayMusic(name string)
	StopMusic()
	// SetVolume sets the master volume, clamped to [0, 1].
	SetVolume(v float64)
	Close() error
}

// Nop discards everything. Used headless and for SSH sessions.
type Nop struct{}

func (Nop) PlaySound(string)  {}
func (Nop) PlayMusic(string)  {}
func (Nop) StopMusic()        {}
func (Nop) SetVolume(float64) {}
func (Nop) Close() error      { return nil }

var _ Sink = Nop{}
