package core

// RuntimeConfig contains configuration passed to scenes at construction.
// Scenes use this to size their world and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	WorldW   float64 // Virtual world width in world units
	WorldH   float64 // Virtual world height in world units
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		WorldW:   800,
		WorldH:   600,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// World returns the world bounds as a rectangle anchored at the origin.
func (c RuntimeConfig) World() Rect {
	return NewRect(0, 0, c.WorldW, c.WorldH)
}

// FixedDelta returns the nominal frame delta in seconds for the tick rate.
func (c RuntimeConfig) FixedDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}
