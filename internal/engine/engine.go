// Package engine holds the per-run context that scenes are built from.
// Every IO endpoint a scene may touch is reached through a Context value;
// there are no package-level singletons, so several runs (one per SSH
// session, for example) can coexist in one process.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/audio"
	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/render"
	"github.com/vovakirdan/simcore/internal/scene"
)

// Context is the explicit IO hub for one simulation run.
type Context struct {
	Config core.RuntimeConfig
	Sim    config.SimConfig
	Input  *core.KeyState
	Audio  audio.Sink
	Output render.Sink
	Scenes *scene.Manager
	Logger *log.Logger
	RNG    *rand.Rand

	frames int
	closed bool
}

// Option configures a Context.
type Option func(*Context)

// WithAudio sets the audio sink.
func WithAudio(a audio.Sink) Option {
	return func(c *Context) { c.Audio = a }
}

// WithOutput sets the rendering sink.
func WithOutput(o render.Sink) Option {
	return func(c *Context) { c.Output = o }
}

// WithLogger sets the logger shared by the context and its scene manager.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.Logger = l }
}

// New creates a context. Unset sinks default to no-ops, and a zero seed is
// replaced with the current time.
func New(cfg core.RuntimeConfig, sim config.SimConfig, opts ...Option) *Context {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	c := &Context{
		Config: cfg,
		Sim:    sim,
		Input:  core.NewKeyState(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Audio == nil {
		c.Audio = audio.Nop{}
	}
	if c.Output == nil {
		c.Output = &render.Discard{}
	}
	c.RNG = rand.New(rand.NewSource(cfg.Seed))
	c.Scenes = scene.NewManager(c.Logger.WithPrefix("scene"))
	return c
}

// RuntimeConfigFrom derives the runtime config from a simulation config.
func RuntimeConfigFrom(sim config.SimConfig, screenW, screenH int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		WorldW:   sim.World.Width,
		WorldH:   sim.World.Height,
		TickRate: sim.World.TickRate,
		Seed:     seed,
	}
}

// Frame advances the active scene by dt and renders it.
func (c *Context) Frame(dt float64) error {
	if c.closed {
		return fmt.Errorf("engine: frame after close: %w", core.ErrInvalidState)
	}
	c.frames++
	return c.Scenes.RunFrame(dt)
}

// Frames returns how many frames have been run.
func (c *Context) Frames() int {
	return c.frames
}

// Resize forwards a new screen size to the output and the active scene.
func (c *Context) Resize(w, h int) {
	c.Config.ScreenW, c.Config.ScreenH = w, h
	c.Output.Resize(w, h)
	c.Scenes.Resize(w, h)
}

// Close disposes every scene and releases the audio sink. Safe to call twice.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.Scenes.Dispose()

	var errs []error
	if err := c.Audio.Close(); err != nil {
		errs = append(errs, fmt.Errorf("engine: close audio: %w", err))
	}
	return errors.Join(errs...)
}

// OpenAudio builds the audio sink described by cfg. Disabled audio, or a
// device that fails to open, yields audio.Nop.
func OpenAudio(cfg config.AudioConfig, out audio.Output, logger *log.Logger) audio.Sink {
	if !cfg.Enabled {
		return audio.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sink, err := audio.NewBeepSink(cfg.AssetDir, out, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	sink.SetVolume(cfg.Volume)
	if cfg.Music != "" {
		sink.PlayMusic(cfg.Music)
	}
	return sink
}

// Stats summarises a scene's run for the history table.
type Stats struct {
	Score      int
	Collisions int
	Entities   int
}

// Reporter is implemented by scenes that expose run statistics.
type Reporter interface {
	Stats() Stats
}
