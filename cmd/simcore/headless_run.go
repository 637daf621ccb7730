package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/render"
)

// headless steps scene for the given number of frames of dt seconds on an
// off-screen character buffer. A zero dt means one tick at the tick rate.
func headless(scene string, frames int, dt float64, rc core.RuntimeConfig, sim config.SimConfig, logger *log.Logger) (headlessResult, error) {
	if dt <= 0 {
		dt = rc.FixedDelta()
	}

	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	sink := render.NewScreenSink(screen, rc.World(), nil, logger.WithPrefix("render"))
	ctx := engine.New(rc, sim, engine.WithOutput(sink), engine.WithLogger(logger))
	defer ctx.Close()

	if err := registry.LoadAll(ctx, scene); err != nil {
		return headlessResult{}, err
	}

	logger.Debug("headless run", "scene", scene, "frames", frames, "dt", dt, "seed", ctx.Config.Seed)
	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := ctx.Frame(dt); err != nil {
			return headlessResult{}, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	res := headlessResult{
		Scene:    scene,
		Seed:     ctx.Config.Seed,
		Frames:   ctx.Frames(),
		Duration: time.Since(start),
		Screen:   screen,
	}
	if s, _ := ctx.Scenes.Active(); s != nil {
		if r, ok := s.(engine.Reporter); ok {
			res.Stats = r.Stats()
		}
	}
	return res, nil
}
