package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/engine"
)

func TestHeadlessIsDeterministic(t *testing.T) {
	sim := config.DefaultSimConfig()
	rc := engine.RuntimeConfigFrom(sim, 80, 24, 42)
	logger := log.New(io.Discard)

	a, err := headless("arena", 300, 0, rc, sim, logger)
	if err != nil {
		t.Fatalf("headless() error: %v", err)
	}
	b, err := headless("arena", 300, 0, rc, sim, logger)
	if err != nil {
		t.Fatalf("headless() error: %v", err)
	}

	if a.Frames != 300 || a.Seed != 42 {
		t.Errorf("frames=%d seed=%d", a.Frames, a.Seed)
	}
	if a.Stats != b.Stats {
		t.Errorf("same seed gave different stats: %+v vs %+v", a.Stats, b.Stats)
	}
	if a.Screen.String() != b.Screen.String() {
		t.Error("same seed gave different final frames")
	}
}

func TestHeadlessUnknownScene(t *testing.T) {
	sim := config.DefaultSimConfig()
	rc := engine.RuntimeConfigFrom(sim, 80, 24, 1)
	if _, err := headless("missing", 10, 0, rc, sim, log.New(io.Discard)); err == nil {
		t.Error("expected an error for an unknown scene")
	}
}

func TestLoadSimConfigFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagFPS, flagDifficulty, flagLogLevel = 30, "fixed", "debug"
	t.Cleanup(func() { flagFPS, flagDifficulty, flagLogLevel = 0, "", "" })

	sim, err := loadSimConfig()
	if err != nil {
		t.Fatalf("loadSimConfig() error: %v", err)
	}
	if sim.World.TickRate != 30 || sim.Difficulty.Enabled || sim.Logging.Level != "debug" {
		t.Errorf("overrides not applied: %+v", sim)
	}

	flagDifficulty = "brutal"
	if _, err := loadSimConfig(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}
