package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/platform/tui"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Run a scene in the terminal",
	Long: `Run a scene interactively. Without a scene id the scene picker
menu opens first; Esc returns to it from any scene.

Controls:
  WASD/Arrows - Move
  P           - Pause
  R           - Reset
  M           - Mute
  Tab         - Next scene
  Esc         - Back to menu
  Q/Ctrl+C    - Quit

Logs go to ~/.simcore/simcore.log (or logging.file in the config)
because the terminal is in use.

Examples:
  simcore run
  simcore run arena
  simcore run sandbox --fps 30
  simcore run arena --difficulty hard --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func runRun(_ *cobra.Command, args []string) {
	var scene string
	if len(args) == 1 {
		scene = args[0]
		if !registry.Exists(scene) {
			fail("unknown scene %q\nRun 'simcore list' to see available scenes.", scene)
		}
	}

	sim, err := loadSimConfig()
	if err != nil {
		fail("%v", err)
	}

	logPath := sim.Logging.File
	if logPath == "" {
		logPath = filepath.Join(config.HomeDir(), "simcore.log")
	}
	logFile, err := engine.OpenLogFile(logPath)
	if err != nil {
		fail("%v", err)
	}
	defer logFile.Close()

	logger, err := engine.NewLogger(logFile, sim.Logging.Level)
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	snd := engine.OpenAudio(sim.Audio, nil, logger.WithPrefix("audio"))
	defer snd.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Info("session starting", "scene", scene, "width", width, "height", height)
	err = tui.Run(tui.Options{
		Sim:      sim,
		Scene:    scene,
		Seed:     flagSeed,
		Width:    width,
		Height:   height,
		Audio:    snd,
		Logger:   logger,
		Store:    store,
		Mode:     storage.ModeTUI,
		Username: os.Getenv("USER"),
	})
	if err != nil {
		logger.Error("session failed", "err", err)
		fail("%v", err)
	}
}
