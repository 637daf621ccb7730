// simcore runs 2D simulation scenes in the terminal, headless, or over SSH.
//
// Usage:
//
//	simcore list               - List available scenes
//	simcore run [scene]        - Run a scene in the terminal (menu if omitted)
//	simcore headless <scene>   - Step a scene without a terminal and print stats
//	simcore serve              - Start SSH server for remote sessions
//	simcore runs [scene]       - Show recorded runs
//	simcore config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Override the tick rate
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.simcore/runs.db)
//	--config <path>       - Custom sim.yaml
//	--log-level <level>   - debug, info, warn or error
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/simcore/internal/scenes/arena"
	_ "github.com/vovakirdan/simcore/internal/scenes/sandbox"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "simcore",
	Short: "simcore - a 2D entity simulation core",
	Long: `simcore runs small 2D simulation scenes: entities, AABB collisions
and movement behaviours, rendered as characters in your terminal.

Available commands:
  list      - Show all available scenes
  run       - Run a scene interactively
  headless  - Step a scene without a terminal
  serve     - Start SSH server for remote sessions
  runs      - View recorded runs
  config    - Print the effective configuration

Examples:
  simcore list
  simcore run arena
  simcore run sandbox --difficulty hard
  simcore headless arena --frames 600 --seed 42
  simcore serve --ssh :2222
  simcore runs arena`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.simcore/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sim.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSimConfig loads sim.yaml and applies the global flag overrides.
func loadSimConfig() (config.SimConfig, error) {
	sim, err := config.Load(flagConfig)
	if err != nil {
		return config.SimConfig{}, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.SimConfig{}, err
		}
		config.ApplyPreset(&sim, preset)
	}
	if flagFPS > 0 {
		sim.World.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		sim.Logging.Level = flagLogLevel
	}
	return sim, nil
}

// openStore opens the run history, or returns nil with a warning so runs
// still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
