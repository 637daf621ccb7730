package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs, optionally for one scene, followed by
per-scene statistics.

Examples:
  simcore runs
  simcore runs arena --limit 5
  simcore runs sandbox --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs of the scene")
}

func runRuns(_ *cobra.Command, args []string) {
	var scene string
	if len(args) == 1 {
		scene = args[0]
		if !registry.Exists(scene) {
			fail("unknown scene %q\nRun 'simcore list' to see available scenes.", scene)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	if flagClear {
		if scene == "" {
			fail("--clear needs a scene")
		}
		if err := store.ClearRuns(scene); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs of %s.\n", scene)
		return
	}

	runs, err := store.RecentRuns(scene, flagLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'simcore run <scene>' or 'simcore headless <scene>' to record one.")
		return
	}

	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %-8s  %-10s  %7s  %6s  %5s\n", "Date", "Scene", "Mode", "User", "Frames", "Score", "Hits")
	for _, r := range runs {
		user := r.Username
		if user == "" {
			user = "-"
		}
		fmt.Printf("  %-16s  %-10s  %-8s  %-10s  %7d  %6d  %5d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Scene, r.Mode, user, r.Frames, r.Score, r.Collisions)
	}

	all, err := store.GetAllSceneStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Println()
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok || (scene != "" && info.ID != scene) {
			continue
		}
		fmt.Printf("%s: %d runs, best %d, avg %.1f, %d frames\n", info.Title, st.Runs, st.BestScore, st.AvgScore, st.TotalFrames)
	}
}
