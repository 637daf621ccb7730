package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/simcore/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration simcore would run with, after the search
order (--config, ~/.simcore/configs, ./configs, built-in) and the
--difficulty, --fps and --log-level overrides.

Save the output to ~/.simcore/configs/sim.yaml to customise it.

Examples:
  simcore config
  simcore config --difficulty hard > ~/.simcore/configs/sim.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	sim, err := loadSimConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(sim)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(data))
}
