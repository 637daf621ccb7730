package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simcore SSH server",
	Long: `Start an SSH server that allows users to connect and run scenes.

Each SSH connection gets its own session with a scene picker menu and its
own engine context. Runs are recorded in the shared history (--db).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.simcore/host_key

Examples:
  simcore serve                           # Listen on :23234 with auto-generated key
  simcore serve --ssh :2222               # Listen on port 2222
  simcore serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	sim, err := loadSimConfig()
	if err != nil {
		fail("%v", err)
	}
	// Remote sessions have no speaker
	sim.Audio.Enabled = false

	logger, err := engine.NewLogger(os.Stderr, sim.Logging.Level)
	if err != nil {
		fail("%v", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Seed:        flagSeed,
	}

	server, err := tui.NewSSHServer(cfg, sim, store, logger.WithPrefix("ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting simcore SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}
