package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bubble Pop SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session, prefilled with the SSH user
name. All players share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bubblepop/host_key

Examples:
  bubblepop serve                           # Listen on :23234 with auto-generated key
  bubblepop serve --ssh :2222               # Listen on port 2222
  bubblepop serve --host-key ./my_host_key  # Use specific host key
  bubblepop serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	a, err := openApp(false)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	// Session events are the server's main output.
	if !cmd.Flags().Changed("log-level") {
		a.logger.SetLevel(log.InfoLevel)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.Server.Address
	cfg.HostKeyPath = a.cfg.Server.HostKeyPath
	cfg.IdleTimeout = a.cfg.Server.IdleTimeout
	cfg.TickInterval = a.cfg.Round.TickInterval
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}
	cfg.NewController = a.newController
	cfg.Board = a.board
	cfg.History = a.historySource()
	cfg.Logger = a.logger.WithPrefix("bubblepop-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		a.Close()
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting Bubble Pop SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		a.Close()
		fatal("server: %v", err)
	}
}
