package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Blast SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode picker menu.
The SSH user name is the player profile: settings and scores are kept
per user, and all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blast/host_key

Examples:
  blast serve                           # Listen on :23234 with auto-generated key
  blast serve --ssh :2222               # Listen on port 2222
  blast serve --host-key ./my_host_key  # Use specific host key
  blast serve --difficulty easy         # Default board for new players

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	addBoardFlags(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	board, err := loadBoardConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger("blast-ssh", false)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Board:       board,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("press Ctrl+C to stop")
	return server.ListenAndServe()
}
