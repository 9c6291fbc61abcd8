package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the Blast WebSocket server",
	Long: `Start an HTTP server that plays Blast over WebSocket.

Each connection on /ws gets its own board. The client sends JSON
requests and receives the board events to animate:

  -> {"type":"blast","row":3,"col":4}
  <- cells_removed, cells_moved, cells_added, blasted
  -> {"type":"settled"}
  <- groups_updated

Other requests are {"type":"reset"} (with optional rows, columns,
colors, a, b, c) and {"type":"snapshot"}. GET /healthz reports liveness.

With --seed, connection n is seeded with seed+n-1.

Examples:
  blast web
  blast web --addr :9000 --rows 6 --cols 6
  blast web --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	addBoardFlags(webCmd)
}

func runWeb(cmd *cobra.Command, _ []string) error {
	board, err := loadBoardConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger("blast-web", false)
	if err != nil {
		return err
	}

	server, err := web.NewServer(web.ServerConfig{
		Address: flagWebAddr,
		Board:   board,
		Seed:    flagSeed,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
