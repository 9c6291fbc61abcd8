package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagMode    string
	flagProfile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of Blast.

Controls:
  Arrows/hjkl/wasd  - Move cursor
  Space/Enter/Click - Blast the group under the cursor
  P                 - Pause
  R                 - Restart
  Esc/Q/Ctrl+C      - Quit

Modes:
  moves   - Score as much as possible within the move budget
  endless - No move limit

Difficulty options:
  easy   - 3 colors, 40 moves
  normal - 4 colors, 30 moves
  hard   - 6 colors, 20 moves
  fixed  - Keep the config's values

Board flags override the config file and the difficulty preset. Without
any board flag the settings saved for --profile in the menu are used.

Examples:
  blast play
  blast play --mode endless
  blast play --difficulty hard
  blast play --rows 6 --cols 6 --colors 3
  blast play --config ./my-board.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "moves", "Game mode: moves or endless")
	playCmd.Flags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Player profile for scores and settings")
	addBoardFlags(playCmd)
}

func gameID(mode string) (string, error) {
	switch mode {
	case "moves", "":
		return "blast", nil
	case "endless":
		return "blast_endless", nil
	}
	return "", fmt.Errorf("unknown mode %q (want moves or endless)", mode)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	id, err := gameID(flagMode)
	if err != nil {
		return err
	}

	board, err := loadBoardConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger("blast", true)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := tui.PrepareGame(id, store, flagProfile, board, logger)
	if err != nil {
		return err
	}
	// Explicit flags win over stored settings.
	if tunable, ok := game.(registry.Tunable); ok && boardFlagsChanged(cmd) {
		if err := tunable.ApplySettings(board); err != nil {
			return err
		}
	}

	_, err = tui.Run(game, store, runtimeConfig(), flagProfile, logger)
	return err
}
