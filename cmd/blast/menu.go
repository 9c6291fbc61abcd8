package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var menuProfile string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the mode picker menu",
	Long: `Start Blast in interactive menu mode.

Pick a mode to play, edit the board in Settings, or browse High Scores.
Settings are saved per profile and used by every later round.
After a round ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  blast menu
  blast menu --profile ann
  blast menu --fps 30 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&menuProfile, "profile", storage.DefaultProfile, "Player profile for scores and settings")
	addBoardFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
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
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceSettings:
			current := board
			if store != nil {
				if stored, found, loadErr := store.LoadSettings(menuProfile, board); loadErr == nil && found {
					current = stored
				}
			}
			if _, _, err := tui.RunSettings(store, menuProfile, current, cfg.ScreenW); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue

		case tui.ChoiceScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return nil

		case tui.ChoicePlay:
			game, err := tui.PrepareGame(menuResult.GameID, store, menuProfile, board, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}

			// New board every round unless a seed was pinned
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}

			back, err := tui.Run(game, store, cfg, menuProfile, logger)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
