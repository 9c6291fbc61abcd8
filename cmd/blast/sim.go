package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

var flagSimSteps int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Build a board and repeatedly blast its largest group, settling right
away, printing the grid after every step. Colors print as digits.

The same --seed always prints the same run.

Examples:
  blast sim --seed 7
  blast sim --seed 7 --steps 20 --rows 5 --cols 5 --colors 3`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSteps, "steps", 10, "Number of blasts to perform")
	addBoardFlags(simCmd)
}

func runSim(cmd *cobra.Command, _ []string) error {
	board, err := loadBoardConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger("blast-sim", false)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = runtimeConfig().Seed
		logger.Info("no seed given", "seed", seed)
	}

	return simulate(cmd.OutOrStdout(), board, seed, flagSimSteps, logger)
}

// largestGroup picks the biggest blastable group, the lowest ID on ties.
func largestGroup(groups []engine.Group) (engine.Group, bool) {
	var best engine.Group
	found := false
	for _, g := range groups {
		if g.Blastable && (!found || g.Size() > best.Size()) {
			best, found = g, true
		}
	}
	return best, found
}

// simulate plays steps greedy blasts and writes the board after each one.
func simulate(w io.Writer, cfg config.BlastConfig, seed int64, steps int, logger *log.Logger) error {
	b := engine.NewBoard(rand.New(rand.NewSource(seed)), engine.WithListener(func(e engine.Event) {
		if ev, ok := e.(engine.DeadlockResolved); ok {
			logger.Debug("deadlock resolved", "forced", ev.Forced)
		}
	}))
	if err := b.Initialize(cfg.Engine()); err != nil {
		return err
	}

	fmt.Fprintf(w, "seed %d, %dx%d, %d colors\n", seed, cfg.Board.Rows, cfg.Board.Columns, cfg.Board.Colors)
	fmt.Fprintln(w, b.Grid().String())

	score := 0
	for step := 1; step <= steps; step++ {
		grp, ok := largestGroup(b.Scan().Groups)
		if !ok {
			return fmt.Errorf("step %d: no blastable group", step)
		}

		res, err := b.RequestBlast(grp.Positions[0])
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if err := b.NotifySettled(); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		points := blast.Points(res.Group.Size(), res.Group.Tier, cfg.Gameplay.ScorePerCell)
		score += points
		logger.Debug("blast", "step", step, "at", grp.Positions[0], "size", res.Group.Size())

		fmt.Fprintf(w, "\nstep %d: blast %v color %d size %d tier %s +%d (score %d)\n",
			step, grp.Positions[0], grp.Color, res.Group.Size(), res.Group.Tier, points, score)
		fmt.Fprintln(w, b.Grid().String())
	}

	fmt.Fprintf(w, "\nfinal score %d, deadlocks %d\n", score, b.Deadlocks())
	return nil
}
