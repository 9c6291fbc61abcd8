// Package blast adapts the board engine to the game platform: cursor and
// mouse selection, scoring, move budgets and tween-driven drop animation.
package blast

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMoves   Mode = "moves"   // Fixed number of blasts per round
	ModeEndless Mode = "endless" // Play until quitting
)

// Game implements the Blast tile-matching game.
type Game struct {
	mode   Mode
	cfg    config.BlastConfig
	logger *log.Logger

	rng   *rand.Rand
	board *engine.Board
	tick  uint64

	score        int
	movesLeft    int
	blasts       int
	largestGroup int
	cursor       engine.Pos
	message      string

	anim    *animation
	tickDur float32 // Seconds per Step, fed to the drop tweens

	// Screen dimensions
	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool
}

// Option configures a Game.
type Option func(*Game)

// WithConfig sets the board and gameplay configuration.
func WithConfig(cfg config.BlastConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
	}
}

// WithLogger routes board events to logger at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// New creates a moves-mode game.
func New(opts ...Option) *Game {
	return newGame(ModeMoves, opts...)
}

// NewEndless creates an endless-mode game.
func NewEndless(opts ...Option) *Game {
	return newGame(ModeEndless, opts...)
}

func newGame(mode Mode, opts ...Option) *Game {
	g := &Game{
		mode:   mode,
		cfg:    config.DefaultBlastConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func init() {
	registry.Register("blast", func() registry.Game {
		return New()
	})
	registry.Register("blast_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "blast_endless"
	}
	return "blast"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Blast (Endless)"
	}
	return "Blast"
}

// Settings returns the configuration used by the next Reset.
func (g *Game) Settings() config.BlastConfig {
	return g.cfg
}

// ApplySettings validates cfg and stores it for the next Reset.
// On error the previous settings stay in effect.
func (g *Game) ApplySettings(cfg config.BlastConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// SetLogger replaces the logger used for board events.
func (g *Game) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.blasts = 0
	g.largestGroup = 0
	g.movesLeft = g.cfg.Gameplay.Moves
	g.cursor = engine.P(0, 0)
	g.message = ""
	g.anim = nil
	g.tickDur = cfg.TickSeconds()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false

	g.board = engine.NewBoard(g.rng, engine.WithListener(g.onEvent))
	if err := g.board.Initialize(g.cfg.Engine()); err != nil {
		// Settings are validated on the way in, so this only happens when a
		// caller bypassed ApplySettings. Fall back to a playable board.
		g.logger.Error("invalid board config, using defaults", "err", err)
		g.cfg = config.DefaultBlastConfig()
		g.movesLeft = g.cfg.Gameplay.Moves
		//nolint:errcheck // Defaults always validate
		g.board.Initialize(g.cfg.Engine())
	}

	g.checkScreenSize()
}

// onEvent logs board events; the engine calls it synchronously.
func (g *Game) onEvent(e engine.Event) {
	switch ev := e.(type) {
	case engine.BoardReset:
		g.logger.Debug("board reset", "rows", ev.Config.Rows, "columns", ev.Config.Columns, "colors", ev.Config.Colors)
	case engine.CellsRemoved:
		g.logger.Debug("cells removed", "count", len(ev.Positions), "color", ev.Color)
	case engine.DeadlockResolved:
		g.logger.Debug("deadlock resolved", "forced", ev.Forced)
	case engine.GroupsUpdated:
		g.logger.Debug("groups updated", "groups", len(ev.Groups), "eligible", engine.CountBlastable(ev.Groups))
	}
}

// checkScreenSize checks if the screen is large enough for the HUD and board.
func (g *Game) checkScreenSize() {
	minW, minH := minScreenSize(g.cfg.Board.Rows, g.cfg.Board.Columns)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts the layout to a new screen size and keeps the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if g.gameOver {
		return g.result()
	}

	if g.anim != nil {
		g.advanceAnimation()
		return g.result()
	}

	g.moveCursor(in)

	if in.Click != nil {
		if p, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = p
			g.blast(p)
		}
		return g.result()
	}

	if in.Has(core.ActionSelect) {
		g.blast(g.cursor)
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Message: g.message}
}

// moveCursor applies directional input, clamped to the board.
func (g *Game) moveCursor(in core.InputFrame) {
	dr, dc := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dr = -1
	case in.Has(core.ActionDown):
		dr = 1
	case in.Has(core.ActionLeft):
		dc = -1
	case in.Has(core.ActionRight):
		dc = 1
	default:
		return
	}
	g.cursor = engine.P(
		core.Clamp(g.cursor.Row+dr, 0, g.cfg.Board.Rows-1),
		core.Clamp(g.cursor.Col+dc, 0, g.cfg.Board.Columns-1),
	)
	g.message = ""
}

// blast requests removal of the group at p and starts the drop animation.
func (g *Game) blast(p engine.Pos) {
	res, err := g.board.RequestBlast(p)
	switch {
	case errors.Is(err, engine.ErrNotBlastable):
		g.message = "Pick a group of two or more"
		return
	case errors.Is(err, engine.ErrResolutionInProgress):
		return
	case err != nil:
		g.logger.Error("blast failed", "pos", p, "err", err)
		g.message = "Blast failed"
		return
	}

	size := res.Group.Size()
	points := Points(size, res.Group.Tier, g.cfg.Gameplay.ScorePerCell)
	g.score += points
	g.blasts++
	if size > g.largestGroup {
		g.largestGroup = size
	}
	if g.mode == ModeMoves {
		g.movesLeft--
	}
	g.message = fmt.Sprintf("+%d (%d cells, tier %s)", points, size, res.Group.Tier)

	g.anim = newAnimation(res, float32(g.cfg.Gameplay.DropDuration))
}

// advanceAnimation runs the drop tweens one tick and hands control back to
// the board once every cell has landed.
func (g *Game) advanceAnimation() {
	if !g.anim.Update(g.tickDur) {
		return
	}
	g.anim = nil
	if err := g.board.NotifySettled(); err != nil {
		g.logger.Error("settle failed", "err", err)
		g.gameOver = true
		return
	}
	if g.mode == ModeMoves && g.movesLeft <= 0 {
		g.gameOver = true
	}
}

// Points returns the score for removing a group: size² × base × tier multiplier.
// Tier multipliers are 1 for default through 4 for C.
func Points(size int, tier engine.Tier, base int) int {
	return size * size * base * (int(tier) + 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Stats returns the round totals used for score persistence.
func (g *Game) Stats() (blasts, largestGroup int) {
	return g.blasts, g.largestGroup
}

// Board exposes the underlying engine board, for tools that drive it directly.
func (g *Game) Board() *engine.Board {
	return g.board
}

// Animating reports whether a drop animation is in progress.
func (g *Game) Animating() bool {
	return g.anim != nil
}
