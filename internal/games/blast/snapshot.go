package blast

import "github.com/vovakirdan/tui-blast/internal/games/blast/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string // "moves" or "endless"
	Score        int
	MovesLeft    int // Zero in endless mode
	Blasts       int
	LargestGroup int
	Cursor       engine.Pos
	Board        engine.Snapshot
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.anim != nil:
		state = StateAnimating
	}

	movesLeft := g.movesLeft
	if g.mode == ModeEndless {
		movesLeft = 0
	}

	var board engine.Snapshot
	if g.board != nil {
		board = g.board.Snapshot()
	}

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        g.score,
		MovesLeft:    movesLeft,
		Blasts:       g.blasts,
		LargestGroup: g.largestGroup,
		Cursor:       g.cursor,
		Board:        board,
		State:        state,
	}
}
