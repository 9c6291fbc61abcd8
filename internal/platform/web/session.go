package web

import (
	"errors"
	"fmt"
	"math/rand"
	"net"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

var errBadRequest = errors.New("bad request")

// Session is one connected client and the board it plays on.
// All methods run on the connection's read goroutine.
type Session struct {
	id     int64
	conn   *websocket.Conn
	logger *log.Logger

	cfg   config.BlastConfig
	board *engine.Board
	score int

	pending []ServerMessage // Board events waiting to be written
}

func newSession(id int64, conn *websocket.Conn, cfg config.BlastConfig, seed int64, logger *log.Logger) *Session {
	s := &Session{
		id:     id,
		conn:   conn,
		logger: logger,
		cfg:    cfg,
	}
	s.board = engine.NewBoard(rand.New(rand.NewSource(seed)), engine.WithListener(s.onEvent))
	return s
}

// onEvent queues board events; they are flushed after the request that
// caused them, in emission order.
func (s *Session) onEvent(e engine.Event) {
	if msg, ok := eventMessage(e); ok {
		s.pending = append(s.pending, msg)
	}
	if ev, ok := e.(engine.DeadlockResolved); ok {
		s.logger.Debug("deadlock resolved", "forced", ev.Forced)
	}
}

// run initializes the board and serves requests until the client leaves.
func (s *Session) run() error {
	if err := s.board.Initialize(s.cfg.Engine()); err != nil {
		return err
	}
	if err := s.flush(ServerMessage{Type: TypeSnapshot, Data: s.board.Snapshot()}); err != nil {
		return err
	}

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		reply := s.handle(msg)
		if err := s.flush(reply...); err != nil {
			return err
		}
	}
}

// handle applies one client message and returns the replies that follow
// the queued board events.
func (s *Session) handle(msg ClientMessage) []ServerMessage {
	switch msg.Type {
	case TypeBlast:
		res, err := s.board.RequestBlast(engine.P(msg.Row, msg.Col))
		if err != nil {
			s.logger.Debug("blast rejected", "row", msg.Row, "col", msg.Col, "err", err)
			return []ServerMessage{errorMessage(err)}
		}
		size := res.Group.Size()
		points := blast.Points(size, res.Group.Tier, s.cfg.Gameplay.ScorePerCell)
		s.score += points
		s.logger.Debug("blast", "size", size, "tier", res.Group.Tier, "score", s.score)
		return []ServerMessage{{Type: TypeBlasted, Data: BlastedData{
			Size:   size,
			Tier:   res.Group.Tier.String(),
			Points: points,
			Score:  s.score,
		}}}

	case TypeSettled:
		if err := s.board.NotifySettled(); err != nil {
			return []ServerMessage{errorMessage(err)}
		}
		return nil

	case TypeReset:
		cfg := s.cfg
		config.Overrides{
			Rows: msg.Rows, Columns: msg.Columns, Colors: msg.Colors,
			A: msg.A, B: msg.B, C: msg.C,
		}.Apply(&cfg)
		var grid *engine.Grid
		if msg.Grid != "" {
			g, err := engine.ParseGrid(msg.Grid)
			if err != nil {
				return []ServerMessage{errorMessage(fmt.Errorf("%w: %v", errBadRequest, err))}
			}
			grid = g
			cfg.Board.Rows, cfg.Board.Columns = g.Rows(), g.Columns()
		}
		if err := cfg.Validate(); err != nil {
			return []ServerMessage{errorMessage(err)}
		}
		if err := s.install(cfg, grid); err != nil {
			return []ServerMessage{errorMessage(err)}
		}
		s.cfg = cfg
		s.score = 0
		s.logger.Info("board reset", "rows", cfg.Board.Rows, "columns", cfg.Board.Columns, "colors", cfg.Board.Colors)
		return []ServerMessage{{Type: TypeSnapshot, Data: s.board.Snapshot()}}

	case TypeSnapshot:
		return []ServerMessage{{Type: TypeSnapshot, Data: s.board.Snapshot()}}
	}

	return []ServerMessage{errorMessage(fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type))}
}

// install builds a fresh board, or loads grid when one was sent.
func (s *Session) install(cfg config.BlastConfig, grid *engine.Grid) error {
	if grid == nil {
		return s.board.Initialize(cfg.Engine())
	}
	return s.board.Load(cfg.Engine(), grid)
}

// flush writes queued board events followed by extra.
func (s *Session) flush(extra ...ServerMessage) error {
	out := append(s.pending, extra...)
	s.pending = nil
	for _, msg := range out {
		if err := s.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("session %d: write %s: %w", s.id, msg.Type, err)
		}
	}
	return nil
}
