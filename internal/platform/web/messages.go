// Package web serves Blast boards over WebSocket. Each connection owns one
// board; the client drives the blast cycle and renders the board events the
// server streams back.
package web

import (
	"errors"

	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// Client message types.
const (
	TypeBlast    = "blast"    // Blast the group at Row/Col
	TypeSettled  = "settled"  // Animations finished; rescan the board
	TypeReset    = "reset"    // Start a new board, optionally resized
	TypeSnapshot = "snapshot" // Ask for the full board state
)

// Server message types.
const (
	TypeCellsRemoved     = "cells_removed"
	TypeCellsMoved       = "cells_moved"
	TypeCellsAdded       = "cells_added"
	TypeGroupsUpdated    = "groups_updated"
	TypeBoardReset       = "board_reset"
	TypeDeadlockResolved = "deadlock_resolved"
	TypeBlasted          = "blasted"
	TypeError            = "error"
)

// ClientMessage is every message a client may send. Fields that do not
// apply to Type are ignored; zero board fields on reset keep the current value.
// A reset with Grid installs those cells instead of generating a board, and
// takes its size from the grid.
type ClientMessage struct {
	Type    string `json:"type"`
	Row     int    `json:"row,omitempty"`
	Col     int    `json:"col,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	Colors  int    `json:"colors,omitempty"`
	A       int    `json:"a,omitempty"`
	B       int    `json:"b,omitempty"`
	C       int    `json:"c,omitempty"`
	Grid    string `json:"grid,omitempty"` // Rows of color digits separated by newlines
}

// ServerMessage wraps one outgoing event.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// PosView is a grid position on the wire.
type PosView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveView is a falling cell on the wire. From.Row is negative for new cells.
type MoveView struct {
	From  PosView `json:"from"`
	To    PosView `json:"to"`
	Color int     `json:"color"`
}

// GroupView is a scanned group on the wire.
type GroupView struct {
	ID        int       `json:"id"`
	Color     int       `json:"color"`
	Size      int       `json:"size"`
	Tier      string    `json:"tier"`
	Blastable bool      `json:"blastable"`
	Positions []PosView `json:"positions"`
}

// CellsRemovedData is the payload of cells_removed.
type CellsRemovedData struct {
	Positions []PosView `json:"positions"`
	Color     int       `json:"color"`
}

// MovesData is the payload of cells_moved and cells_added.
type MovesData struct {
	Moves []MoveView `json:"moves"`
}

// GroupsData is the payload of groups_updated.
type GroupsData struct {
	Groups   []GroupView `json:"groups"`
	Eligible int         `json:"eligible"`
}

// BoardResetData is the payload of board_reset.
type BoardResetData struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
	Colors  int `json:"colors"`
	A       int `json:"a"`
	B       int `json:"b"`
	C       int `json:"c"`
}

// DeadlockData is the payload of deadlock_resolved.
type DeadlockData struct {
	Forced bool `json:"forced"`
}

// BlastedData is sent after a successful blast, once its events are out.
type BlastedData struct {
	Size   int    `json:"size"`
	Tier   string `json:"tier"`
	Points int    `json:"points"`
	Score  int    `json:"score"`
}

// ErrorData is the payload of error.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func posView(p engine.Pos) PosView {
	return PosView{Row: p.Row, Col: p.Col}
}

func posViews(ps []engine.Pos) []PosView {
	out := make([]PosView, len(ps))
	for i, p := range ps {
		out[i] = posView(p)
	}
	return out
}

func moveViews(ms []engine.Move) []MoveView {
	out := make([]MoveView, len(ms))
	for i, m := range ms {
		out[i] = MoveView{From: posView(m.From), To: posView(m.To), Color: m.Color}
	}
	return out
}

func groupViews(gs []engine.Group) []GroupView {
	out := make([]GroupView, len(gs))
	for i, g := range gs {
		out[i] = GroupView{
			ID:        g.ID,
			Color:     g.Color,
			Size:      g.Size(),
			Tier:      g.Tier.String(),
			Blastable: g.Blastable,
			Positions: posViews(g.Positions),
		}
	}
	return out
}

// eventMessage converts a board event to its wire form.
func eventMessage(e engine.Event) (ServerMessage, bool) {
	switch ev := e.(type) {
	case engine.CellsRemoved:
		return ServerMessage{Type: TypeCellsRemoved, Data: CellsRemovedData{Positions: posViews(ev.Positions), Color: ev.Color}}, true
	case engine.CellsMoved:
		return ServerMessage{Type: TypeCellsMoved, Data: MovesData{Moves: moveViews(ev.Moves)}}, true
	case engine.CellsAdded:
		return ServerMessage{Type: TypeCellsAdded, Data: MovesData{Moves: moveViews(ev.Moves)}}, true
	case engine.GroupsUpdated:
		return ServerMessage{Type: TypeGroupsUpdated, Data: GroupsData{Groups: groupViews(ev.Groups), Eligible: engine.CountBlastable(ev.Groups)}}, true
	case engine.BoardReset:
		c := ev.Config
		return ServerMessage{Type: TypeBoardReset, Data: BoardResetData{Rows: c.Rows, Columns: c.Columns, Colors: c.Colors, A: c.A, B: c.B, C: c.C}}, true
	case engine.DeadlockResolved:
		return ServerMessage{Type: TypeDeadlockResolved, Data: DeadlockData{Forced: ev.Forced}}, true
	}
	return ServerMessage{}, false
}

// errorMessage maps engine errors to stable codes.
func errorMessage(err error) ServerMessage {
	code := "internal"
	var cerr *engine.ConfigError
	switch {
	case errors.As(err, &cerr):
		return ServerMessage{Type: TypeError, Data: ErrorData{Code: "invalid_config", Message: cerr.Message}}
	case errors.Is(err, engine.ErrNotBlastable):
		code = "not_blastable"
	case errors.Is(err, engine.ErrOutOfBounds):
		code = "out_of_bounds"
	case errors.Is(err, engine.ErrResolutionInProgress):
		code = "resolution_in_progress"
	case errors.Is(err, engine.ErrNotInitialized):
		code = "not_initialized"
	case errors.Is(err, engine.ErrIncompleteGrid):
		code = "incomplete_grid"
	case errors.Is(err, errBadRequest):
		code = "bad_request"
	}
	return ServerMessage{Type: TypeError, Data: ErrorData{Code: code, Message: err.Error()}}
}
