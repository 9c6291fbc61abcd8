package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// wireMessage is a server message with its payload left undecoded.
type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Board:  config.DefaultBlastConfig(),
		Seed:   42,
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + routeWS
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline() failed: %v", err)
	}
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

// readUntil reads messages until one of type want arrives and returns the
// types seen along the way, want included.
func readUntil(t *testing.T, conn *websocket.Conn, want string) ([]string, wireMessage) {
	t.Helper()
	var seen []string
	for range 20 {
		msg := read(t, conn)
		seen = append(seen, msg.Type)
		if msg.Type == want {
			return seen, msg
		}
	}
	t.Fatalf("no %s message, got %v", want, seen)
	return nil, wireMessage{}
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
}

func decode[T any](t *testing.T, msg wireMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(msg.Data, &v); err != nil {
		t.Fatalf("decode %s: %v", msg.Type, err)
	}
	return v
}

func TestBlastCycleOverWebSocket(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)

	seen, msg := readUntil(t, conn, TypeSnapshot)
	if seen[0] != TypeBoardReset || seen[len(seen)-2] != TypeGroupsUpdated {
		t.Errorf("opening messages = %v", seen)
	}
	snap := decode[engine.Snapshot](t, msg)
	if snap.Rows != 8 || snap.Columns != 8 || snap.Eligible == 0 || snap.Phase != "idle" {
		t.Fatalf("snapshot = %+v", snap)
	}

	target, single := engine.Pos{Row: -1}, engine.Pos{Row: -1}
	for r, row := range snap.Cells {
		for c, cell := range row {
			if cell.Blastable && target.Row < 0 {
				target = engine.P(r, c)
			}
			if !cell.Blastable && single.Row < 0 {
				single = engine.P(r, c)
			}
		}
	}

	if single.Row >= 0 {
		send(t, conn, ClientMessage{Type: TypeBlast, Row: single.Row, Col: single.Col})
		errMsg := decode[ErrorData](t, read(t, conn))
		if errMsg.Code != "not_blastable" {
			t.Errorf("single cell blast code = %q", errMsg.Code)
		}
	}

	send(t, conn, ClientMessage{Type: TypeBlast, Row: target.Row, Col: target.Col})
	want := []string{TypeCellsRemoved, TypeCellsMoved, TypeCellsAdded, TypeBlasted}
	var blasted wireMessage
	for i, typ := range want {
		blasted = read(t, conn)
		if blasted.Type != typ {
			t.Fatalf("message %d = %s, want %s", i, blasted.Type, typ)
		}
	}
	result := decode[BlastedData](t, blasted)
	if result.Size < 2 || result.Score != result.Points || result.Points <= 0 {
		t.Errorf("blasted = %+v", result)
	}

	send(t, conn, ClientMessage{Type: TypeBlast, Row: target.Row, Col: target.Col})
	if code := decode[ErrorData](t, read(t, conn)).Code; code != "resolution_in_progress" {
		t.Errorf("blast while resolving code = %q", code)
	}

	send(t, conn, ClientMessage{Type: TypeSettled})
	_, msg = readUntil(t, conn, TypeGroupsUpdated)
	if groups := decode[GroupsData](t, msg); groups.Eligible == 0 {
		t.Error("settled board should have a blastable group")
	}
}

func TestResetAndBadRequests(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)
	readUntil(t, conn, TypeSnapshot)

	send(t, conn, ClientMessage{Type: TypeReset, Rows: 11})
	errMsg := decode[ErrorData](t, read(t, conn))
	if errMsg.Code != "invalid_config" || errMsg.Message != "Rows and Columns must be between 2 and 10!" {
		t.Errorf("bad reset = %+v", errMsg)
	}

	send(t, conn, ClientMessage{Type: TypeReset, Rows: 4, Columns: 5, Colors: 3})
	seen, msg := readUntil(t, conn, TypeSnapshot)
	if seen[0] != TypeBoardReset {
		t.Errorf("reset messages = %v", seen)
	}
	if snap := decode[engine.Snapshot](t, msg); snap.Rows != 4 || snap.Columns != 5 || snap.Colors != 3 {
		t.Errorf("reset snapshot = %dx%d colors %d", snap.Rows, snap.Columns, snap.Colors)
	}

	send(t, conn, ClientMessage{Type: TypeBlast, Row: 9, Col: 0})
	if code := decode[ErrorData](t, read(t, conn)).Code; code != "out_of_bounds" {
		t.Errorf("out of bounds code = %q", code)
	}

	send(t, conn, ClientMessage{Type: "jump"})
	if code := decode[ErrorData](t, read(t, conn)).Code; code != "bad_request" {
		t.Errorf("unknown type code = %q", code)
	}
}

func TestResetWithGrid(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)
	readUntil(t, conn, TypeSnapshot)

	send(t, conn, ClientMessage{Type: TypeReset, Colors: 2, Grid: "00\n11"})
	_, msg := readUntil(t, conn, TypeSnapshot)
	snap := decode[engine.Snapshot](t, msg)
	if snap.Rows != 2 || snap.Columns != 2 || snap.Eligible != 2 {
		t.Fatalf("grid snapshot = %+v", snap)
	}
	if snap.Cells[0][0].Color != 0 || snap.Cells[1][1].Color != 1 {
		t.Errorf("cells = %+v", snap.Cells)
	}

	send(t, conn, ClientMessage{Type: TypeBlast, Row: 0, Col: 1})
	removed := decode[CellsRemovedData](t, read(t, conn))
	want := []PosView{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	if len(removed.Positions) != 2 || removed.Positions[0] != want[0] || removed.Positions[1] != want[1] || removed.Color != 0 {
		t.Errorf("cells_removed = %+v", removed)
	}
	moved := decode[MovesData](t, read(t, conn))
	if len(moved.Moves) != 0 {
		t.Errorf("top row blast should move nothing, got %+v", moved.Moves)
	}
	added := decode[MovesData](t, read(t, conn))
	if len(added.Moves) != 2 || added.Moves[0].From.Row != -1 || added.Moves[0].To != (PosView{Row: 0, Col: 0}) {
		t.Errorf("cells_added = %+v", added.Moves)
	}
	if result := decode[BlastedData](t, read(t, conn)); result.Size != 2 || result.Tier != "default" {
		t.Errorf("blasted = %+v", result)
	}

	send(t, conn, ClientMessage{Type: TypeReset, Grid: "0.\n11"})
	if code := decode[ErrorData](t, read(t, conn)).Code; code != "incomplete_grid" {
		t.Errorf("grid with a hole code = %q", code)
	}
	send(t, conn, ClientMessage{Type: TypeReset, Grid: "0x"})
	if code := decode[ErrorData](t, read(t, conn)).Code; code != "bad_request" {
		t.Errorf("unparsable grid code = %q", code)
	}
}

func TestHealth(t *testing.T) {
	srv, ts := startServer(t)
	conn := dial(t, ts)
	readUntil(t, conn, TypeSnapshot)

	if srv.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", srv.Sessions())
	}

	resp, err := http.Get(ts.URL + routeHealth)
	if err != nil {
		t.Fatalf("GET %s failed: %v", routeHealth, err)
	}
	defer resp.Body.Close()

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" || health.Sessions != 1 {
		t.Errorf("health = %+v", health)
	}

	resp2, err := http.Post(ts.URL+routeHealth, "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("POST %s status = %d", routeHealth, resp2.StatusCode)
	}
}

func TestCloseSessions(t *testing.T) {
	srv, ts := startServer(t)
	conn := dial(t, ts)
	readUntil(t, conn, TypeSnapshot)

	if n := srv.closeSessions(); n != 1 {
		t.Errorf("closeSessions() = %d, want 1", n)
	}

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline() failed: %v", err)
	}
	var msg wireMessage
	err := conn.ReadJSON(&msg)
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadJSON() error = %v, want going away close", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for srv.Sessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Sessions() = %d after close, want 0", srv.Sessions())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNewServerRejectsBadBoard(t *testing.T) {
	cfg := config.DefaultBlastConfig()
	cfg.Board.Colors = 0
	if _, err := NewServer(ServerConfig{Board: cfg}); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("NewServer() error = %v, want ErrInvalidConfig", err)
	}
}

func TestErrorMessageCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("blast: %w", engine.ErrNotBlastable), "not_blastable"},
		{fmt.Errorf("blast: %w", engine.ErrOutOfBounds), "out_of_bounds"},
		{engine.ErrResolutionInProgress, "resolution_in_progress"},
		{engine.ErrNotInitialized, "not_initialized"},
		{fmt.Errorf("load: %w", engine.ErrIncompleteGrid), "incomplete_grid"},
		{&engine.ConfigError{Field: "A", Message: "A must be greater than 0!"}, "invalid_config"},
		{fmt.Errorf("%w: nope", errBadRequest), "bad_request"},
		{errors.New("disk on fire"), "internal"},
	}

	for _, tc := range tests {
		msg := errorMessage(tc.err)
		data, ok := msg.Data.(ErrorData)
		if msg.Type != TypeError || !ok || data.Code != tc.code {
			t.Errorf("errorMessage(%v) = %+v, want code %s", tc.err, msg, tc.code)
		}
	}
}
