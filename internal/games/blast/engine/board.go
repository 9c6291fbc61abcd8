package engine

import (
	"fmt"
)

// Phase is the board's position in the blast cycle.
type Phase int

const (
	// PhaseIdle accepts blast requests.
	PhaseIdle Phase = iota
	// PhaseResolving has removed, compacted and refilled, and waits for
	// NotifySettled before rescanning.
	PhaseResolving
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// BlastResult describes one applied blast.
type BlastResult struct {
	Group    Group
	Affected Affected
	Moved    []Move
	Added    []Move
}

// ScanResult is a read-only view of the latest scan.
type ScanResult struct {
	Groups []Group  // Every group, eligible or not, in discovery order
	Cells  [][]Cell // Row-major; cells carry blastable flag, group id and tier
}

// Eligible returns only the groups that may be blasted.
func (s ScanResult) Eligible() []Group {
	var out []Group
	for _, g := range s.Groups {
		if g.Blastable {
			out = append(out, g)
		}
	}
	return out
}

// Board sequences scanning, blasting, gravity, refill and deadlock
// resolution. It owns its grid exclusively and is not safe for concurrent use.
type Board struct {
	rng      RNG
	listener Listener

	cfg    Config
	grid   *Grid
	groups []Group
	phase  Phase

	last      *BlastResult
	deadlocks int
}

// Option configures a Board.
type Option func(*Board)

// WithListener registers the function that receives board events.
func WithListener(l Listener) Option {
	return func(b *Board) {
		b.listener = l
	}
}

// NewBoard creates an uninitialized board drawing randomness from rng.
func NewBoard(rng RNG, opts ...Option) *Board {
	b := &Board{rng: rng}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetListener replaces the event listener. Nil disables events.
func (b *Board) SetListener(l Listener) {
	b.listener = l
}

func (b *Board) emit(e Event) {
	if b.listener != nil {
		b.listener(e)
	}
}

// Initialize validates cfg and builds a new balanced board. On a config
// error nothing about the current board changes.
func (b *Board) Initialize(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return b.install(cfg, Generate(cfg, b.rng))
}

// Load validates cfg and installs a caller-built grid. The grid must match
// the configured size, be fully populated and only use palette colors.
func (b *Board) Load(cfg Config, g *Grid) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if g.rows != cfg.Rows || g.columns != cfg.Columns {
		return &ConfigError{
			Field:   "grid",
			Message: fmt.Sprintf("grid is %dx%d, config expects %dx%d", g.rows, g.columns, cfg.Rows, cfg.Columns),
		}
	}
	for _, s := range g.slots {
		if !s.Occupied {
			return fmt.Errorf("load: %w", ErrIncompleteGrid)
		}
		if s.Cell.Color < 0 || s.Cell.Color >= cfg.Colors {
			return &ConfigError{
				Field:   "grid",
				Message: fmt.Sprintf("color %d at %v outside palette of %d", s.Cell.Color, s.Cell.Pos, cfg.Colors),
			}
		}
	}
	return b.install(cfg, g.Clone())
}

// install scans the new grid, resolving a deadlock if needed, and only then
// replaces the board state.
func (b *Board) install(cfg Config, g *Grid) error {
	groups, err := Scan(g)
	if err != nil {
		return err
	}
	ClassifyGroups(g, groups, cfg.Thresholds)

	deadlocked := CountBlastable(groups) == 0
	forced := false
	if deadlocked {
		groups, forced, err = ResolveDeadlock(g, cfg.Thresholds, b.rng)
		if err != nil {
			return err
		}
	}

	b.cfg = cfg
	b.grid = g
	b.groups = groups
	b.phase = PhaseIdle
	b.last = nil
	b.deadlocks = 0

	b.emit(BoardReset{Config: cfg})
	if deadlocked {
		b.deadlocks++
		b.emit(DeadlockResolved{Forced: forced})
	}
	b.emit(GroupsUpdated{Groups: cloneGroups(groups)})
	return nil
}

// Scan returns the groups and per-cell attributes of the latest scan.
// It does not modify the board.
func (b *Board) Scan() ScanResult {
	if b.grid == nil {
		return ScanResult{}
	}
	cells := make([][]Cell, b.grid.rows)
	for r := range cells {
		cells[r] = make([]Cell, b.grid.columns)
		for c := range cells[r] {
			cells[r][c] = b.grid.at(P(r, c)).Cell
		}
	}
	return ScanResult{Groups: cloneGroups(b.groups), Cells: cells}
}

// GroupAt returns the scanned group containing p.
func (b *Board) GroupAt(p Pos) (Group, bool) {
	if b.grid == nil || !b.grid.InBounds(p) {
		return Group{}, false
	}
	slot := b.grid.at(p)
	if !slot.Occupied {
		return Group{}, false
	}
	id := slot.Cell.GroupID
	if id < 1 || id > len(b.groups) {
		return Group{}, false
	}
	return cloneGroup(b.groups[id-1]), true
}

// RequestBlast removes the group containing p, compacts the affected
// columns and refills the grid, then waits in PhaseResolving for
// NotifySettled. Requests made while resolving are rejected.
func (b *Board) RequestBlast(p Pos) (BlastResult, error) {
	if b.grid == nil {
		return BlastResult{}, ErrNotInitialized
	}
	if b.phase == PhaseResolving {
		return BlastResult{}, ErrResolutionInProgress
	}

	slot, err := b.grid.Get(p)
	if err != nil {
		return BlastResult{}, fmt.Errorf("blast: %w", err)
	}
	if !slot.Occupied {
		return BlastResult{}, fmt.Errorf("blast at %v: empty slot: %w", p, ErrNotBlastable)
	}
	grp, ok := b.GroupAt(p)
	if !ok || grp.Size() < MinGroupSize {
		return BlastResult{}, fmt.Errorf("blast at %v: %w", p, ErrNotBlastable)
	}

	affected, err := RemoveGroup(b.grid, grp)
	if err != nil {
		return BlastResult{}, err
	}
	b.phase = PhaseResolving
	b.emit(CellsRemoved{Positions: append([]Pos(nil), grp.Positions...), Color: grp.Color})

	moved := Compact(b.grid, affected.Cols)
	b.emit(CellsMoved{Moves: moved})

	added := Refill(b.grid, b.cfg.Colors, b.rng)
	b.emit(CellsAdded{Moves: added})

	res := BlastResult{Group: grp, Affected: affected, Moved: moved, Added: added}
	b.last = &res
	return res, nil
}

// NotifySettled signals that the renderer finished animating the last
// blast. The board rescans, resolves a deadlock if one appeared, and
// returns to PhaseIdle. It is a no-op while idle.
func (b *Board) NotifySettled() error {
	if b.grid == nil {
		return ErrNotInitialized
	}
	if b.phase != PhaseResolving {
		return nil
	}

	groups, err := Scan(b.grid)
	if err != nil {
		return err
	}
	ClassifyGroups(b.grid, groups, b.cfg.Thresholds)

	if CountBlastable(groups) == 0 {
		var forced bool
		groups, forced, err = ResolveDeadlock(b.grid, b.cfg.Thresholds, b.rng)
		if err != nil {
			return err
		}
		b.deadlocks++
		b.emit(DeadlockResolved{Forced: forced})
	}

	b.groups = groups
	b.emit(GroupsUpdated{Groups: cloneGroups(groups)})
	b.phase = PhaseIdle
	return nil
}

// Phase returns the current cycle phase.
func (b *Board) Phase() Phase {
	return b.phase
}

// Config returns the active configuration.
func (b *Board) Config() Config {
	return b.cfg
}

// Grid returns a copy of the current grid, or nil before Initialize.
func (b *Board) Grid() *Grid {
	if b.grid == nil {
		return nil
	}
	return b.grid.Clone()
}

// LastBlast returns the most recent blast, if any.
func (b *Board) LastBlast() (BlastResult, bool) {
	if b.last == nil {
		return BlastResult{}, false
	}
	return *b.last, true
}

// Deadlocks returns how many times the board reshuffled since Initialize.
func (b *Board) Deadlocks() int {
	return b.deadlocks
}

func cloneGroup(g Group) Group {
	g.Positions = append([]Pos(nil), g.Positions...)
	return g
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = cloneGroup(g)
	}
	return out
}
