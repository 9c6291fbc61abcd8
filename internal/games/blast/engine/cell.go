// Package engine provides the board simulation for the Blast tile-matching game:
// connected-group scanning, size tiers, removal, gravity, refill and deadlock
// resolution. This package is UI-agnostic and deterministic for a given RNG.
package engine

import "fmt"

// Pos is a grid coordinate. Row 0 is the top row, Col 0 the leftmost column.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions row-major (top-left to bottom-right).
func (p Pos) Less(other Pos) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Tier is the size class of a group, used for visual intensity only.
type Tier uint8

const (
	TierDefault Tier = iota
	TierA
	TierB
	TierC
)

// String returns the string representation of a tier.
func (t Tier) String() string {
	switch t {
	case TierDefault:
		return "default"
	case TierA:
		return "A"
	case TierB:
		return "B"
	case TierC:
		return "C"
	default:
		return "unknown"
	}
}

// Cell is a colored unit occupying one grid slot.
// Blastable, GroupID and Tier are transient: they are rewritten on every scan.
type Cell struct {
	Color     int
	Pos       Pos
	Blastable bool
	GroupID   int
	Tier      Tier
}

// NewCell returns an unscanned cell with the given color at p.
func NewCell(color int, p Pos) Cell {
	return Cell{Color: color, Pos: p}
}

// Slot is one grid entry: either empty or holding a cell.
type Slot struct {
	Occupied bool
	Cell     Cell // Valid only when Occupied is true
}

// Empty returns an empty slot.
func Empty() Slot {
	return Slot{}
}

// Occupied returns a slot holding c.
func Occupied(c Cell) Slot {
	return Slot{Occupied: true, Cell: c}
}

// Move records a cell travelling from one position to another.
// Cells created by refill start above the grid, so From.Row may be negative.
type Move struct {
	From  Pos
	To    Pos
	Color int
}
