package engine

import (
	"fmt"
	"sort"
)

// Affected lists the rows and columns that lost at least one cell in a blast.
// Both slices are sorted and free of duplicates.
type Affected struct {
	Rows []int
	Cols []int
}

// RemoveGroup empties every slot of grp and reports the touched rows/columns.
// Every member must be in bounds and occupied; otherwise nothing is removed.
func RemoveGroup(g *Grid, grp Group) (Affected, error) {
	for _, p := range grp.Positions {
		slot, err := g.Get(p)
		if err != nil {
			return Affected{}, fmt.Errorf("remove group %d: %w", grp.ID, err)
		}
		if !slot.Occupied {
			return Affected{}, fmt.Errorf("remove group %d at %v: %w", grp.ID, p, ErrNotBlastable)
		}
	}

	rows := make(map[int]bool)
	cols := make(map[int]bool)
	for _, p := range grp.Positions {
		*g.at(p) = Empty()
		rows[p.Row] = true
		cols[p.Col] = true
	}
	return Affected{Rows: sortedKeys(rows), Cols: sortedKeys(cols)}, nil
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Compact drops the cells of each listed column toward the bottom row,
// keeping their vertical order. Columns are independent of each other.
// Returns one Move per cell that changed position.
func Compact(g *Grid, cols []int) []Move {
	var moves []Move
	for _, col := range cols {
		if col < 0 || col >= g.columns {
			continue
		}
		moves = append(moves, g.compactColumn(col)...)
	}
	return moves
}

// compactColumn is a stable partition: walking bottom-up, each occupied cell
// is written to the lowest free row seen so far.
func (g *Grid) compactColumn(col int) []Move {
	var moves []Move
	write := g.rows - 1
	for row := g.rows - 1; row >= 0; row-- {
		from := P(row, col)
		slot := g.at(from)
		if !slot.Occupied {
			continue
		}
		if write != row {
			to := P(write, col)
			cell := slot.Cell
			cell.Pos = to
			*g.at(to) = Occupied(cell)
			*g.at(from) = Empty()
			moves = append(moves, Move{From: from, To: to, Color: cell.Color})
		}
		write--
	}
	return moves
}
