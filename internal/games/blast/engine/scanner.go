package engine

import (
	"fmt"
	"sort"
)

// Group is a maximal 4-connected region of same-colored cells.
type Group struct {
	ID        int // 1-based, assigned in row-major discovery order
	Color     int
	Positions []Pos // Sorted row-major
	Tier      Tier
	Blastable bool
}

// Size returns the number of cells in the group.
func (g Group) Size() int {
	return len(g.Positions)
}

// Contains returns true if p belongs to the group.
func (g Group) Contains(p Pos) bool {
	for _, q := range g.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// neighbors lists the 4-directional offsets: down, up, right, left.
var neighbors = [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Scan partitions every cell of a fully populated grid into groups.
// Groups are discovered in row-major order of their first cell, so the
// result is deterministic for a given grid. Tiers are not assigned; see
// ClassifyGroups.
func Scan(g *Grid) ([]Group, error) {
	visited := make([]bool, g.rows*g.columns)
	// A position is pushed only once (marked on push), so the stack never
	// holds more than rows*columns entries.
	stack := make([]Pos, 0, g.rows*g.columns)
	var groups []Group

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			start := P(r, c)
			if visited[g.index(start)] {
				continue
			}
			positions, err := g.fill(start, visited, stack[:0])
			if err != nil {
				return nil, err
			}
			groups = append(groups, Group{
				ID:        len(groups) + 1,
				Color:     g.at(start).Cell.Color,
				Positions: positions,
			})
		}
	}
	return groups, nil
}

// fill collects the component containing start with an explicit-stack DFS.
// The returned slice length is the group size.
func (g *Grid) fill(start Pos, visited []bool, stack []Pos) ([]Pos, error) {
	origin := g.at(start)
	if !origin.Occupied {
		return nil, fmt.Errorf("scan at %v: %w", start, ErrIncompleteGrid)
	}
	color := origin.Cell.Color

	visited[g.index(start)] = true
	stack = append(stack, start)
	var members []Pos

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, p)

		for _, d := range neighbors {
			n := P(p.Row+d.Row, p.Col+d.Col)
			if !g.InBounds(n) || visited[g.index(n)] {
				continue
			}
			slot := g.at(n)
			if !slot.Occupied {
				return nil, fmt.Errorf("scan at %v: %w", n, ErrIncompleteGrid)
			}
			if slot.Cell.Color != color {
				continue
			}
			visited[g.index(n)] = true
			stack = append(stack, n)
		}
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].Less(members[j])
	})
	return members, nil
}
