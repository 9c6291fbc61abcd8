package engine

import (
	"fmt"
	"strings"
)

// Grid is a fixed-capacity rows×columns arena of slots.
// Slots are stored in row-major order: index = row*Columns + col.
type Grid struct {
	rows    int
	columns int
	slots   []Slot
}

// NewGrid creates a grid with every slot empty.
func NewGrid(rows, columns int) *Grid {
	return &Grid{
		rows:    rows,
		columns: columns,
		slots:   make([]Slot, rows*columns),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds returns true if p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.columns
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.columns + p.Col
}

// Get returns the slot at p.
func (g *Grid) Get(p Pos) (Slot, error) {
	if !g.InBounds(p) {
		return Slot{}, fmt.Errorf("get %v on %dx%d grid: %w", p, g.rows, g.columns, ErrOutOfBounds)
	}
	return g.slots[g.index(p)], nil
}

// Set stores s at p. An occupied slot has its cell position rewritten to p,
// so a stored cell always knows where it lives.
func (g *Grid) Set(p Pos, s Slot) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set %v on %dx%d grid: %w", p, g.rows, g.columns, ErrOutOfBounds)
	}
	if s.Occupied {
		s.Cell.Pos = p
	} else {
		s.Cell = Cell{}
	}
	g.slots[g.index(p)] = s
	return nil
}

// at returns a pointer to the slot at p. Callers must check bounds first.
func (g *Grid) at(p Pos) *Slot {
	return &g.slots[g.index(p)]
}

// Positions returns every coordinate in row-major order.
func (g *Grid) Positions() []Pos {
	out := make([]Pos, 0, len(g.slots))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			out = append(out, P(r, c))
		}
	}
	return out
}

// OccupiedCount returns the number of occupied slots.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, s := range g.slots {
		if s.Occupied {
			n++
		}
	}
	return n
}

// IsFull returns true if no slot is empty.
func (g *Grid) IsFull() bool {
	return g.OccupiedCount() == len(g.slots)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	slots := make([]Slot, len(g.slots))
	copy(slots, g.slots)
	return &Grid{rows: g.rows, columns: g.columns, slots: slots}
}

// Colors returns the color of every slot in row-major order; empty slots are -1.
func (g *Grid) Colors() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.columns)
		for c := range out[r] {
			s := g.slots[g.index(P(r, c))]
			if s.Occupied {
				out[r][c] = s.Cell.Color
			} else {
				out[r][c] = -1
			}
		}
	}
	return out
}

// String renders the grid one row per line, a digit per cell and '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.columns; c++ {
			s := g.slots[g.index(P(r, c))]
			if !s.Occupied {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(colorChar(s.Cell.Color))
		}
	}
	return sb.String()
}

func colorChar(color int) byte {
	if color >= 0 && color <= 9 {
		return byte('0' + color)
	}
	return '?'
}

// ParseGrid builds a grid from the format produced by String.
// Blank lines and surrounding whitespace are ignored.
func ParseGrid(text string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}

	cols := len(lines[0])
	g := NewGrid(len(lines), cols)
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, expected %d", r, len(line), cols)
		}
		for c := 0; c < cols; c++ {
			ch := line[c]
			switch {
			case ch == '.':
				continue
			case ch >= '0' && ch <= '9':
				*g.at(P(r, c)) = Occupied(NewCell(int(ch-'0'), P(r, c)))
			default:
				return nil, fmt.Errorf("parse grid: invalid cell %q at %v", ch, P(r, c))
			}
		}
	}
	return g, nil
}

// FromColors builds a fully populated grid from a row-major color matrix.
func FromColors(colors [][]int) *Grid {
	rows := len(colors)
	cols := 0
	if rows > 0 {
		cols = len(colors[0])
	}
	g := NewGrid(rows, cols)
	for r := range colors {
		for c := 0; c < cols && c < len(colors[r]); c++ {
			*g.at(P(r, c)) = Occupied(NewCell(colors[r][c], P(r, c)))
		}
	}
	return g
}
