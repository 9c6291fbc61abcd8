package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestRemoveGroup(t *testing.T) {
	g := mustParse(t, `
		0011
		0211
		3333`)

	groups, err := Scan(g)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	affected, err := RemoveGroup(g, groups[1])
	if err != nil {
		t.Fatalf("RemoveGroup failed: %v", err)
	}

	if !reflect.DeepEqual(affected.Rows, []int{0, 1}) {
		t.Errorf("affected rows = %v, expected [0 1]", affected.Rows)
	}
	if !reflect.DeepEqual(affected.Cols, []int{2, 3}) {
		t.Errorf("affected cols = %v, expected [2 3]", affected.Cols)
	}
	if got := g.String(); got != "00..\n02..\n3333" {
		t.Errorf("grid after removal:\n%s", got)
	}
}

func TestRemoveGroupRejectsEmptyMember(t *testing.T) {
	g := mustParse(t, "0.\n00")
	grp := Group{ID: 1, Color: 0, Positions: []Pos{P(0, 0), P(0, 1)}}

	_, err := RemoveGroup(g, grp)
	if !errors.Is(err, ErrNotBlastable) {
		t.Fatalf("RemoveGroup error = %v, expected ErrNotBlastable", err)
	}
	if !g.at(P(0, 0)).Occupied {
		t.Error("failed removal should leave the grid untouched")
	}

	grp.Positions = []Pos{P(0, 0), P(5, 5)}
	if _, err := RemoveGroup(g, grp); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("RemoveGroup error = %v, expected ErrOutOfBounds", err)
	}
}

func TestCompactColumn(t *testing.T) {
	g := mustParse(t, `
		03
		.4
		1.
		.5
		2.`)

	moves := Compact(g, []int{0})

	expected := []Move{
		{From: P(2, 0), To: P(3, 0), Color: 1},
		{From: P(0, 0), To: P(2, 0), Color: 0},
	}
	if !reflect.DeepEqual(moves, expected) {
		t.Errorf("moves = %+v, expected %+v", moves, expected)
	}

	// Column 1 was not listed and keeps its holes.
	if got := g.String(); got != ".3\n.4\n0.\n15\n2." {
		t.Errorf("grid after compaction:\n%s", got)
	}
	checkPositions(t, g)
}

func TestCompactInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 100; i++ {
		cfg := Config{Rows: 2 + rng.Intn(9), Columns: 2 + rng.Intn(9), Colors: 5, Thresholds: Thresholds{A: 3, B: 5, C: 7}}
		g := Generate(cfg, rng)

		for _, p := range g.Positions() {
			if rng.Intn(3) == 0 {
				*g.at(p) = Empty()
			}
		}

		before := make([][]int, g.columns)
		cols := make([]int, g.columns)
		for c := 0; c < g.columns; c++ {
			cols[c] = c
			for r := 0; r < g.rows; r++ {
				if s := g.at(P(r, c)); s.Occupied {
					before[c] = append(before[c], s.Cell.Color)
				}
			}
		}

		Compact(g, cols)

		for c := 0; c < g.columns; c++ {
			n := len(before[c])
			var after []int
			for r := 0; r < g.rows; r++ {
				s := g.at(P(r, c))
				if r < g.rows-n && s.Occupied {
					t.Fatalf("column %d has a cell above its stack at row %d", c, r)
				}
				if r >= g.rows-n {
					if !s.Occupied {
						t.Fatalf("column %d has a hole at row %d", c, r)
					}
					after = append(after, s.Cell.Color)
				}
			}
			if !reflect.DeepEqual(before[c], after) {
				t.Fatalf("column %d order changed: %v -> %v", c, before[c], after)
			}
		}
		checkPositions(t, g)
	}
}
