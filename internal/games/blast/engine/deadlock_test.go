package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestHasAdjacentMatch(t *testing.T) {
	tests := []struct {
		name     string
		grid     string
		expected bool
	}{
		{"checkerboard", "01\n10", false},
		{"horizontal pair", "00\n12", true},
		{"vertical pair", "01\n02", true},
		{"pair on last row", "012\n120\n344", true},
		{"holes never match", "0.\n.0", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustParse(t, tc.grid)
			if got := HasAdjacentMatch(g); got != tc.expected {
				t.Errorf("HasAdjacentMatch() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestForceMatch(t *testing.T) {
	tests := []struct {
		name     string
		grid     string
		expected string
	}{
		{"checkerboard swaps with donor", "01\n10", "00\n11"},
		{"no donor recolors neighbor", "01\n23", "00\n23"},
		{"single column uses cell below", "0\n1\n0", "0\n0\n1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustParse(t, tc.grid)
			if !ForceMatch(g) {
				t.Fatal("ForceMatch() should succeed")
			}
			if got := g.String(); got != tc.expected {
				t.Errorf("grid = %q, expected %q", got, tc.expected)
			}
			if !HasAdjacentMatch(g) {
				t.Error("grid should have an adjacent pair after ForceMatch")
			}
		})
	}
}

func TestForceMatchKeepsColorCountsWithDonor(t *testing.T) {
	g := mustParse(t, `
		012
		120
		201`)
	before := colorCounts(g)

	if !ForceMatch(g) {
		t.Fatal("ForceMatch() should succeed")
	}
	if !reflect.DeepEqual(before, colorCounts(g)) {
		t.Errorf("color counts changed: %v -> %v", before, colorCounts(g))
	}
}

func TestShuffleColorsKeepsMultiset(t *testing.T) {
	g := Generate(Config{Rows: 6, Columns: 5, Colors: 4, Thresholds: Thresholds{A: 3, B: 5, C: 7}},
		rand.New(rand.NewSource(21)))
	before := colorCounts(g)

	ShuffleColors(g, rand.New(rand.NewSource(22)))

	if !reflect.DeepEqual(before, colorCounts(g)) {
		t.Errorf("color counts changed: %v -> %v", before, colorCounts(g))
	}
	checkPositions(t, g)
}

// deadlockedGrid returns a full grid with no two adjacent cells sharing a
// color. Colors follow (r + 2c) mod k, which needs k >= 3; k == 2 uses a
// plain checkerboard.
func deadlockedGrid(rows, cols, k int) *Grid {
	colors := make([][]int, rows)
	for r := range colors {
		colors[r] = make([]int, cols)
		for c := range colors[r] {
			if k == 2 {
				colors[r][c] = (r + c) % 2
			} else {
				colors[r][c] = (r + 2*c) % k
			}
		}
	}
	return FromColors(colors)
}

func TestResolveDeadlockGuarantee(t *testing.T) {
	th := Thresholds{A: 3, B: 5, C: 7}

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rows := 2 + rng.Intn(9)
		cols := 2 + rng.Intn(9)
		k := 2 + rng.Intn(5)
		g := deadlockedGrid(rows, cols, k)

		if HasAdjacentMatch(g) {
			t.Fatalf("seed %d: fixture %dx%d with %d colors is not deadlocked", seed, rows, cols, k)
		}

		groups, _, err := ResolveDeadlock(g, th, rng)
		if err != nil {
			t.Fatalf("seed %d: ResolveDeadlock failed: %v", seed, err)
		}
		if CountBlastable(groups) < 1 {
			t.Fatalf("seed %d: no eligible group after one resolution pass", seed)
		}
		if !g.IsFull() {
			t.Fatalf("seed %d: resolution left holes", seed)
		}

		// Running it again on its own output still holds the guarantee.
		groups, _, err = ResolveDeadlock(g, th, rng)
		if err != nil {
			t.Fatalf("seed %d: second ResolveDeadlock failed: %v", seed, err)
		}
		if CountBlastable(groups) < 1 {
			t.Fatalf("seed %d: no eligible group after second pass", seed)
		}
	}
}

func TestResolveDeadlockForcesWhenShuffleFails(t *testing.T) {
	g := mustParse(t, "01\n10")

	// Zero draws make the shuffle an identity, so the checkerboard survives
	// and a pair must be forced.
	groups, forced, err := ResolveDeadlock(g, Thresholds{A: 3, B: 5, C: 7}, &seqRNG{vals: []int{0}})
	if err != nil {
		t.Fatalf("ResolveDeadlock failed: %v", err)
	}
	if !forced {
		t.Error("expected a forced pair")
	}
	if got := g.String(); got != "00\n11" {
		t.Errorf("grid = %q, expected %q", got, "00\n11")
	}
	if len(groups) != 2 || CountBlastable(groups) != 2 {
		t.Errorf("expected two eligible groups, got %d of %d", CountBlastable(groups), len(groups))
	}
}
