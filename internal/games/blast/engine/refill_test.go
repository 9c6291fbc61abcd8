package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestRefill(t *testing.T) {
	g := mustParse(t, `
		..
		0.
		01`)

	moves := Refill(g, 2, &seqRNG{vals: []int{1, 0, 1}})

	expected := []Move{
		{From: P(-1, 0), To: P(0, 0), Color: 1},
		{From: P(-1, 1), To: P(1, 1), Color: 0},
		{From: P(-2, 1), To: P(0, 1), Color: 1},
	}
	if !reflect.DeepEqual(moves, expected) {
		t.Errorf("moves = %+v, expected %+v", moves, expected)
	}
	if got := g.String(); got != "11\n00\n01" {
		t.Errorf("grid after refill:\n%s", got)
	}
	checkPositions(t, g)
}

func TestRefillCompletesGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		cfg := Config{Rows: 2 + rng.Intn(9), Columns: 2 + rng.Intn(9), Colors: 1 + rng.Intn(6), Thresholds: Thresholds{A: 3, B: 5, C: 7}}
		g := Generate(cfg, rng)
		holes := 0
		for _, p := range g.Positions() {
			if rng.Intn(2) == 0 {
				*g.at(p) = Empty()
				holes++
			}
		}

		moves := Refill(g, cfg.Colors, rng)

		if !g.IsFull() {
			t.Fatal("grid should be full after refill")
		}
		if len(moves) != holes {
			t.Fatalf("refill produced %d moves for %d holes", len(moves), holes)
		}
		for _, m := range moves {
			if m.From.Row >= 0 || m.From.Col != m.To.Col {
				t.Fatalf("refill move %+v should start above its column", m)
			}
			if m.Color < 0 || m.Color >= cfg.Colors {
				t.Fatalf("refill color %d outside palette of %d", m.Color, cfg.Colors)
			}
		}
	}
}

func TestGenerateBalanced(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"3x3 three colors", Config{Rows: 3, Columns: 3, Colors: 3, Thresholds: Thresholds{A: 3, B: 5, C: 7}}},
		{"4x4 four colors", Config{Rows: 4, Columns: 4, Colors: 4, Thresholds: Thresholds{A: 3, B: 5, C: 7}}},
		{"10x6 six colors", Config{Rows: 10, Columns: 6, Colors: 6, Thresholds: Thresholds{A: 3, B: 5, C: 7}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := Generate(tc.cfg, rand.New(rand.NewSource(1)))
			if !g.IsFull() {
				t.Fatal("generated grid should be full")
			}
			want := tc.cfg.Cells() / tc.cfg.Colors
			for color, n := range colorCounts(g) {
				if n != want {
					t.Errorf("color %d appears %d times, expected %d", color, n, want)
				}
			}
		})
	}
}

func TestGenerateUnevenPalette(t *testing.T) {
	cfg := Config{Rows: 5, Columns: 7, Colors: 6, Thresholds: Thresholds{A: 3, B: 5, C: 7}}
	g := Generate(cfg, rand.New(rand.NewSource(2)))

	if !g.IsFull() {
		t.Fatal("generated grid should be full")
	}
	for color := range colorCounts(g) {
		if color < 0 || color >= cfg.Colors {
			t.Errorf("color %d outside palette", color)
		}
	}
	checkPositions(t, g)
}

func TestShuffleIdentityWithZeroDraws(t *testing.T) {
	xs := []int{4, 3, 2, 1}
	Shuffle(xs, &seqRNG{vals: []int{0}})
	if !reflect.DeepEqual(xs, []int{4, 3, 2, 1}) {
		t.Errorf("zero draws should leave order unchanged, got %v", xs)
	}
}
