package engine

import (
	"testing"
)

// seqRNG replays a fixed sequence of draws, reduced modulo n.
type seqRNG struct {
	vals []int
	i    int
}

func (s *seqRNG) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(text)
	if err != nil {
		t.Fatalf("ParseGrid(%q) failed: %v", text, err)
	}
	return g
}

func colorCounts(g *Grid) map[int]int {
	counts := make(map[int]int)
	for _, s := range g.slots {
		if s.Occupied {
			counts[s.Cell.Color]++
		}
	}
	return counts
}

func checkPositions(t *testing.T, g *Grid) {
	t.Helper()
	for _, p := range g.Positions() {
		s := g.at(p)
		if s.Occupied && s.Cell.Pos != p {
			t.Errorf("cell at %v reports position %v", p, s.Cell.Pos)
		}
	}
}
