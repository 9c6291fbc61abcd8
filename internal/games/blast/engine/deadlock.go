package engine

// ShuffleColors redistributes the colors of all occupied cells with a
// Fisher–Yates permutation. Cells keep their positions; only colors move.
func ShuffleColors(g *Grid, rng RNG) {
	var cells []*Slot
	var colors []int
	for i := range g.slots {
		if g.slots[i].Occupied {
			cells = append(cells, &g.slots[i])
			colors = append(colors, g.slots[i].Cell.Color)
		}
	}

	Shuffle(colors, rng)

	for i, s := range cells {
		s.Cell.Color = colors[i]
	}
}

// HasAdjacentMatch reports whether any cell shares its color with its right
// or bottom neighbor. This only proves that some group of size two exists;
// it says nothing about the largest group. Empty slots never match.
func HasAdjacentMatch(g *Grid) bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			s := g.at(P(r, c))
			if !s.Occupied {
				continue
			}
			if c+1 < g.columns {
				if right := g.at(P(r, c+1)); right.Occupied && right.Cell.Color == s.Cell.Color {
					return true
				}
			}
			if r+1 < g.rows {
				if below := g.at(P(r+1, c)); below.Occupied && below.Cell.Color == s.Cell.Color {
					return true
				}
			}
		}
	}
	return false
}

// ForceMatch makes (0,0) and its neighbor share a color. The neighbor is
// (0,1), or (1,0) on a single-column grid. The first other cell in row-major
// order with the target's color swaps colors with the neighbor, which keeps
// the color counts intact; if there is none the neighbor is recolored.
// Returns false if the grid is too small to hold a pair.
func ForceMatch(g *Grid) bool {
	if g.rows < 2 && g.columns < 2 {
		return false
	}
	targetPos := P(0, 0)
	neighborPos := P(1, 0)
	if g.columns > 1 {
		neighborPos = P(0, 1)
	}
	target := g.at(targetPos)
	neighbor := g.at(neighborPos)
	if !target.Occupied || !neighbor.Occupied {
		return false
	}
	want := target.Cell.Color

	for _, p := range g.Positions() {
		if p == targetPos || p == neighborPos {
			continue
		}
		donor := g.at(p)
		if donor.Occupied && donor.Cell.Color == want {
			donor.Cell.Color, neighbor.Cell.Color = neighbor.Cell.Color, want
			return true
		}
	}

	neighbor.Cell.Color = want
	return true
}

// ResolveDeadlock reshuffles a board that has no eligible group and forces
// a pair when the shuffle alone did not create one, then rescans.
// Returns the new groups and whether a pair had to be forced.
// Safe to call again on its own output, though one pass always suffices.
func ResolveDeadlock(g *Grid, th Thresholds, rng RNG) ([]Group, bool, error) {
	ShuffleColors(g, rng)

	forced := false
	if !HasAdjacentMatch(g) {
		forced = ForceMatch(g)
	}

	groups, err := Scan(g)
	if err != nil {
		return nil, forced, err
	}
	ClassifyGroups(g, groups, th)
	return groups, forced, nil
}
