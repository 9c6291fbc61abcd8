package engine

// Refill places a new random cell in every empty slot. Columns are filled
// left to right and each column bottom to top, so the k-th new cell of a
// column starts k rows above the grid (From.Row == -k).
func Refill(g *Grid, colors int, rng RNG) []Move {
	var moves []Move
	for col := 0; col < g.columns; col++ {
		dropped := 0
		for row := g.rows - 1; row >= 0; row-- {
			p := P(row, col)
			if g.at(p).Occupied {
				continue
			}
			dropped++
			color := rng.Intn(colors)
			*g.at(p) = Occupied(NewCell(color, p))
			moves = append(moves, Move{From: P(-dropped, col), To: p, Color: color})
		}
	}
	return moves
}

// Generate builds a fully populated grid with a balanced color distribution:
// every color appears ceil(cells/colors) times, cells%colors extra random
// colors are appended, the pool is shuffled and laid out row-major.
func Generate(cfg Config, rng RNG) *Grid {
	total := cfg.Cells()
	perColor := (total + cfg.Colors - 1) / cfg.Colors

	pool := make([]int, 0, perColor*cfg.Colors+cfg.Colors)
	for color := 0; color < cfg.Colors; color++ {
		for i := 0; i < perColor; i++ {
			pool = append(pool, color)
		}
	}
	for i := 0; i < total%cfg.Colors; i++ {
		pool = append(pool, rng.Intn(cfg.Colors))
	}
	Shuffle(pool, rng)

	g := NewGrid(cfg.Rows, cfg.Columns)
	for i, p := range g.Positions() {
		*g.at(p) = Occupied(NewCell(pool[i], p))
	}
	return g
}
