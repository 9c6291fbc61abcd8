package engine

// CellView is the serializable form of one cell.
type CellView struct {
	Color     int    `json:"color"`
	Blastable bool   `json:"blastable"`
	GroupID   int    `json:"group"`
	Tier      string `json:"tier"`
}

// Snapshot captures the complete board state for transport, replay and
// determinism tests.
type Snapshot struct {
	Rows      int          `json:"rows"`
	Columns   int          `json:"columns"`
	Colors    int          `json:"colors"`
	Phase     string       `json:"phase"`
	Cells     [][]CellView `json:"cells"`
	Eligible  int          `json:"eligible"`
	Deadlocks int          `json:"deadlocks"`
}

// Snapshot returns the current board state. An uninitialized board yields
// a zero Snapshot.
func (b *Board) Snapshot() Snapshot {
	if b.grid == nil {
		return Snapshot{}
	}
	cells := make([][]CellView, b.grid.rows)
	for r := range cells {
		cells[r] = make([]CellView, b.grid.columns)
		for c := range cells[r] {
			slot := b.grid.at(P(r, c))
			if !slot.Occupied {
				cells[r][c] = CellView{Color: -1, Tier: TierDefault.String()}
				continue
			}
			cells[r][c] = CellView{
				Color:     slot.Cell.Color,
				Blastable: slot.Cell.Blastable,
				GroupID:   slot.Cell.GroupID,
				Tier:      slot.Cell.Tier.String(),
			}
		}
	}
	return Snapshot{
		Rows:      b.cfg.Rows,
		Columns:   b.cfg.Columns,
		Colors:    b.cfg.Colors,
		Phase:     b.phase.String(),
		Cells:     cells,
		Eligible:  CountBlastable(b.groups),
		Deadlocks: b.deadlocks,
	}
}
