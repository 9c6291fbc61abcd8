package engine

// Event is emitted by a Board to its listener while a cycle runs.
type Event interface {
	boardEvent()
}

// CellsRemoved is emitted when a blasted group leaves the grid.
type CellsRemoved struct {
	Positions []Pos
	Color     int
}

func (CellsRemoved) boardEvent() {}

// CellsMoved is emitted after gravity with one record per falling cell.
type CellsMoved struct {
	Moves []Move
}

func (CellsMoved) boardEvent() {}

// CellsAdded is emitted after refill; each record drops from above the grid.
type CellsAdded struct {
	Moves []Move
}

func (CellsAdded) boardEvent() {}

// GroupsUpdated is emitted after every scan with the full partition.
type GroupsUpdated struct {
	Groups []Group
}

func (GroupsUpdated) boardEvent() {}

// BoardReset is emitted when Initialize builds a new grid.
type BoardReset struct {
	Config Config
}

func (BoardReset) boardEvent() {}

// DeadlockResolved is emitted when a scan found no eligible group and the
// board reshuffled. Forced is true when a pair had to be constructed.
type DeadlockResolved struct {
	Forced bool
}

func (DeadlockResolved) boardEvent() {}

// Listener receives board events synchronously. It must not call back
// into the board that emitted the event.
type Listener func(Event)
