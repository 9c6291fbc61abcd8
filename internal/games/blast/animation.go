package blast

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// drop is one cell falling from its old row (or from above the board) to
// its resting place.
type drop struct {
	move  engine.Move
	tween *gween.Tween
	row   float32 // Current interpolated row
	done  bool
}

// animation holds every drop started by a single blast.
type animation struct {
	drops   []*drop
	landing map[engine.Pos]*drop // Destination cell -> drop heading there
}

// newAnimation builds drops for the compaction and refill moves of res.
// Each tween runs over duration seconds regardless of the fall distance.
func newAnimation(res engine.BlastResult, duration float32) *animation {
	a := &animation{landing: make(map[engine.Pos]*drop)}
	add := func(m engine.Move) {
		d := &drop{
			move:  m,
			tween: gween.New(float32(m.From.Row), float32(m.To.Row), duration, ease.OutQuad),
			row:   float32(m.From.Row),
		}
		a.drops = append(a.drops, d)
		a.landing[m.To] = d
	}
	for _, m := range res.Moved {
		add(m)
	}
	for _, m := range res.Added {
		add(m)
	}
	return a
}

// Update advances every drop by dt seconds and reports whether all of
// them have landed. An animation with no drops is finished immediately.
func (a *animation) Update(dt float32) bool {
	finished := true
	for _, d := range a.drops {
		if d.done {
			continue
		}
		d.row, d.done = d.tween.Update(dt)
		if !d.done {
			finished = false
		}
	}
	return finished
}

// Landing reports whether p is the destination of a drop still in flight.
// Such cells are drawn by the drop instead of the board.
func (a *animation) Landing(p engine.Pos) bool {
	d, ok := a.landing[p]
	return ok && !d.done
}

// Falling returns the drops still in flight.
func (a *animation) Falling() []*drop {
	var out []*drop
	for _, d := range a.drops {
		if !d.done {
			out = append(out, d)
		}
	}
	return out
}
