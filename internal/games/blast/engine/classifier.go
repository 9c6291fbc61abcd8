package engine

// MinGroupSize is the smallest group that may be blasted.
const MinGroupSize = 2

// Classify returns the tier for a group of the given size.
func Classify(size int, th Thresholds) Tier {
	switch {
	case size >= th.C:
		return TierC
	case size >= th.B:
		return TierB
	case size >= th.A:
		return TierA
	default:
		return TierDefault
	}
}

// ClassifyGroups assigns tier and eligibility to every group and copies the
// result onto the member cells. Singletons are classified too (with size 1)
// but are never blastable.
func ClassifyGroups(g *Grid, groups []Group, th Thresholds) {
	for i := range groups {
		grp := &groups[i]
		grp.Blastable = grp.Size() >= MinGroupSize
		grp.Tier = Classify(grp.Size(), th)

		for _, p := range grp.Positions {
			if !g.InBounds(p) {
				continue
			}
			slot := g.at(p)
			if !slot.Occupied {
				continue
			}
			slot.Cell.Blastable = grp.Blastable
			slot.Cell.GroupID = grp.ID
			slot.Cell.Tier = grp.Tier
		}
	}
}

// CountBlastable returns how many groups are eligible for removal.
func CountBlastable(groups []Group) int {
	n := 0
	for _, grp := range groups {
		if grp.Size() >= MinGroupSize {
			n++
		}
	}
	return n
}
