package bigdag

import "slices"

// Mode selects how a [BigDAG] accumulates frequencies.
type Mode int

const (
	// Merge accumulates a single scalar count per node.
	Merge Mode = iota
	// Vector accumulates one count per folded source.
	Vector
)

func (m Mode) String() string {
	switch m {
	case Merge:
		return "merge"
	case Vector:
		return "vector"
	}
	return "unknown"
}

// Frequency is the occurrence count of a node: a scalar in [Merge] mode or a
// per-source vector in [Vector] mode.
type Frequency struct {
	mode  Mode
	total int
	slots []int
}

// Mode returns the accumulation mode.
func (f Frequency) Mode() Mode { return f.mode }

// Total returns the overall count, summing slots in vector mode.
func (f Frequency) Total() int {
	if f.mode == Merge {
		return f.total
	}
	n := 0
	for _, s := range f.slots {
		n += s
	}
	return n
}

// Len returns the number of slots, 1 in merge mode.
func (f Frequency) Len() int {
	if f.mode == Merge {
		return 1
	}
	return len(f.slots)
}

// At returns the count of source i. In merge mode only i == 0 is defined.
// Out of range indices return 0.
func (f Frequency) At(i int) int {
	if f.mode == Merge {
		if i == 0 {
			return f.total
		}
		return 0
	}
	if i < 0 || i >= len(f.slots) {
		return 0
	}
	return f.slots[i]
}

// Slots returns a copy of the per-source counts, or nil in merge mode.
func (f Frequency) Slots() []int { return slices.Clone(f.slots) }

func newFrequency(mode Mode, sources, count int) Frequency {
	if mode == Merge {
		return Frequency{mode: Merge, total: count}
	}
	slots := make([]int, sources)
	slots[sources-1] = count
	return Frequency{mode: Vector, slots: slots}
}

func (f *Frequency) add(n int) {
	if f.mode == Merge {
		f.total += n
		return
	}
	f.slots[len(f.slots)-1] += n
}

func (f *Frequency) extend() {
	if f.mode == Vector {
		f.slots = append(f.slots, 0)
	}
}
