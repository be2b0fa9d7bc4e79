package strumtab

import "sort"

// TimeSignature of a piece. The zero value is treated as 4/4.
type TimeSignature struct {
	Numerator   int
	Denominator int
}

// SlotsPerMeasure returns the measure span in sixteenth-note slots.
func (ts TimeSignature) SlotsPerMeasure() int {
	if ts.Numerator <= 0 || ts.Denominator <= 0 {
		return 16
	}
	return ts.Numerator * 16 / ts.Denominator
}

// TicksPerMeasure returns the measure span in ticks.
func (ts TimeSignature) TicksPerMeasure() int {
	return ts.SlotsPerMeasure() * SlotTicks
}

// Valid reports whether the signature is usable: positive numerator and a
// power-of-two denominator no finer than a sixteenth.
func (ts TimeSignature) Valid() bool {
	switch ts.Denominator {
	case 1, 2, 4, 8, 16:
		return ts.Numerator > 0
	}
	return false
}

// CalculateMeasureBoundaries decides where measure lines sit in the slot grid.
// A rigid "one line every measure" rule can land a line in the middle of a
// sounding note; instead, whenever a candidate boundary falls strictly inside
// a note's span, the line moves per the note's duration: long notes (whole,
// half, quarter) put the line just before the next attack (at the very end
// for whole notes), short notes (eighth, sixteenth) put it right after their
// own head and inject one extra slot of purely visual width there so later
// content does not crowd the line.
//
// Explicit user-placed lines, when present, are honored verbatim and the
// intelligent rule only governs the auto-generated lines after the last of
// them. The returned offsets map slot -> extra visual slots injected at that
// slot; it perturbs display coordinates only and never a stack's musical
// position or the scheduler's timing.
func CalculateMeasureBoundaries(td TabData, customLines []int, ts TimeSignature) (boundaries []int, offsets map[int]int) {
	offsets = make(map[int]int)
	spm := ts.SlotsPerMeasure()
	candidate := spm
	last := -1
	if len(customLines) > 0 {
		boundaries = append(boundaries, customLines...)
		sort.Ints(boundaries)
		last = boundaries[len(boundaries)-1]
		candidate = last + spm
	}
	for candidate < len(td) {
		slot, extra := PlaceMeasureLine(td, candidate)
		if slot <= last {
			// the rule walked backwards into placed lines; fall back to the
			// rigid boundary so the walk always makes progress
			slot, extra = candidate, false
		}
		if extra {
			offsets[slot]++
		}
		boundaries = append(boundaries, slot)
		last = slot
		candidate = slot + spm
	}
	return boundaries, offsets
}

// PlaceMeasureLine applies the placement rule to a single candidate boundary
// slot: the returned slot is where the line should actually sit, and extraSlot
// reports whether one slot of extra visual width must be injected there. A
// candidate with no note context (empty span) stays where it is, unadjusted.
func PlaceMeasureLine(td TabData, candidate int) (slot int, extraSlot bool) {
	n, start, ok := td.noteSpanning(candidate)
	if !ok {
		return candidate, false
	}
	switch n.Duration {
	case Whole:
		return start + n.Duration.Slots(), false
	case Half, Quarter:
		return start + n.Duration.Slots() - 1, false
	case Eighth, Sixteenth:
		return start + 1, true
	}
	return candidate, false
}

// noteSpanning finds a note whose sounding span strictly contains the given
// slot (started before it, still sounding at it). When several strings
// straddle the slot, the one sounding furthest past it decides the placement.
func (td TabData) noteSpanning(slot int) (GridNote, int, bool) {
	var best GridNote
	bestStart, bestEnd := 0, -1
	for start := 0; start < slot && start < len(td); start++ {
		for _, n := range td[start].Notes {
			if n.Fret == nil {
				continue
			}
			if end := start + n.Duration.Slots(); end > slot && end > bestEnd {
				best, bestStart, bestEnd = n, start, end
			}
		}
	}
	return best, bestStart, bestEnd > slot
}

// MeasureBoundaries derives the tick positions of measure lines for a Tab by
// running the intelligent placement over its grid projection. The second
// return value carries the purely visual extra widths, keyed by slot.
func (t Tab) MeasureBoundaries(ts TimeSignature) ([]int, map[int]int) {
	slots, offsets := CalculateMeasureBoundaries(t.TabToTabData(), nil, ts)
	positions := make([]int, len(slots))
	for i, s := range slots {
		positions[i] = s * SlotTicks
	}
	return positions, offsets
}
