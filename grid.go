package strumtab

import (
	"fmt"
)

type (
	// GridNote is the legacy grid model's note: it carries its own string
	// index and duration, may be dotted, and may be chained to another slot
	// with tie pointers. A nil Fret marks an empty placeholder.
	GridNote struct {
		StringIndex int
		Fret        *int
		Duration    Duration
		IsDotted    bool `yaml:",omitempty"`
		IsTiedTo    *int `yaml:",omitempty"`
		IsTiedFrom  *int `yaml:",omitempty"`
	}

	// GridCell holds the notes that start in one sixteenth-note slot.
	GridCell struct {
		Notes []GridNote `yaml:",flow,omitempty"`
	}

	// TabData is the legacy flat representation: an array indexed by
	// sixteenth-note slot (one slot = 240 ticks), at most one note per string
	// starting per slot. It predates the NoteStack model and is kept
	// convertible in both directions.
	TabData []GridCell
)

// Copy makes a deep copy of a TabData.
func (td TabData) Copy() TabData {
	ret := make(TabData, len(td))
	for i, cell := range td {
		notes := make([]GridNote, len(cell.Notes))
		copy(notes, cell.Notes)
		ret[i].Notes = notes
	}
	return ret
}

// NoteCount returns the number of real (fretted) notes in the grid.
func (td TabData) NoteCount() int {
	count := 0
	for _, cell := range td {
		for _, n := range cell.Notes {
			if n.Fret != nil {
				count++
			}
		}
	}
	return count
}

// GridNoteAt returns the note starting at the given slot on the given string.
func (td TabData) GridNoteAt(slot, stringIndex int) (GridNote, bool) {
	if slot < 0 || slot >= len(td) {
		return GridNote{}, false
	}
	for _, n := range td[slot].Notes {
		if n.StringIndex == stringIndex && n.Fret != nil {
			return n, true
		}
	}
	return GridNote{}, false
}

// AddGridNote places a note into the grid, rebuilding affected cells instead
// of mutating them in place. A note occupies slot..slot+durationSlots-1 for
// conflict purposes: any note on the same string whose span overlaps the new
// note's span is removed first, keeping at most one sounding note per string
// at any slot.
func (td TabData) AddGridNote(slot, stringIndex, fret int, d Duration) (TabData, error) {
	if slot < 0 {
		return nil, ErrNegativePosition
	}
	if err := validNote(stringIndex, fret); err != nil {
		return nil, err
	}
	if !d.Valid() {
		return nil, ErrBadDuration
	}
	ret := td.Copy()
	end := slot + d.Slots()
	for len(ret) < end {
		ret = append(ret, GridCell{})
	}
	for i := range ret {
		ret[i].Notes = removeOverlapping(ret[i].Notes, i, stringIndex, slot, end)
	}
	f := fret
	ret[slot].Notes = append(ret[slot].Notes, GridNote{StringIndex: stringIndex, Fret: &f, Duration: d})
	return ret, nil
}

// removeOverlapping drops notes on the given string starting in cell `cell`
// whose span [cell, cell+slots) intersects [start, end).
func removeOverlapping(notes []GridNote, cell, stringIndex, start, end int) []GridNote {
	ret := notes[:0]
	for _, n := range notes {
		span := 1
		if n.Fret != nil {
			span = n.Duration.Slots()
		}
		if n.StringIndex == stringIndex && cell < end && cell+span > start {
			continue
		}
		ret = append(ret, n)
	}
	return ret
}

// RemoveGridNote removes the note starting at the given slot on the given
// string; misses return the receiver unchanged.
func (td TabData) RemoveGridNote(slot, stringIndex int) TabData {
	if slot < 0 || slot >= len(td) {
		return td
	}
	if _, ok := td.GridNoteAt(slot, stringIndex); !ok {
		return td
	}
	ret := td.Copy()
	notes := ret[slot].Notes[:0]
	for _, n := range ret[slot].Notes {
		if n.StringIndex != stringIndex {
			notes = append(notes, n)
		}
	}
	ret[slot].Notes = notes
	return ret
}

// TabDataToTab converts the legacy grid into the NoteStack model. Notes
// starting in the same slot group into one stack at slot*240 ticks, and the
// stack takes the longest duration among them; this longest-duration rule is
// the legacy conversion's own and deliberately differs from Tab.AddNote's
// newest-note-wins rule. Dotted and tie metadata is not representable in a
// NoteStack and is dropped (a documented lossy edge, not an error).
func (td TabData) TabDataToTab() Tab {
	var ret Tab
	for slot, cell := range td {
		var notes []Note
		var longest Duration
		for _, n := range cell.Notes {
			if n.Fret == nil {
				continue
			}
			notes = append(notes, Note{String: n.StringIndex, Fret: *n.Fret})
			if longest == "" || n.Duration.Ticks() > longest.Ticks() {
				longest = n.Duration
			}
		}
		if len(notes) == 0 {
			continue
		}
		ret = append(ret, NoteStack{
			ID:       newStackID(),
			Position: slot * SlotTicks,
			Duration: longest,
			Notes:    notes,
		})
	}
	return ret
}

// TabToTabData converts a Tab into the legacy grid, sized to the furthest
// stack's end. Positions that are not a multiple of 240 truncate to the
// containing slot; that imprecision is a limitation inherent to the grid
// model. Every emitted note has IsDotted false and no ties.
func (t Tab) TabToTabData() TabData {
	size := 0
	for _, s := range t {
		if end := s.Position/SlotTicks + s.Duration.Slots(); end > size {
			size = end
		}
	}
	ret := make(TabData, size)
	for _, s := range t {
		slot := s.Position / SlotTicks
		for _, n := range s.Notes {
			f := n.Fret
			ret[slot].Notes = append(ret[slot].Notes, GridNote{
				StringIndex: n.String,
				Fret:        &f,
				Duration:    s.Duration,
			})
		}
	}
	return ret
}

// ValidateConversion checks that a conversion between the two models kept
// every note: the grid and the Tab must hold exactly the same number of
// notes. Full fidelity is not checked because the grid-to-stack direction is
// documented lossy for dotted notes and ties; a count mismatch, however, is a
// defect to surface.
func ValidateConversion(td TabData, t Tab) error {
	gridCount := td.NoteCount()
	tabCount := 0
	for _, s := range t {
		tabCount += len(s.Notes)
	}
	if gridCount != tabCount {
		return fmt.Errorf("conversion lost notes: grid has %v, tab has %v", gridCount, tabCount)
	}
	return nil
}
