package strumtab

import (
	"errors"
	"fmt"
	"sort"
)

// Typed errors returned by store operations for out-of-range input. Malformed
// input is rejected at the API boundary; it never reaches mutation.
var (
	ErrNegativePosition = errors.New("musical position cannot be negative")
	ErrStringRange      = errors.New("string index out of range")
	ErrFretRange        = errors.New("fret out of range")
	ErrBadDuration      = errors.New("unknown duration")
	ErrStackNotFound    = errors.New("no stack with that id")
	ErrPositionOccupied = errors.New("another stack already occupies that position")
)

func validNote(str, fret int) error {
	if str < 0 || str >= NumStrings {
		return ErrStringRange
	}
	if fret < 0 || fret > MaxFret {
		return ErrFretRange
	}
	return nil
}

// indexAt returns the index of the stack exactly at pos.
func (t Tab) indexAt(pos int) (int, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Position >= pos })
	if i < len(t) && t[i].Position == pos {
		return i, true
	}
	return 0, false
}

func (t Tab) indexByID(id string) (int, bool) {
	for i := range t {
		if t[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (t Tab) sortByPosition() {
	sort.SliceStable(t, func(i, j int) bool { return t[i].Position < t[j].Position })
}

// AddNote places a note at the given position, creating a stack there if none
// exists and replacing any previous note on the same string if one does. The
// newest note's duration governs the whole stack; this differs deliberately
// from the legacy conversion path, where the longest duration among
// simultaneous notes wins (see TabDataToTab).
func (t Tab) AddNote(pos, str, fret int, d Duration) (Tab, error) {
	if pos < 0 {
		return nil, ErrNegativePosition
	}
	if err := validNote(str, fret); err != nil {
		return nil, err
	}
	if !d.Valid() {
		return nil, ErrBadDuration
	}
	ret := t.Copy()
	if i, ok := ret.indexAt(pos); ok {
		stack := &ret[i]
		stack.Duration = d
		for j := range stack.Notes {
			if stack.Notes[j].String == str {
				stack.Notes[j].Fret = fret
				return ret, nil
			}
		}
		stack.Notes = append(stack.Notes, Note{String: str, Fret: fret})
		return ret, nil
	}
	ret = append(ret, NoteStack{
		ID:       newStackID(),
		Position: pos,
		Duration: d,
		Notes:    []Note{{String: str, Fret: fret}},
	})
	ret.sortByPosition()
	return ret, nil
}

// RemoveNote removes the note on the given string at the given position. When
// the stack's last note goes, the stack goes with it. Removing a note that is
// not there returns the receiver unchanged.
func (t Tab) RemoveNote(pos, str int) Tab {
	i, ok := t.indexAt(pos)
	if !ok {
		return t
	}
	found := false
	for _, n := range t[i].Notes {
		if n.String == str {
			found = true
			break
		}
	}
	if !found {
		return t
	}
	ret := t.Copy()
	stack := &ret[i]
	notes := stack.Notes[:0]
	for _, n := range stack.Notes {
		if n.String != str {
			notes = append(notes, n)
		}
	}
	if len(notes) == 0 {
		return append(ret[:i], ret[i+1:]...)
	}
	stack.Notes = notes
	return ret
}

// StackAt returns a copy of the stack exactly at pos. Absence is an expected
// outcome, reported through ok.
func (t Tab) StackAt(pos int) (NoteStack, bool) {
	if i, ok := t.indexAt(pos); ok {
		return t[i].Copy(), true
	}
	return NoteStack{}, false
}

// NoteAt returns the note on the given string at the given position.
func (t Tab) NoteAt(pos, str int) (Note, bool) {
	i, ok := t.indexAt(pos)
	if !ok {
		return Note{}, false
	}
	for _, n := range t[i].Notes {
		if n.String == str {
			return n, true
		}
	}
	return Note{}, false
}

// UpdateStackDuration returns a Tab where the identified stack has the given
// duration.
func (t Tab) UpdateStackDuration(id string, d Duration) (Tab, error) {
	if !d.Valid() {
		return nil, ErrBadDuration
	}
	i, ok := t.indexByID(id)
	if !ok {
		return nil, ErrStackNotFound
	}
	ret := t.Copy()
	ret[i].Duration = d
	return ret, nil
}

// MoveStack returns a Tab where the identified stack sits at newPos, re-sorted
// into temporal order. Moving onto a position held by another stack is
// rejected, keeping positions unique.
func (t Tab) MoveStack(id string, newPos int) (Tab, error) {
	if newPos < 0 {
		return nil, ErrNegativePosition
	}
	i, ok := t.indexByID(id)
	if !ok {
		return nil, ErrStackNotFound
	}
	if j, occupied := t.indexAt(newPos); occupied && j != i {
		return nil, ErrPositionOccupied
	}
	ret := t.Copy()
	ret[i].Position = newPos
	ret.sortByPosition()
	return ret, nil
}

// RemoveStack returns a Tab without the identified stack; a miss returns the
// receiver unchanged.
func (t Tab) RemoveStack(id string) Tab {
	i, ok := t.indexByID(id)
	if !ok {
		return t
	}
	ret := t.Copy()
	return append(ret[:i], ret[i+1:]...)
}

// NextPosition implements the editing cursor's forward jump: from a position
// holding a stack it advances by that stack's duration; through empty space
// the cursor stays put.
func (t Tab) NextPosition(from int) int {
	if i, ok := t.indexAt(from); ok {
		return from + t[i].Duration.Ticks()
	}
	return from
}

// PrevStackPosition returns the position of the closest stack strictly before
// from, or from unchanged if there is none.
func (t Tab) PrevStackPosition(from int) int {
	i := sort.Search(len(t), func(i int) bool { return t[i].Position >= from })
	if i == 0 {
		return from
	}
	return t[i-1].Position
}

// Validate is the canonical consistency check, run on every deserialized
// payload before it re-enters the store operations. It returns a list of
// human-readable problems; an empty list means the Tab is valid.
func (t Tab) Validate() []string {
	var errs []string
	seenPos := make(map[int]bool, len(t))
	ids := make(map[string]int, len(t))
	for i, s := range t {
		if s.Position < 0 {
			errs = append(errs, fmt.Sprintf("stack %v has negative position %v", s.ID, s.Position))
		}
		if i > 0 && t[i-1].Position > s.Position {
			errs = append(errs, fmt.Sprintf("stacks out of order at index %v (position %v after %v)", i, s.Position, t[i-1].Position))
		}
		if seenPos[s.Position] {
			errs = append(errs, fmt.Sprintf("duplicate position %v", s.Position))
		}
		seenPos[s.Position] = true
		if _, ok := ids[s.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate stack id %v", s.ID))
		} else {
			ids[s.ID] = i
		}
		if !s.Duration.Valid() {
			errs = append(errs, fmt.Sprintf("stack %v has unknown duration %q", s.ID, s.Duration))
		}
		if len(s.Notes) == 0 {
			errs = append(errs, fmt.Sprintf("stack %v has no notes", s.ID))
		}
		seenStr := make(map[int]bool, len(s.Notes))
		for _, n := range s.Notes {
			if n.String < 0 || n.String >= NumStrings {
				errs = append(errs, fmt.Sprintf("stack %v has string index %v outside [0,%v]", s.ID, n.String, NumStrings-1))
			}
			if n.Fret < 0 || n.Fret > MaxFret {
				errs = append(errs, fmt.Sprintf("stack %v has fret %v outside [0,%v]", s.ID, n.Fret, MaxFret))
			}
			if seenStr[n.String] {
				errs = append(errs, fmt.Sprintf("stack %v has two notes on string %v", s.ID, n.String))
			}
			seenStr[n.String] = true
		}
	}
	for i, s := range t {
		if s.RepeatEnd == nil {
			continue
		}
		if s.RepeatEnd.TimesToRepeat < 0 {
			errs = append(errs, fmt.Sprintf("stack %v repeats a negative number of times", s.ID))
		}
		// a repeat jumps the cursor back; the target must come strictly
		// before the repeat-end stack or expansion would not terminate
		if target, ok := ids[s.RepeatEnd.JumpToStackID]; !ok {
			errs = append(errs, fmt.Sprintf("stack %v repeats to unknown stack %v", s.ID, s.RepeatEnd.JumpToStackID))
		} else if target >= i {
			errs = append(errs, fmt.Sprintf("stack %v repeats to stack %v which does not precede it", s.ID, s.RepeatEnd.JumpToStackID))
		}
	}
	return errs
}

// TotalTicks returns the extent of the piece: the last stack's position padded
// by one quarter note. The padding is a convention, not the last stack's own
// duration.
func (t Tab) TotalTicks() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Position + TicksPerQuarter
}
