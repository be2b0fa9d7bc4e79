// Package strumtab implements the musical data model and timing engine of a
// three-string strumstick tablature editor: notes grouped into time-stacked
// NoteStacks, pure operations mutating them, measure/layout derivation and the
// conversion of musical positions into transport time for playback scheduling.
// Everything in this package is a pure computation over immutable inputs; the
// audio output, MIDI export and command line live in subpackages.
package strumtab

import (
	"crypto/rand"
	"fmt"
)

// String indices of the instrument, low to high. A strumstick has three
// strings; the two D strings are an octave apart.
const (
	StringLowD = 0
	StringA    = 1
	StringHiD  = 2

	NumStrings = 3
	MaxFret    = 24
)

type (
	// Note is a single fretted (or open, fret 0) note on one string.
	Note struct {
		String int
		Fret   int
	}

	// NoteStack is a vertical grouping of notes that sound simultaneously: at
	// most one note per string, all sharing the stack's duration. Position is
	// the tick offset from the start of the piece (960 ticks per quarter
	// note). A NoteStack never exists with an empty Notes list; the store
	// operations delete a stack the moment its last note is removed.
	NoteStack struct {
		ID          string
		Position    int
		Duration    Duration
		Notes       []Note     `yaml:",flow"`
		RepeatStart bool       `yaml:",omitempty"`
		RepeatEnd   *RepeatEnd `yaml:",omitempty"`
	}

	// RepeatEnd marks a stack as the end of a repeated passage. The playback
	// sequence expander jumps back to JumpToStackID TimesToRepeat times before
	// continuing past this stack; authoring order is never affected.
	RepeatEnd struct {
		JumpToStackID string
		TimesToRepeat int
	}

	// Tab is the ordered sequence of NoteStacks of a piece. It is always kept
	// sorted ascending by Position with unique positions; every mutating
	// operation returns a new Tab and leaves its receiver untouched.
	Tab []NoteStack
)

// Copy makes a deep copy of a NoteStack.
func (s *NoteStack) Copy() NoteStack {
	notes := make([]Note, len(s.Notes))
	copy(notes, s.Notes)
	ret := NoteStack{
		ID:          s.ID,
		Position:    s.Position,
		Duration:    s.Duration,
		Notes:       notes,
		RepeatStart: s.RepeatStart,
	}
	if s.RepeatEnd != nil {
		end := *s.RepeatEnd
		ret.RepeatEnd = &end
	}
	return ret
}

// Copy makes a deep copy of a Tab.
func (t Tab) Copy() Tab {
	stacks := make(Tab, len(t))
	for i := range t {
		stacks[i] = t[i].Copy()
	}
	return stacks
}

// newStackID returns a fresh opaque identifier for a NoteStack. This is the
// only impure corner of the store; IDs only need to be unique, their contents
// carry no meaning.
func newStackID() string {
	var b [8]byte
	rand.Read(b[:])
	return fmt.Sprintf("stack-%x", b)
}
