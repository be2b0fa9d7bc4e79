package strumtab

type (
	// SelectedNote identifies one individually selected note inside a stack. A
	// stack is "selected" only incidentally, through its notes.
	SelectedNote struct {
		StackID string
		Note    Note
	}

	// Selection is the set of currently selected notes.
	Selection []SelectedNote

	// ClipboardNote is one copied note together with the position and duration
	// of the stack it came from, so a paste can rebuild relative timing.
	ClipboardNote struct {
		Position int
		Duration Duration
		Note     Note
	}

	// Clipboard is a snapshot taken by copy/cut; it stays valid no matter how
	// the Tab changes afterwards.
	Clipboard []ClipboardNote
)

// SelectOnString selects the notes on one string whose stack position lies in
// [startPos, endPos).
func (t Tab) SelectOnString(str, startPos, endPos int) Selection {
	var sel Selection
	for _, s := range t {
		if s.Position < startPos || s.Position >= endPos {
			continue
		}
		for _, n := range s.Notes {
			if n.String == str {
				sel = append(sel, SelectedNote{StackID: s.ID, Note: n})
			}
		}
	}
	return sel
}

// SelectRange selects every note, on any string, whose stack position lies in
// [startPos, endPos).
func (t Tab) SelectRange(startPos, endPos int) Selection {
	var sel Selection
	for _, s := range t {
		if s.Position < startPos || s.Position >= endPos {
			continue
		}
		for _, n := range s.Notes {
			sel = append(sel, SelectedNote{StackID: s.ID, Note: n})
		}
	}
	return sel
}

// CopySelection snapshots the selected notes. Selection entries that no longer
// exist in the Tab are silently skipped; a stale selection is an expected
// state, not an error.
func (t Tab) CopySelection(sel Selection) Clipboard {
	var clip Clipboard
	for _, s := range t {
		for _, n := range s.Notes {
			if sel.contains(s.ID, n.String) {
				clip = append(clip, ClipboardNote{Position: s.Position, Duration: s.Duration, Note: n})
			}
		}
	}
	return clip
}

// CutSelection removes the selected notes and returns both the new Tab and the
// clipboard snapshot of what was removed.
func (t Tab) CutSelection(sel Selection) (Tab, Clipboard) {
	clip := t.CopySelection(sel)
	return t.DeleteSelection(sel), clip
}

// DeleteSelection removes every selected note, dropping stacks that end up
// empty.
func (t Tab) DeleteSelection(sel Selection) Tab {
	ret := t
	for _, s := range t {
		for _, n := range s.Notes {
			if sel.contains(s.ID, n.String) {
				ret = ret.RemoveNote(s.Position, n.String)
			}
		}
	}
	return ret
}

// PasteToString writes all clipboard notes onto a single target string,
// preserving relative timing but discarding the original string assignment.
// Notes that land on the same position collapse to the last one pasted.
func (t Tab) PasteToString(clip Clipboard, startPosition, targetString int) (Tab, error) {
	ret := t
	base := clip.minPosition()
	for _, c := range clip {
		var err error
		ret, err = ret.AddNote(startPosition+c.Position-base, targetString, c.Note.Fret, c.Duration)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// PastePreservingStrings writes the clipboard notes with the same relative
// timing as PasteToString, but each note keeps the string it was copied from.
func (t Tab) PastePreservingStrings(clip Clipboard, startPosition int) (Tab, error) {
	ret := t
	base := clip.minPosition()
	for _, c := range clip {
		var err error
		ret, err = ret.AddNote(startPosition+c.Position-base, c.Note.String, c.Note.Fret, c.Duration)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// minPosition returns the earliest position among clipboard entries; relative
// paste offsets are computed against it.
func (c Clipboard) minPosition() int {
	if len(c) == 0 {
		return 0
	}
	ret := c[0].Position
	for _, n := range c[1:] {
		if n.Position < ret {
			ret = n.Position
		}
	}
	return ret
}

func (sel Selection) contains(stackID string, str int) bool {
	for _, s := range sel {
		if s.StackID == stackID && s.Note.String == str {
			return true
		}
	}
	return false
}
