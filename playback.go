package strumtab

type (
	// PlaybackStack is one step of the expanded playback order: the stack to
	// sound, the strictly-forward tick position it plays at, and the position
	// it holds in the authoring order. The two orders must never be confused;
	// repeats make playback revisit stacks whose authoring positions go
	// backwards.
	PlaybackStack struct {
		NoteStack
		PlayPosition     int
		OriginalPosition int
	}

	// EventNote is one sounding note of an event, pitch resolved.
	EventNote struct {
		Pitch  string
		String int
		Fret   int
	}

	// Event is what the audio collaborator schedules: a transport-time start,
	// a duration notation string and the notes to trigger together.
	Event struct {
		Time             string
		Duration         string
		Notes            []EventNote
		StackID          string
		OriginalPosition int
	}

	// GridEvent is the legacy grid's playback event. Durations carry beats as
	// a number because tie chains accumulate to lengths that have no single
	// notation name.
	GridEvent struct {
		Time   string
		Beats  float64
		Pitch  string
		String int
		Fret   int
	}

	// repeatFrame tracks one active repeat while expanding. Termination is
	// guaranteed because jumps is strictly bounded by max.
	repeatFrame struct {
		endID string
		jumps int
		max   int
	}
)

// PlaybackSequence expands repeat annotations into a strictly-forward playback
// order. On first reaching a repeat-end stack the cursor jumps back to the
// repeat's target; it keeps jumping on later encounters until the repeat has
// been taken TimesToRepeat times, then falls through. Play positions advance
// by the authoring-order gap when moving forward and by the jumping stack's
// own duration when a repeat wraps around, so the result is monotonic in time
// even though authoring positions repeat.
func (t Tab) PlaybackSequence() []PlaybackStack {
	var ret []PlaybackStack
	var frames []repeatFrame
	playPos := 0
	if len(t) > 0 {
		playPos = t[0].Position
	}
	prevOriginal, prevDuration := -1, Duration("")
	for i := 0; i < len(t); i++ {
		s := &t[i]
		if prevOriginal >= 0 {
			if delta := s.Position - prevOriginal; delta > 0 {
				playPos += delta
			} else {
				playPos += prevDuration.Ticks()
			}
		}
		ret = append(ret, PlaybackStack{
			NoteStack:        s.Copy(),
			PlayPosition:     playPos,
			OriginalPosition: s.Position,
		})
		prevOriginal, prevDuration = s.Position, s.Duration
		if s.RepeatEnd == nil || s.RepeatEnd.TimesToRepeat <= 0 {
			continue
		}
		// only backward jumps are taken; a dangling, self or forward target
		// plays straight through, keeping the expansion finite
		target, ok := t.indexByID(s.RepeatEnd.JumpToStackID)
		if !ok || target >= i {
			continue
		}
		top := len(frames) - 1
		if top >= 0 && frames[top].endID == s.ID {
			if frames[top].jumps < frames[top].max {
				frames[top].jumps++
				i = target - 1
			} else {
				frames = frames[:top]
			}
			continue
		}
		frames = append(frames, repeatFrame{endID: s.ID, jumps: 1, max: s.RepeatEnd.TimesToRepeat})
		i = target - 1
	}
	return ret
}

// Events builds the ordered audio event list for a Tab, one event per stack in
// playback order.
func (t Tab) Events() ([]Event, error) {
	seq := t.PlaybackSequence()
	ret := make([]Event, 0, len(seq))
	for _, ps := range seq {
		time, err := TicksToTransportTime(ps.PlayPosition)
		if err != nil {
			return nil, err
		}
		notes := make([]EventNote, 0, len(ps.Notes))
		for _, n := range ps.Notes {
			name, err := FretNoteName(n.String, n.Fret)
			if err != nil {
				return nil, err
			}
			notes = append(notes, EventNote{Pitch: name, String: n.String, Fret: n.Fret})
		}
		ret = append(ret, Event{
			Time:             time,
			Duration:         ps.Duration.Notation(),
			Notes:            notes,
			StackID:          ps.ID,
			OriginalPosition: ps.OriginalPosition,
		})
	}
	return ret, nil
}

// NoteTotalBeats accumulates a tied note's full sounding length: its own
// duration plus every note reachable through IsTiedTo pointers, walked until a
// link is missing, out of range, or already visited.
func (td TabData) NoteTotalBeats(slot, stringIndex int) float64 {
	beats := 0.0
	visited := make(map[int]bool)
	for {
		if slot < 0 || slot >= len(td) || visited[slot] {
			return beats
		}
		visited[slot] = true
		n, ok := td.GridNoteAt(slot, stringIndex)
		if !ok {
			return beats
		}
		beats += n.Duration.Beats(n.IsDotted)
		if n.IsTiedTo == nil {
			return beats
		}
		slot = *n.IsTiedTo
	}
}

// GridEvents builds the legacy grid's playback events. A note with IsTiedFrom
// set never triggers on its own; its sound is covered by the tie origin, which
// triggers exactly once for the full accumulated duration.
func (td TabData) GridEvents() ([]GridEvent, error) {
	var ret []GridEvent
	for slot, cell := range td {
		for _, n := range cell.Notes {
			if n.Fret == nil || n.IsTiedFrom != nil {
				continue
			}
			time, err := TicksToTransportTime(slot * SlotTicks)
			if err != nil {
				return nil, err
			}
			name, err := FretNoteName(n.StringIndex, *n.Fret)
			if err != nil {
				return nil, err
			}
			ret = append(ret, GridEvent{
				Time:   time,
				Beats:  td.NoteTotalBeats(slot, n.StringIndex),
				Pitch:  name,
				String: n.StringIndex,
				Fret:   *n.Fret,
			})
		}
	}
	return ret, nil
}
