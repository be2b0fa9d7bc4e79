// Package gomidi exports tabs as standard MIDI files through the
// gitlab.com/gomidi/midi library, so the expanded playback sequence (repeats
// taken, ties honored) can be heard in any sequencer.
package gomidi

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/aheikkila/strumtab"
)

const velocity = 96

type midiEvent struct {
	tick int
	on   bool
	key  uint8
}

// WriteSMF writes the playback sequence of a tab as a two-track SMF: a meta
// track carrying tempo and meter, and one note track with all three strings on
// channel 0. Tick resolution matches the core's 960 ticks per quarter note.
func WriteSMF(w io.Writer, tab strumtab.Tab, bpm int, ts strumtab.TimeSignature) error {
	if bpm < 1 {
		return fmt.Errorf("BPM should be > 0, got %v", bpm)
	}
	if !ts.Valid() {
		ts = strumtab.TimeSignature{Numerator: 4, Denominator: 4}
	}
	events, err := noteEvents(tab)
	if err != nil {
		return err
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(strumtab.TicksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaMeter(uint8(ts.Numerator), uint8(ts.Denominator)))
	meta.Add(0, smf.MetaTempo(float64(bpm)))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return fmt.Errorf("could not add meta track: %w", err)
	}

	var notes smf.Track
	tick := 0
	for _, e := range events {
		delta := uint32(e.tick - tick)
		tick = e.tick
		if e.on {
			notes.Add(delta, midi.NoteOn(0, e.key, velocity))
		} else {
			notes.Add(delta, midi.NoteOff(0, e.key))
		}
	}
	notes.Close(0)
	if err := sm.Add(notes); err != nil {
		return fmt.Errorf("could not add note track: %w", err)
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("could not write MIDI file: %w", err)
	}
	return nil
}

// noteEvents flattens the playback sequence into absolute-tick on/off pairs,
// ordered with offs before ons at the same tick so retriggered pitches do not
// get eaten by their own note-off.
func noteEvents(tab strumtab.Tab) ([]midiEvent, error) {
	var events []midiEvent
	for _, ps := range tab.PlaybackSequence() {
		for _, n := range ps.Notes {
			pitch, err := strumtab.FretPitch(n.String, n.Fret)
			if err != nil {
				return nil, fmt.Errorf("cannot export stack %v: %v", ps.ID, err)
			}
			events = append(events,
				midiEvent{tick: ps.PlayPosition, on: true, key: uint8(pitch)},
				midiEvent{tick: ps.PlayPosition + ps.Duration.Ticks(), on: false, key: uint8(pitch)},
			)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})
	return events, nil
}
