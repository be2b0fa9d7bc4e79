package strumtab

import (
	"fmt"
	"math"
)

// Pitch is a MIDI-style note number (C4 = 60). The open strings of the
// instrument are D3, A3 and D4, low to high.
type Pitch int

const (
	PitchD3 Pitch = 50
	PitchA3 Pitch = 57
	PitchD4 Pitch = 62
)

// OpenStringPitches indexes the open pitch of each string by string index.
var OpenStringPitches = [NumStrings]Pitch{PitchD3, PitchA3, PitchD4}

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// The strumstick is fretted diatonically: one octave spans eight frets, not
// twelve. Within an octave the fret offsets follow the major scale with the
// two extra chromatic steps at the top; fret 8 is exactly one octave above
// fret 0 and fret 7 a semitone below that octave.
var diatonicSemitones = [8]int{0, 2, 4, 5, 7, 9, 10, 11}

// FretSemitones returns the number of semitones a fret raises the open
// string. Negative frets map to 0.
func FretSemitones(fret int) int {
	if fret < 0 {
		return 0
	}
	return fret/8*12 + diatonicSemitones[fret%8]
}

// FretPitch resolves a string/fret pair to a pitch.
func FretPitch(str, fret int) (Pitch, error) {
	if err := validNote(str, fret); err != nil {
		return 0, err
	}
	return OpenStringPitches[str] + Pitch(FretSemitones(fret)), nil
}

// FretNoteName resolves a string/fret pair to a pitch name such as "D3".
func FretNoteName(str, fret int) (string, error) {
	p, err := FretPitch(str, fret)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// String renders the pitch as a note name with octave, MIDI convention
// (60 = "C4").
func (p Pitch) String() string {
	if p < 0 {
		return fmt.Sprintf("pitch(%d)", int(p))
	}
	return fmt.Sprintf("%s%d", pitchNames[p%12], int(p)/12-1)
}

// ParsePitch is the inverse of Pitch.String for names with sharps.
func ParsePitch(s string) (Pitch, error) {
	var octave int
	for i := len(pitchNames) - 1; i >= 0; i-- {
		name := pitchNames[i]
		if len(s) > len(name) && s[:len(name)] == name {
			if _, err := fmt.Sscanf(s[len(name):], "%d", &octave); err != nil {
				continue
			}
			return Pitch((octave+1)*12 + i), nil
		}
	}
	return 0, fmt.Errorf("malformed pitch name %q", s)
}

// Frequency returns the pitch's equal-temperament frequency in Hz (A4 = 440).
func (p Pitch) Frequency() float64 {
	return 440 * math.Exp2((float64(p)-69)/12)
}
