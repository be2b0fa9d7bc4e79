package strumtab

import (
	"errors"
	"fmt"
)

// Duration is the note length shared by every note in a stack. Values are the
// plain names used in project documents.
type Duration string

const (
	Whole     Duration = "whole"
	Half      Duration = "half"
	Quarter   Duration = "quarter"
	Eighth    Duration = "eighth"
	Sixteenth Duration = "sixteenth"
)

// Tick constants of the timing grid. A slot is one sixteenth note, the
// resolution of the legacy grid model. Transport time assumes 4/4 at this
// layer; TimeSignature generalizes the measure span where needed.
const (
	TicksPerQuarter   = 960
	TicksPerBeat      = TicksPerQuarter
	TicksPerSixteenth = 240
	TicksPerMeasure   = 4 * TicksPerBeat
	SlotTicks         = TicksPerSixteenth
	SlotsPerBeat      = TicksPerBeat / SlotTicks
)

var ErrNegativeTicks = errors.New("ticks cannot be negative")

var durationTicks = map[Duration]int{
	Whole:     3840,
	Half:      1920,
	Quarter:   960,
	Eighth:    480,
	Sixteenth: 240,
}

// Valid reports whether d is one of the five known durations.
func (d Duration) Valid() bool {
	_, ok := durationTicks[d]
	return ok
}

// Ticks returns the tick count of the duration, 0 for an unknown duration.
func (d Duration) Ticks() int {
	return durationTicks[d]
}

// Slots returns the duration's length in sixteenth-note slots.
func (d Duration) Slots() int {
	return durationTicks[d] / SlotTicks
}

// Beats returns the duration in quarter-note beats, scaled by half again when
// dotted.
func (d Duration) Beats(dotted bool) float64 {
	beats := float64(durationTicks[d]) / TicksPerBeat
	if dotted {
		beats *= 1.5
	}
	return beats
}

// Notation returns the duration as the notation string the audio collaborator
// schedules with ("4n" for a quarter note and so on). Unknown durations map to
// the empty string.
func (d Duration) Notation() string {
	switch d {
	case Whole:
		return "1n"
	case Half:
		return "2n"
	case Quarter:
		return "4n"
	case Eighth:
		return "8n"
	case Sixteenth:
		return "16n"
	}
	return ""
}

// TicksToTransportTime formats a tick offset as the collaborator's
// "measure:beat:sixteenth" transport time. Negative ticks are rejected;
// ticks that are not a multiple of a sixteenth truncate to the containing
// sixteenth, so the function is an exact inverse of ParseTransportTime only
// for multiples of 240.
func TicksToTransportTime(ticks int) (string, error) {
	if ticks < 0 {
		return "", ErrNegativeTicks
	}
	measure := ticks / TicksPerMeasure
	beat := ticks % TicksPerMeasure / TicksPerBeat
	sixteenth := ticks % TicksPerBeat / TicksPerSixteenth
	return fmt.Sprintf("%d:%d:%d", measure, beat, sixteenth), nil
}

// ParseTransportTime is the inverse of TicksToTransportTime.
func ParseTransportTime(s string) (int, error) {
	var measure, beat, sixteenth int
	var trailing string
	// the %s must stay unfilled or the string carried more than the three
	// components
	n, err := fmt.Sscanf(s, "%d:%d:%d%s", &measure, &beat, &sixteenth, &trailing)
	if n > 3 {
		return 0, fmt.Errorf("malformed transport time %q: trailing %q", s, trailing)
	}
	if n < 3 {
		return 0, fmt.Errorf("malformed transport time %q: %v", s, err)
	}
	if measure < 0 || beat < 0 || sixteenth < 0 {
		return 0, fmt.Errorf("malformed transport time %q: negative component", s)
	}
	return measure*TicksPerMeasure + beat*TicksPerBeat + sixteenth*TicksPerSixteenth, nil
}
