package strumtab

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// releaseTail is how long the renderer keeps rendering after the last release
// so plucked notes can ring out, in seconds.
const releaseTail = 1.5

type renderAction struct {
	frame int
	voice int
	pitch Pitch
	on    bool
}

// Render plays a whole Tab through the given synth and returns the stereo
// interleaved float32 buffer. Each string owns one synth voice; a stack
// triggers all its notes at its playback position and releases them when its
// duration has sounded, so tied repeats and expanded passages come out exactly
// as the playback scheduler ordered them.
func Render(synth Synth, t Tab, bpm int) ([]float32, error) {
	if bpm < 1 {
		return nil, errors.New("BPM should be > 0")
	}
	framesPerTick := float64(SampleRate) * 60 / float64(bpm) / TicksPerQuarter
	var actions []renderAction
	end := 0
	for _, ps := range t.PlaybackSequence() {
		start := int(float64(ps.PlayPosition) * framesPerTick)
		stop := int(float64(ps.PlayPosition+ps.Duration.Ticks()) * framesPerTick)
		for _, n := range ps.Notes {
			pitch, err := FretPitch(n.String, n.Fret)
			if err != nil {
				return nil, fmt.Errorf("cannot render stack %v: %v", ps.ID, err)
			}
			actions = append(actions,
				renderAction{frame: start, voice: n.String, pitch: pitch, on: true},
				renderAction{frame: stop, voice: n.String, on: false},
			)
		}
		if stop > end {
			end = stop
		}
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].frame < actions[j].frame })
	total := end + int(releaseTail*SampleRate)
	buffer := make([]float32, total*2)
	frame := 0
	for _, a := range actions {
		if a.frame > frame {
			if err := renderSpan(synth, buffer[2*frame:2*a.frame]); err != nil {
				return nil, err
			}
			frame = a.frame
		}
		if a.on {
			synth.Trigger(a.voice, a.pitch)
		} else {
			synth.Release(a.voice)
		}
	}
	if err := renderSpan(synth, buffer[2*frame:]); err != nil {
		return nil, err
	}
	return buffer, nil
}

func renderSpan(synth Synth, buffer []float32) error {
	for len(buffer) > 0 {
		samples, _, err := synth.Render(buffer, math.MaxInt32)
		if err != nil {
			return fmt.Errorf("synth.Render failed: %v", err)
		}
		if samples == 0 {
			return errors.New("synth.Render made no progress")
		}
		buffer = buffer[samples*2:]
	}
	return nil
}
