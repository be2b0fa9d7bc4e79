// Package synth provides the reference implementation of the strumtab.Synth
// seam: a plucked-string (Karplus-Strong) synthesizer with one voice per
// instrument string. Any other engine can be swapped in behind the interface.
package synth

import (
	"math/rand"

	"github.com/viterin/vek/vek32"

	"github.com/aheikkila/strumtab"
)

const (
	sustainFeedback = 0.996
	releaseFeedback = 0.90

	defaultGain = 0.5
)

type voice struct {
	delay    []float32 // the string's delay line, one period long
	phase    int
	active   bool
	feedback float32
}

// Pluck is a Karplus-Strong synth with strumtab.NumStrings voices. The zero
// value is not usable; construct with NewPluck.
type Pluck struct {
	voices  [strumtab.NumStrings]voice
	gain    float32
	rnd     *rand.Rand
	mix     []float32
	scratch []float32
}

// NewPluck returns a pluck synth with the default master gain. The excitation
// noise is seeded deterministically so renders are reproducible.
func NewPluck() *Pluck {
	return &Pluck{
		gain: defaultGain,
		rnd:  rand.New(rand.NewSource(1)),
	}
}

// SetGain sets the master gain applied to the voice mix.
func (p *Pluck) SetGain(gain float32) {
	if gain < 0 {
		gain = 0
	}
	p.gain = gain
}

// Trigger restarts the voice's string at the given pitch: the delay line is
// sized to one period and filled with noise, which the feedback loop then
// filters into a plucked tone.
func (p *Pluck) Trigger(v int, pitch strumtab.Pitch) {
	if v < 0 || v >= len(p.voices) {
		return
	}
	period := int(strumtab.SampleRate / pitch.Frequency())
	if period < 2 {
		period = 2
	}
	vo := &p.voices[v]
	vo.delay = make([]float32, period)
	for i := range vo.delay {
		vo.delay[i] = p.rnd.Float32()*2 - 1
	}
	vo.phase = 0
	vo.active = true
	vo.feedback = sustainFeedback
}

// Release damps the voice so the string dies out quickly instead of cutting
// off; the voice keeps rendering its decay until retriggered.
func (p *Pluck) Release(v int) {
	if v < 0 || v >= len(p.voices) {
		return
	}
	p.voices[v].feedback = releaseFeedback
}

// Render implements strumtab.Synth. It always advances time one frame per
// rendered frame, so samples == time in the return values.
func (p *Pluck) Render(buffer []float32, maxtime int) (int, int, error) {
	frames := len(buffer) / 2
	if frames > maxtime {
		frames = maxtime
	}
	p.mix = resize(p.mix, frames)
	for i := range p.mix {
		p.mix[i] = 0
	}
	p.scratch = resize(p.scratch, frames)
	for v := range p.voices {
		vo := &p.voices[v]
		if !vo.active {
			continue
		}
		n := len(vo.delay)
		for i := 0; i < frames; i++ {
			out := vo.delay[vo.phase]
			next := (out + vo.delay[(vo.phase+1)%n]) * 0.5 * vo.feedback
			vo.delay[vo.phase] = next
			vo.phase = (vo.phase + 1) % n
			p.scratch[i] = out
		}
		vek32.Add_Inplace(p.mix, p.scratch)
	}
	vek32.MulNumber_Inplace(p.mix, p.gain)
	for i := 0; i < frames; i++ {
		buffer[2*i] = p.mix[i]
		buffer[2*i+1] = p.mix[i]
	}
	return frames, frames, nil
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
