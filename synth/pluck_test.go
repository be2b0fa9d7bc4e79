package synth_test

import (
	"testing"

	"github.com/aheikkila/strumtab"
	"github.com/aheikkila/strumtab/synth"
)

func TestPluckSilentUntilTriggered(t *testing.T) {
	p := synth.NewPluck()
	buffer := make([]float32, 256)
	samples, time, err := p.Render(buffer, 1000000)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if samples != 128 || time != 128 {
		t.Errorf("Render got (%v, %v), want (128, 128)", samples, time)
	}
	for i, v := range buffer {
		if v != 0 {
			t.Fatalf("buffer[%v] got %v, want silence before any trigger", i, v)
		}
	}
}

func TestPluckMakesSound(t *testing.T) {
	p := synth.NewPluck()
	p.Trigger(0, strumtab.PitchD3)
	buffer := make([]float32, 2048)
	if _, _, err := p.Render(buffer, 1000000); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	sum := float32(0)
	for _, v := range buffer {
		if v > 0 {
			sum += v
		} else {
			sum -= v
		}
	}
	if sum == 0 {
		t.Errorf("a triggered voice rendered pure silence")
	}
	// stereo interleave mirrors the mono mix
	for i := 0; i < len(buffer); i += 2 {
		if buffer[i] != buffer[i+1] {
			t.Fatalf("frame %v is not centered: L %v, R %v", i/2, buffer[i], buffer[i+1])
		}
	}
}

func TestPluckRendersAreReproducible(t *testing.T) {
	render := func() []float32 {
		p := synth.NewPluck()
		p.Trigger(2, strumtab.PitchD4)
		buffer := make([]float32, 1024)
		if _, _, err := p.Render(buffer, 1000000); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		return buffer
	}
	a, b := render(), render()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("renders diverge at sample %v: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPluckReleaseDecaysFaster(t *testing.T) {
	energy := func(release bool) float64 {
		p := synth.NewPluck()
		p.Trigger(1, strumtab.PitchA3)
		head := make([]float32, 2048)
		if _, _, err := p.Render(head, 1000000); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if release {
			p.Release(1)
		}
		tail := make([]float32, 1<<16)
		if _, _, err := p.Render(tail, 1000000); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		e := 0.0
		for _, v := range tail {
			e += float64(v) * float64(v)
		}
		return e
	}
	if sustained, released := energy(false), energy(true); released >= sustained {
		t.Errorf("released energy %v not below sustained energy %v", released, sustained)
	}
}

func TestPluckIgnoresBadVoice(t *testing.T) {
	p := synth.NewPluck()
	p.Trigger(-1, strumtab.PitchD3)
	p.Trigger(strumtab.NumStrings, strumtab.PitchD3)
	p.Release(-1)
	buffer := make([]float32, 64)
	if _, _, err := p.Render(buffer, 1000000); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for i, v := range buffer {
		if v != 0 {
			t.Fatalf("buffer[%v] got %v, want silence after out-of-range voices", i, v)
		}
	}
}

func TestPluckZeroGain(t *testing.T) {
	p := synth.NewPluck()
	p.SetGain(0)
	p.Trigger(0, strumtab.PitchD4)
	buffer := make([]float32, 512)
	if _, _, err := p.Render(buffer, 1000000); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for i, v := range buffer {
		if v != 0 {
			t.Fatalf("buffer[%v] got %v, want silence at zero gain", i, v)
		}
	}
}
