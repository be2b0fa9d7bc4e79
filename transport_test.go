package strumtab_test

import (
	"testing"

	"github.com/aheikkila/strumtab"
)

func TestNewTransport(t *testing.T) {
	tr := strumtab.NewTransport()
	if tr.Tempo != 120 || tr.Volume != 0.8 || tr.Playing || tr.Position != 0 {
		t.Errorf("NewTransport() got %+v, want tempo 120, volume 0.8, stopped at 0", tr)
	}
}

func TestTransportClamping(t *testing.T) {
	tests := []struct {
		bpm  int
		want int
	}{
		{50, 60},
		{60, 60},
		{120, 120},
		{200, 200},
		{250, 200},
	}
	for _, test := range tests {
		if got := strumtab.NewTransport().WithTempo(test.bpm).Tempo; got != test.want {
			t.Errorf("WithTempo(%v) got %v, want %v", test.bpm, got, test.want)
		}
	}
	volumes := []struct {
		volume float64
		want   float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.5, 1},
	}
	for _, test := range volumes {
		if got := strumtab.NewTransport().WithVolume(test.volume).Volume; got != test.want {
			t.Errorf("WithVolume(%v) got %v, want %v", test.volume, got, test.want)
		}
	}
	if got := strumtab.NewTransport().WithPosition(-100).Position; got != 0 {
		t.Errorf("WithPosition(-100) got %v, want 0", got)
	}
}

func TestTransportSettersAreValueSemantics(t *testing.T) {
	tr := strumtab.NewTransport()
	tr.WithTempo(180).WithPlaying(true)
	if tr.Tempo != 120 || tr.Playing {
		t.Errorf("setters mutated their receiver: %+v", tr)
	}
}

func TestTransportLoop(t *testing.T) {
	tr := strumtab.NewTransport().WithLoop(960, 2880)
	if !tr.Loop.Enabled || tr.Loop.Start != 960 || tr.Loop.End != 2880 {
		t.Fatalf("WithLoop(960, 2880) got %+v", tr.Loop)
	}
	tests := []struct{ ticks, want int }{
		{0, 0},       // before the loop, untouched
		{960, 960},   // at the start
		{2879, 2879}, // just inside
		{2880, 960},  // the end wraps to the start
		{3840, 1920}, // one loop length past the start
		{4800, 960},
	}
	for _, test := range tests {
		if got := tr.WrapPosition(test.ticks); got != test.want {
			t.Errorf("WrapPosition(%v) got %v, want %v", test.ticks, got, test.want)
		}
	}
	if got := tr.WithoutLoop().WrapPosition(4800); got != 4800 {
		t.Errorf("WrapPosition without a loop got %v, want 4800", got)
	}
	if inverted := strumtab.NewTransport().WithLoop(2880, 960).Loop; inverted.Start != 960 || inverted.End != 2880 {
		t.Errorf("an inverted region should swap its ends, got %+v", inverted)
	}
	if empty := strumtab.NewTransport().WithLoop(960, 960).Loop; empty.Enabled {
		t.Errorf("an empty region should disable the loop, got %+v", empty)
	}
}

func TestTicksToSeconds(t *testing.T) {
	tests := []struct {
		ticks, bpm int
		seconds    float64
	}{
		{960, 120, 0.5},
		{960, 60, 1},
		{3840, 120, 2},
		{0, 120, 0},
	}
	for _, test := range tests {
		if got := strumtab.TicksToSeconds(test.ticks, test.bpm); got != test.seconds {
			t.Errorf("TicksToSeconds(%v, %v) got %v, want %v", test.ticks, test.bpm, got, test.seconds)
		}
		if back := strumtab.SecondsToTicks(test.seconds, test.bpm); back != test.ticks {
			t.Errorf("SecondsToTicks(%v, %v) got %v, want %v", test.seconds, test.bpm, back, test.ticks)
		}
	}
	if got := strumtab.TicksToSeconds(960, 0); got != 0 {
		t.Errorf("TicksToSeconds with zero bpm got %v, want 0", got)
	}
}
