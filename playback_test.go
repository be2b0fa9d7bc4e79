package strumtab_test

import (
	"reflect"
	"testing"

	"github.com/aheikkila/strumtab"
)

// repeatTab is three quarter-note stacks a, b, c where b repeats back to a
// the given number of times.
func repeatTab(times int) strumtab.Tab {
	return strumtab.Tab{
		{ID: "a", Position: 0, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 0}}, RepeatStart: true},
		{ID: "b", Position: 960, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 1, Fret: 2}},
			RepeatEnd: &strumtab.RepeatEnd{JumpToStackID: "a", TimesToRepeat: times}},
		{ID: "c", Position: 1920, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 2, Fret: 0}}},
	}
}

func TestPlaybackSequenceExpandsRepeats(t *testing.T) {
	seq := repeatTab(1).PlaybackSequence()
	gotIDs := make([]string, len(seq))
	gotPlay := make([]int, len(seq))
	gotOriginal := make([]int, len(seq))
	for i, ps := range seq {
		gotIDs[i] = ps.ID
		gotPlay[i] = ps.PlayPosition
		gotOriginal[i] = ps.OriginalPosition
	}
	if want := []string{"a", "b", "a", "b", "c"}; !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("playback order got %v, want %v", gotIDs, want)
	}
	if want := []int{0, 960, 1920, 2880, 3840}; !reflect.DeepEqual(gotPlay, want) {
		t.Errorf("play positions got %v, want %v", gotPlay, want)
	}
	if want := []int{0, 960, 0, 960, 1920}; !reflect.DeepEqual(gotOriginal, want) {
		t.Errorf("original positions got %v, want %v", gotOriginal, want)
	}
}

func TestPlaybackSequencePlayPositionsAreMonotonic(t *testing.T) {
	seq := repeatTab(3).PlaybackSequence()
	if want := 2*(3+1) + 1; len(seq) != want {
		t.Fatalf("sequence length got %v, want %v", len(seq), want)
	}
	for i := 1; i < len(seq); i++ {
		if seq[i].PlayPosition <= seq[i-1].PlayPosition {
			t.Fatalf("play positions not strictly increasing at index %v: %v then %v",
				i, seq[i-1].PlayPosition, seq[i].PlayPosition)
		}
	}
}

func TestPlaybackSequenceWithoutRepeats(t *testing.T) {
	tab := repeatTab(0)
	tab[1].RepeatEnd = nil
	seq := tab.PlaybackSequence()
	if len(seq) != 3 {
		t.Fatalf("sequence length got %v, want 3", len(seq))
	}
	for i, ps := range seq {
		if ps.PlayPosition != tab[i].Position {
			t.Errorf("play position %v got %v, want the authoring position %v", i, ps.PlayPosition, tab[i].Position)
		}
	}
}

func TestPlaybackSequenceZeroRepeatsFallsThrough(t *testing.T) {
	seq := repeatTab(0).PlaybackSequence()
	if len(seq) != 3 {
		t.Errorf("TimesToRepeat 0 should play straight through, got %v stacks", len(seq))
	}
}

func TestPlaybackSequenceDanglingRepeatTarget(t *testing.T) {
	tab := repeatTab(2)
	tab[1].RepeatEnd.JumpToStackID = "missing"
	seq := tab.PlaybackSequence()
	if len(seq) != 3 {
		t.Errorf("a dangling repeat target should be skipped, got %v stacks", len(seq))
	}
}

func TestPlaybackSequenceIgnoresForwardJumps(t *testing.T) {
	// b jumps forward to c, d jumps back to a; only the backward jump is
	// taken and the expansion stays finite
	tab := strumtab.Tab{
		{ID: "a", Position: 0, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 0}}},
		{ID: "b", Position: 960, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 1}},
			RepeatEnd: &strumtab.RepeatEnd{JumpToStackID: "c", TimesToRepeat: 1}},
		{ID: "c", Position: 1920, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 2}}},
		{ID: "d", Position: 2880, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 3}},
			RepeatEnd: &strumtab.RepeatEnd{JumpToStackID: "a", TimesToRepeat: 1}},
	}
	seq := tab.PlaybackSequence()
	gotIDs := make([]string, len(seq))
	for i, ps := range seq {
		gotIDs[i] = ps.ID
	}
	if want := []string{"a", "b", "c", "d", "a", "b", "c", "d"}; !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("playback order got %v, want %v", gotIDs, want)
	}
}

func TestPlaybackSequenceIgnoresSelfJump(t *testing.T) {
	tab := repeatTab(2)
	tab[1].RepeatEnd.JumpToStackID = "b"
	seq := tab.PlaybackSequence()
	if len(seq) != 3 {
		t.Errorf("a repeat jumping to itself should play straight through, got %v stacks", len(seq))
	}
}

func TestPlaybackSequencePreservesGaps(t *testing.T) {
	tab := strumtab.Tab{
		{ID: "a", Position: 0, Duration: strumtab.Sixteenth, Notes: []strumtab.Note{{String: 0, Fret: 0}}},
		{ID: "b", Position: 1920, Duration: strumtab.Quarter, Notes: []strumtab.Note{{String: 0, Fret: 2}}},
	}
	seq := tab.PlaybackSequence()
	if seq[1].PlayPosition != 1920 {
		t.Errorf("forward motion should keep the authoring gap, got play position %v", seq[1].PlayPosition)
	}
}

func TestEvents(t *testing.T) {
	events, err := repeatTab(1).Events()
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("Events got %v events, want 5", len(events))
	}
	first := events[0]
	if first.Time != "0:0:0" || first.Duration != "4n" || first.StackID != "a" {
		t.Errorf("first event got %+v, want time 0:0:0, duration 4n, stack a", first)
	}
	if len(first.Notes) != 1 || first.Notes[0].Pitch != "D3" {
		t.Errorf("first event notes got %v, want one D3", first.Notes)
	}
	// the second pass of "a" keeps its authoring position but a later time
	third := events[2]
	if third.StackID != "a" || third.OriginalPosition != 0 || third.Time != "0:2:0" {
		t.Errorf("third event got %+v, want stack a at 0:2:0 with original position 0", third)
	}
	last := events[4]
	if last.Time != "1:0:0" || last.Notes[0].Pitch != "D4" {
		t.Errorf("last event got %+v, want time 1:0:0 pitch D4", last)
	}
}
