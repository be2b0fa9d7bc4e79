package strumtab_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/aheikkila/strumtab"
)

func testProject(t *testing.T) strumtab.Project {
	t.Helper()
	p := strumtab.NewProject()
	p.Title = "Boil Them Cabbage Down"
	p.BPM = 100
	var err error
	adds := []struct{ pos, str, fret int }{
		{0, 0, 0},
		{0, 1, 0},
		{960, 2, 2},
	}
	for _, a := range adds {
		if p.Tab, err = p.Tab.AddNote(a.pos, a.str, a.fret, strumtab.Quarter); err != nil {
			t.Fatalf("AddNote returned error: %v", err)
		}
	}
	return p
}

func TestProjectRoundTrip(t *testing.T) {
	p := testProject(t)
	for _, extension := range []string{".yml", ".json"} {
		var buf bytes.Buffer
		if err := strumtab.WriteProject(&buf, p, extension); err != nil {
			t.Fatalf("WriteProject(%v) returned error: %v", extension, err)
		}
		got, err := strumtab.ReadProject(&buf)
		if err != nil {
			t.Fatalf("ReadProject(%v) returned error: %v", extension, err)
		}
		if !reflect.DeepEqual(got, p) {
			t.Errorf("%v round trip got %#v, want %#v", extension, got, p)
		}
	}
}

func TestReadProjectBridgesLegacyGrid(t *testing.T) {
	p := strumtab.NewProject()
	p.Version = 1
	var err error
	if p.Grid, err = p.Grid.AddGridNote(0, 0, 2, strumtab.Quarter); err != nil {
		t.Fatalf("AddGridNote returned error: %v", err)
	}
	if p.Grid, err = p.Grid.AddGridNote(4, 1, 0, strumtab.Half); err != nil {
		t.Fatalf("AddGridNote returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := strumtab.WriteProject(&buf, p, ".yml"); err != nil {
		t.Fatalf("WriteProject returned error: %v", err)
	}
	got, err := strumtab.ReadProject(&buf)
	if err != nil {
		t.Fatalf("ReadProject returned error: %v", err)
	}
	if len(got.Tab) != 2 {
		t.Fatalf("bridged tab has %v stacks, want 2", len(got.Tab))
	}
	if n, ok := got.Tab.NoteAt(0, 0); !ok || n.Fret != 2 {
		t.Errorf("bridged NoteAt(0, 0) got (%v, %v), want fret 2", n, ok)
	}
	if n, ok := got.Tab.NoteAt(4*strumtab.SlotTicks, 1); !ok || n.Fret != 0 {
		t.Errorf("bridged NoteAt(960, 1) got (%v, %v), want fret 0", n, ok)
	}
}

func TestReadProjectRejectsGarbage(t *testing.T) {
	if _, err := strumtab.ReadProject(strings.NewReader("{invalid")); err == nil {
		t.Errorf("ReadProject accepted unparseable input")
	}
}

func TestReadProjectRejectsInvalidDocument(t *testing.T) {
	doc := `{"Version": 2, "BPM": 0, "TimeSignature": {"Numerator": 4, "Denominator": 4}}`
	_, err := strumtab.ReadProject(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "invalid project file") {
		t.Errorf("ReadProject got error %v, want an invalid project file error", err)
	}
}

func TestProjectValidate(t *testing.T) {
	p := testProject(t)
	if errs := p.Validate(); len(errs) > 0 {
		t.Errorf("Validate() of a well-formed project reported %v", errs)
	}
	p.TimeSignature.Denominator = 5
	p.BPM = 0
	if errs := p.Validate(); len(errs) != 2 {
		t.Errorf("Validate() reported %v problems (%v), want 2", len(errs), errs)
	}
}
