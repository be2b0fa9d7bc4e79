package gomidi_test

import (
	"bytes"
	"testing"

	"github.com/aheikkila/strumtab"
	"github.com/aheikkila/strumtab/gomidi"
)

func TestWriteSMF(t *testing.T) {
	var tab strumtab.Tab
	var err error
	if tab, err = tab.AddNote(0, 0, 0, strumtab.Quarter); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	if tab, err = tab.AddNote(960, 2, 2, strumtab.Half); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := gomidi.WriteSMF(&buf, tab, 100, strumtab.TimeSignature{Numerator: 4, Denominator: 4}); err != nil {
		t.Fatalf("WriteSMF returned error: %v", err)
	}
	contents := buf.Bytes()
	if len(contents) < 14 || string(contents[:4]) != "MThd" {
		t.Fatalf("output does not start with an SMF header: % x", contents[:4])
	}
	if got := bytes.Count(contents, []byte("MTrk")); got != 2 {
		t.Errorf("output has %v track chunks, want 2", got)
	}
}

func TestWriteSMFEmptyTab(t *testing.T) {
	var buf bytes.Buffer
	if err := gomidi.WriteSMF(&buf, nil, 120, strumtab.TimeSignature{}); err != nil {
		t.Fatalf("WriteSMF of an empty tab returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("WriteSMF of an empty tab wrote nothing")
	}
}

func TestWriteSMFRejectsBadBPM(t *testing.T) {
	if err := gomidi.WriteSMF(&bytes.Buffer{}, nil, 0, strumtab.TimeSignature{}); err == nil {
		t.Errorf("WriteSMF accepted BPM 0")
	}
}
