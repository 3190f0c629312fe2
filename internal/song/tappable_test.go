package song

import "testing"

// At 120 bpm with 480 ticks per beat a millisecond is 0.96 ticks, so a gap
// of n ticks between two zero-length notes is n/0.96 ms.
func msForTicks(ticks float64) float64 {
	return ticks / 0.96
}

func newTappableTrack() *Track {
	tr := NewTrack()
	tr.AddTempo(0, 120)
	return tr
}

func TestTappableWithinThreshold(t *testing.T) {
	tr := newTappableTrack()
	first := tr.AddNote(1000, Note{Fret: 0})
	second := tr.AddNote(1000+msForTicks(160), Note{Fret: 1})
	tr.Update()

	if tr.Note(first).Tappable {
		t.Log("first note of a track can never be tappable")
		t.Fail()
	}
	if !tr.Note(second).Tappable {
		t.Log("note 160 ticks after a single note should be tappable")
		t.Fail()
	}
}

func TestTappableBeyondThreshold(t *testing.T) {
	tr := newTappableTrack()
	tr.AddNote(1000, Note{Fret: 0})
	second := tr.AddNote(1000+msForTicks(162), Note{Fret: 1})
	tr.Update()

	if tr.Note(second).Tappable {
		t.Log("note 162 ticks out should not be tappable")
		t.Fail()
	}
}

func TestTappableSameFret(t *testing.T) {
	tr := newTappableTrack()
	tr.AddNote(1000, Note{Fret: 2})
	second := tr.AddNote(1000+msForTicks(100), Note{Fret: 2})
	tr.Update()

	if tr.Note(second).Tappable {
		t.Log("same fret repeat should not be tappable")
		t.Fail()
	}
}

func TestTappableAfterChord(t *testing.T) {
	tr := newTappableTrack()
	tr.AddNote(1000, Note{Fret: 0})
	tr.AddNote(1000, Note{Fret: 2})
	next := tr.AddNote(1000+msForTicks(100), Note{Fret: 1})
	tr.Update()

	if tr.Note(next).Tappable {
		t.Log("a chord cannot grant tappability")
		t.Fail()
	}
}

func TestTappableChordGroup(t *testing.T) {
	tr := newTappableTrack()
	tr.AddNote(1000, Note{Fret: 0})
	a := tr.AddNote(1000+msForTicks(100), Note{Fret: 1})
	b := tr.AddNote(1000+msForTicks(100), Note{Fret: 3})
	tr.Update()

	if !tr.Note(a).Tappable || !tr.Note(b).Tappable {
		t.Log("whole chord group after a single note should be tappable")
		t.Fail()
	}
}

func TestTappableChordSharingPreviousFret(t *testing.T) {
	tr := newTappableTrack()
	tr.AddNote(1000, Note{Fret: 1})
	a := tr.AddNote(1000+msForTicks(100), Note{Fret: 1})
	b := tr.AddNote(1000+msForTicks(100), Note{Fret: 3})
	tr.Update()

	if tr.Note(a).Tappable || tr.Note(b).Tappable {
		t.Log("group sharing a fret with its predecessor is not tappable")
		t.Fail()
	}
}

func TestSustainDelaysTappableWindow(t *testing.T) {
	tr := newTappableTrack()
	// The 200ms sustain pushes the note end 192 ticks forward, so even a
	// 300 tick gap from the start is within threshold of the end.
	tr.AddNote(1000, Note{Fret: 0, Length: msForTicks(192)})
	second := tr.AddNote(1000+msForTicks(300), Note{Fret: 1})
	tr.Update()

	if !tr.Note(second).Tappable {
		t.Log("gap should be measured from the previous note end")
		t.Fail()
	}
}

func TestUpdateOnEmptyTrack(t *testing.T) {
	tr := NewTrack()
	tr.Update()
}
