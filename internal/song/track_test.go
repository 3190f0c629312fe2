package song

import (
	"math/rand"
	"testing"
)

func TestGetEventsReturnsInsertedNote(t *testing.T) {
	tr := NewTrack()
	ref := tr.AddNote(1000, Note{Fret: 2, Length: 200})

	events := tr.GetEvents(900, 1100)
	if len(events) != 1 {
		t.Log("events", events)
		t.Fail()
	}
	if events[0].Ref != ref || events[0].Time != 1000 {
		t.Log("event", events[0])
		t.Fail()
	}
}

func TestGetEventsDeduplicatesSpanningEvents(t *testing.T) {
	tr := NewTrack()
	// Spans buckets 0..8
	tr.AddNote(0, Note{Fret: 0, Length: 400})

	events := tr.GetEvents(0, 400)
	if len(events) != 1 {
		t.Log("spanning event returned more than once", events)
		t.Fail()
	}
}

func TestGetEventsDeduplicatesFractionalTimes(t *testing.T) {
	tr := NewTrack()
	// A start time that is not exactly representable relative to its bucket
	// boundaries must still come back once across the whole span.
	ref := tr.AddNote(214.55447819629441, Note{Fret: 0, Length: 291.34})

	events := tr.GetEvents(0, 600)
	if len(events) != 1 {
		t.Log("events", events)
		t.Fail()
		return
	}
	if events[0].Ref != ref || events[0].Time != 214.55447819629441 {
		t.Log("event", events[0])
		t.Fail()
	}
}

func TestGetEventsSameBucketRangeIsEmpty(t *testing.T) {
	tr := NewTrack()
	tr.AddNote(1000, Note{Fret: 0, Length: 5000})

	// Both endpoints land in bucket 70, which the exclusive upper bound
	// leaves untouched.
	if events := tr.GetEvents(3520, 3540); len(events) != 0 {
		t.Log("events", events)
		t.Fail()
	}
}

func TestGetEventsSwapsInvertedRange(t *testing.T) {
	tr := NewTrack()
	tr.AddNote(1000, Note{Fret: 1})

	forward := tr.GetEvents(900, 1100)
	backward := tr.GetEvents(1100, 900)
	if len(forward) != len(backward) || len(forward) != 1 {
		t.Log("forward", forward, "backward", backward)
		t.Fail()
	}
}

func TestZeroLengthEventOccupiesOneBucket(t *testing.T) {
	tr := NewTrack()
	tr.AddNote(75, Note{Fret: 0})

	if n := len(tr.buckets[1]); n != 1 {
		t.Log("bucket 1 size", n)
		t.Fail()
	}
	if n := len(tr.buckets[0]) + len(tr.buckets[2]); n != 0 {
		t.Log("note leaked into neighbouring buckets")
		t.Fail()
	}
}

func TestFarFutureInsertGrowsInBatches(t *testing.T) {
	tr := NewTrack()
	tr.AddNote(0, Note{Fret: 0})
	tr.AddNote(1e6, Note{Fret: 1})

	events := tr.GetEvents(1e6-100, 1e6+100)
	if len(events) != 1 || events[0].Time != 1e6 {
		t.Log("events", events)
		t.Fail()
	}
}

// Cross-check getEvents against a naive scan over every inserted event for
// randomized event sets. An event must come back exactly when its bucket
// span intersects the queried bucket range.
func TestGetEventsMatchesNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		tr := NewTrack()
		type inserted struct {
			time   float64
			length float64
			ref    EventRef
		}
		events := make([]inserted, 0, 64)
		for i := 0; i < 64; i++ {
			time := rng.Float64() * 10000
			length := rng.Float64() * 500
			ref := tr.AddNote(time, Note{Fret: uint8(i % 5), Length: length})
			events = append(events, inserted{time, length, ref})
		}

		for q := 0; q < 20; q++ {
			start := rng.Float64() * 11000
			end := rng.Float64() * 11000
			got := tr.GetEvents(start, end)

			t1 := int(start / Granularity)
			t2 := int(end / Granularity)
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			// The upper bucket bound is exclusive, so a query starting and
			// ending in the same bucket touches no bucket at all.
			expected := make(map[EventRef]bool)
			for _, e := range events {
				b1 := int(e.time / Granularity)
				b2 := int((e.time + e.length) / Granularity)
				if b2 >= t1 && b1 < t2 {
					expected[e.ref] = true
				}
			}
			if t1 == t2 {
				expected = map[EventRef]bool{}
			}

			if len(got) != len(expected) {
				t.Log("round", round, "query", start, end)
				t.Log("got", len(got), "expected", len(expected))
				t.Fail()
				continue
			}
			for _, e := range got {
				if !expected[e.Ref] {
					t.Log("unexpected event", e)
					t.Fail()
				}
			}
		}
	}
}

func TestResetClearsPlayedState(t *testing.T) {
	tr := NewTrack()
	a := tr.AddNote(100, Note{Fret: 0})
	b := tr.AddNote(200, Note{Fret: 1})

	tr.SetPlayed(a)
	tr.SetPlayed(b)
	if !tr.Played(a) || !tr.Played(b) {
		t.Fail()
	}

	tr.Reset()
	if tr.Played(a) || tr.Played(b) {
		t.Log("played state survived reset")
		t.Fail()
	}
}

func TestRemoveEvent(t *testing.T) {
	tr := NewTrack()
	keep := tr.AddNote(100, Note{Fret: 0})
	drop := tr.AddNote(100, Note{Fret: 1, Length: 300})

	tr.RemoveEvent(100, drop)

	events := tr.GetEvents(0, 500)
	if len(events) != 1 || events[0].Ref != keep {
		t.Log("events", events)
		t.Fail()
	}
	if len(tr.AllEvents()) != 1 {
		t.Log("allEvents", tr.AllEvents())
		t.Fail()
	}
}
