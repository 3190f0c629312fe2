package song

import "sort"

const (
	tapTicksPerBeat  = 480
	tapTickThreshold = 161
	chordEpsilon     = 1e-3
)

// noteGroup is a chord: every note starting at the same tick.
type noteGroup struct {
	startTicks float64
	// endTicks is only meaningful for single-note groups, the only kind
	// that can grant tappability to its successor.
	endTicks float64
	refs     []EventRef
}

// Update marks which notes are tappable (hammer-on/pull-off). The rules:
//
//  1. Not the first note group of the track
//  2. Previous group a single note, not a chord
//  3. That note on a different fret than every note of this group
//  4. That note ends at most 161 ticks before this group starts
//
// Grouping needs look-ahead over the whole track, so this runs once after
// all notes are loaded rather than while the MIDI stream comes in.
func (t *Track) Update() {
	if len(t.allEvents) == 0 {
		return
	}

	events := make([]TimedEvent, len(t.allEvents))
	copy(events, t.allEvents)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})

	bpm := 0.0
	beatsToTicks := func(time float64) float64 {
		return (time * bpm * tapTicksPerBeat) / 60000.0
	}

	// Collect chord groups, tracking the tempo so times convert to ticks.
	var groups []noteGroup
	for _, e := range events {
		switch e.Ref.Kind {
		case KindTempo:
			bpm = t.tempos[e.Ref.ID].Bpm
		case KindNote:
			// All notes start out not tappable
			note := &t.notes[e.Ref.ID]
			note.Tappable = false

			ticks := beatsToTicks(e.Time)
			if len(groups) > 0 {
				last := &groups[len(groups)-1]
				if ticks < last.startTicks+chordEpsilon {
					last.refs = append(last.refs, e.Ref)
					continue
				}
			}
			groups = append(groups, noteGroup{
				startTicks: ticks,
				endTicks:   ticks + beatsToTicks(note.Length),
				refs:       []EventRef{e.Ref},
			})
		}
	}

	// The first group has no predecessor and is never tappable.
	for i := 1; i < len(groups); i++ {
		prev, cur := groups[i-1], groups[i]
		if len(prev.refs) != 1 {
			continue
		}
		if cur.startTicks-prev.endTicks > tapTickThreshold {
			continue
		}
		prevFret := t.notes[prev.refs[0].ID].Fret
		same := false
		for _, ref := range cur.refs {
			if t.notes[ref.ID].Fret == prevFret {
				same = true
				break
			}
		}
		if same {
			continue
		}
		for _, ref := range cur.refs {
			t.notes[ref.ID].Tappable = true
		}
	}
}
