package song

// Granularity is the bucket width in milliseconds for event indexing.
const Granularity = 50.0

type bucketEntry struct {
	time float64 // absolute start time in ms
	ref  EventRef
}

// Track holds every event of one difficulty level. Events live in per-kind
// arenas and are addressed by EventRef; the bucket index and the insertion
// order list store refs only. Range queries cost O(events touching the
// queried buckets).
type Track struct {
	notes    []Note
	tempos   []Tempo
	texts    []TextEvent
	pictures []PictureEvent

	played bitset // indexed by note id

	buckets   [][]bucketEntry
	allEvents []TimedEvent
}

func NewTrack() *Track {
	return &Track{}
}

func (t *Track) AddNote(time float64, n Note) EventRef {
	ref := EventRef{Kind: KindNote, ID: len(t.notes)}
	t.notes = append(t.notes, n)
	t.addEvent(time, ref)
	return ref
}

func (t *Track) AddTempo(time float64, bpm float64) EventRef {
	ref := EventRef{Kind: KindTempo, ID: len(t.tempos)}
	t.tempos = append(t.tempos, Tempo{Bpm: bpm})
	t.addEvent(time, ref)
	return ref
}

func (t *Track) AddText(time float64, e TextEvent) EventRef {
	ref := EventRef{Kind: KindText, ID: len(t.texts)}
	t.texts = append(t.texts, e)
	t.addEvent(time, ref)
	return ref
}

func (t *Track) AddPicture(time float64, e PictureEvent) EventRef {
	ref := EventRef{Kind: KindPicture, ID: len(t.pictures)}
	t.pictures = append(t.pictures, e)
	t.addEvent(time, ref)
	return ref
}

func (t *Track) Note(ref EventRef) *Note {
	return &t.notes[ref.ID]
}

func (t *Track) Tempo(ref EventRef) *Tempo {
	return &t.tempos[ref.ID]
}

func (t *Track) Text(ref EventRef) *TextEvent {
	return &t.texts[ref.ID]
}

func (t *Track) Picture(ref EventRef) *PictureEvent {
	return &t.pictures[ref.ID]
}

// Length returns the duration of the referenced event in milliseconds.
func (t *Track) Length(ref EventRef) float64 {
	switch ref.Kind {
	case KindNote:
		return t.notes[ref.ID].Length
	case KindText:
		return t.texts[ref.ID].Length
	case KindPicture:
		return t.pictures[ref.ID].Length
	}
	return 0
}

func (t *Track) Played(ref EventRef) bool {
	return ref.Kind == KindNote && t.played.get(ref.ID)
}

func (t *Track) SetPlayed(ref EventRef) {
	if ref.Kind == KindNote {
		t.played.set(ref.ID)
	}
}

// addEvent indexes the event into every bucket its [time, time+length] span
// overlaps and records it in the insertion order list.
func (t *Track) addEvent(time float64, ref EventRef) {
	if time < 0 {
		time = 0
	}
	first := int(time / Granularity)
	last := int((time + t.Length(ref)) / Granularity)
	if len(t.buckets) < last+1 {
		// Batch growth, so a single far-future event does not cost one
		// allocation per missing bucket.
		grow := last + 1 - len(t.buckets)
		if grow < len(t.buckets) {
			grow = len(t.buckets)
		}
		if grow < 8 {
			grow = 8
		}
		t.buckets = append(t.buckets, make([][]bucketEntry, grow)...)
	}
	for b := first; b <= last; b++ {
		t.buckets[b] = append(t.buckets[b], bucketEntry{time: time, ref: ref})
	}
	t.allEvents = append(t.allEvents, TimedEvent{Time: time, Ref: ref})
}

// RemoveEvent unindexes an event previously added at time. Editing tool
// counterpart of addEvent; gameplay never removes events.
func (t *Track) RemoveEvent(time float64, ref EventRef) {
	first := int(time / Granularity)
	last := int((time + t.Length(ref)) / Granularity)
	for b := first; b <= last && b < len(t.buckets); b++ {
		entries := t.buckets[b]
		for i, e := range entries {
			if e.ref == ref && e.time == time {
				t.buckets[b] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
	}
	for i, e := range t.allEvents {
		if e.Ref == ref && e.Time == time {
			t.allEvents = append(t.allEvents[:i], t.allEvents[i+1:]...)
			break
		}
	}
}

// GetEvents returns every event active inside [startTime, endTime),
// deduplicated. An event spanning several queried buckets comes back once.
// An inverted range is swapped, never an error.
func (t *Track) GetEvents(startTime, endTime float64) []TimedEvent {
	t1 := int(startTime / Granularity)
	t2 := int(endTime / Granularity)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 < 0 {
		t1 = 0
	}
	if t2 > len(t.buckets) {
		t2 = len(t.buckets)
	}

	// Refs are unique per insertion, so deduplication of events spanning
	// several queried buckets keys on the ref alone.
	var events []TimedEvent
	seen := make(map[EventRef]struct{})
	for b := t1; b < t2; b++ {
		for _, e := range t.buckets[b] {
			if _, ok := seen[e.ref]; ok {
				continue
			}
			seen[e.ref] = struct{}{}
			events = append(events, TimedEvent{Time: e.time, Ref: e.ref})
		}
	}
	return events
}

// AllEvents returns the (time, event) list in insertion order.
func (t *Track) AllEvents() []TimedEvent {
	return t.allEvents
}

// NoteCount returns the number of notes on this track.
func (t *Track) NoteCount() int {
	return len(t.notes)
}

// Reset clears the played state of every note, as on song restart.
func (t *Track) Reset() {
	t.played.clear()
}
