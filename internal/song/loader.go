package song

import "log"

// Loader consumes an already decoded MIDI event stream, tagged with absolute
// tick positions, and fills in the song's note tracks. Byte-level parsing
// stays with the caller; the loader only sees header/tempo/note callbacks.
type Loader struct {
	song     *Song
	tempoMap *TempoMap
	held     map[heldKey]float64 // start time of sounding notes, ms
	velocity map[uint8]uint8
}

type heldKey struct {
	track   int
	channel uint8
	pitch   uint8
}

func NewLoader(s *Song) *Loader {
	return &Loader{
		song:     s,
		tempoMap: NewTempoMap(480),
		held:     make(map[heldKey]float64),
		velocity: make(map[uint8]uint8),
	}
}

// TempoMap exposes the accumulated tick-to-ms conversion state.
func (l *Loader) TempoMap() *TempoMap {
	return l.tempoMap
}

// Header records the tick resolution from the file header. Must be called
// before any tempo or note callback.
func (l *Loader) Header(ticksPerBeat int) {
	l.tempoMap.TicksPerBeat = ticksPerBeat
}

// Tempo records a tempo marker and places a Tempo event on every track.
// The first tempo also seeds the song-level bpm.
func (l *Loader) Tempo(tick int64, bpm float64) {
	l.tempoMap.AddMarker(tick, bpm)
	if l.song.Bpm == 0 {
		l.song.SetBpm(bpm)
	}
	time := l.tempoMap.TimeAt(tick)
	for _, t := range l.song.Tracks {
		t.AddTempo(time, bpm)
	}
}

// NoteOn starts a note. Only the first two MIDI tracks carry game notes.
func (l *Loader) NoteOn(track int, tick int64, channel, pitch, velocity uint8) {
	if track > 1 {
		return
	}
	l.velocity[pitch] = velocity
	l.held[heldKey{track, channel, pitch}] = l.tempoMap.TimeAt(tick)
}

// NoteOff finishes a note and commits it to the mapped difficulty track.
// An off without a matching on is logged and dropped.
func (l *Loader) NoteOff(track int, tick int64, channel, pitch uint8) {
	if track > 1 {
		return
	}
	key := heldKey{track, channel, pitch}
	start, ok := l.held[key]
	if !ok {
		log.Printf("midi note 0x%x on channel %d ending at tick %d was never started", pitch, channel, tick)
		return
	}
	delete(l.held, key)

	mapping, ok := noteMap[pitch]
	if !ok {
		// Pitch outside the fretboard bands, nothing to place.
		return
	}
	end := l.tempoMap.TimeAt(tick)
	l.song.Tracks[mapping.Difficulty].AddNote(start, Note{
		Fret:    mapping.Fret,
		Length:  end - start,
		Special: l.velocity[pitch] == 127,
	})
}
