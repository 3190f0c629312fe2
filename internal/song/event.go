package song

// EventKind discriminates the closed set of timeline event types.
type EventKind uint8

const (
	KindNote EventKind = iota
	KindTempo
	KindText
	KindPicture
)

// EventRef addresses an event inside a Track arena. Refs are stable for the
// lifetime of the track and safe to use as map keys.
type EventRef struct {
	Kind EventKind
	ID   int
}

// Note is a playable fret event. The played state lives in the owning
// track's bitset, not here, so refs can be shared freely.
type Note struct {
	Fret     uint8
	Length   float64 // ms
	Special  bool    // star power, MIDI velocity 127
	Tappable bool    // hammer-on/pull-off, set by Track.Update
}

// Tempo marks a bpm change point. Zero length.
type Tempo struct {
	Bpm float64
}

type TextEvent struct {
	Text   string
	Length float64
}

type PictureEvent struct {
	FileName string
	Length   float64
}

// TimedEvent pairs an absolute start time in milliseconds with an event ref.
type TimedEvent struct {
	Time float64
	Ref  EventRef
}
