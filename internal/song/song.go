package song

// Difficulty ids, hardest first. Each one owns a track and a MIDI pitch band.
const (
	AmazingDifficulty = iota
	MediumDifficulty
	EasyDifficulty
	SupaeasyDifficulty
)

type Difficulty struct {
	ID   int
	Text string
}

var Difficulties = []Difficulty{
	{AmazingDifficulty, "Amazing"},
	{MediumDifficulty, "Medium"},
	{EasyDifficulty, "Easy"},
	{SupaeasyDifficulty, "Supaeasy"},
}

// Info is the song.ini metadata that matters to the engine.
type Info struct {
	Name   string
	Artist string
	Delay  float64 // ms added to the playback position
}

// Song owns one track per difficulty plus the timing state shared by all of
// them. The selected difficulty decides which track is active for matching.
type Song struct {
	Info       Info
	Tracks     []*Track
	Difficulty int
	Bpm        float64 // seeded by the first tempo event
	Period     float64 // ms per beat
	Hash       string  // content hash of the note file

	playing bool
}

func New() *Song {
	tracks := make([]*Track, len(Difficulties))
	for i := range tracks {
		tracks[i] = NewTrack()
	}
	return &Song{Tracks: tracks, Difficulty: AmazingDifficulty}
}

func (s *Song) SetBpm(bpm float64) {
	s.Bpm = bpm
	s.Period = 60000.0 / bpm
}

// Track returns the track for the selected difficulty.
func (s *Song) Track() *Track {
	return s.Tracks[s.Difficulty]
}

// Update runs the tappability pass on every track. Call once after loading.
func (s *Song) Update() {
	for _, t := range s.Tracks {
		t.Update()
	}
}

func (s *Song) Play() {
	s.playing = true
}

// Stop ends playback and clears the played state of every note.
func (s *Song) Stop() {
	for _, t := range s.Tracks {
		t.Reset()
	}
	s.playing = false
}

// Fadeout is Stop for the song-over case; the audio tail is the caller's
// business, the note state reset is ours.
func (s *Song) Fadeout() {
	for _, t := range s.Tracks {
		t.Reset()
	}
	s.playing = false
}

func (s *Song) Playing() bool {
	return s.playing
}

// AvailableDifficulties reports which difficulties actually carry notes.
func (s *Song) AvailableDifficulties() []Difficulty {
	var out []Difficulty
	for _, d := range Difficulties {
		if s.Tracks[d.ID].NoteCount() > 0 {
			out = append(out, d)
		}
	}
	return out
}

// NoteMapping locates a MIDI pitch on the fretboard.
type NoteMapping struct {
	Difficulty int
	Fret       uint8
}

// noteMap assigns five contiguous pitches to each difficulty band.
var noteMap = map[uint8]NoteMapping{
	0x60: {AmazingDifficulty, 0},
	0x61: {AmazingDifficulty, 1},
	0x62: {AmazingDifficulty, 2},
	0x63: {AmazingDifficulty, 3},
	0x64: {AmazingDifficulty, 4},
	0x54: {MediumDifficulty, 0},
	0x55: {MediumDifficulty, 1},
	0x56: {MediumDifficulty, 2},
	0x57: {MediumDifficulty, 3},
	0x58: {MediumDifficulty, 4},
	0x48: {EasyDifficulty, 0},
	0x49: {EasyDifficulty, 1},
	0x4a: {EasyDifficulty, 2},
	0x4b: {EasyDifficulty, 3},
	0x4c: {EasyDifficulty, 4},
	0x3c: {SupaeasyDifficulty, 0},
	0x3d: {SupaeasyDifficulty, 1},
	0x3e: {SupaeasyDifficulty, 2},
	0x3f: {SupaeasyDifficulty, 3},
	0x40: {SupaeasyDifficulty, 4},
}

// MapPitch returns where a MIDI pitch lands on the fretboard, if anywhere.
func MapPitch(pitch uint8) (NoteMapping, bool) {
	m, ok := noteMap[pitch]
	return m, ok
}
