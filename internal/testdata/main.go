package testdata

import (
	"github.com/maurirope/fretsonfire/internal/song"
)

// GetSong builds a small canned song: 120 bpm, a riff on the Amazing track
// with a sustain, a chord and a tap candidate.
func GetSong() *song.Song {
	s := song.New()
	s.SetBpm(120)
	for _, t := range s.Tracks {
		t.AddTempo(0, 120)
	}

	t := s.Tracks[song.AmazingDifficulty]
	t.AddNote(1000, song.Note{Fret: 2, Length: 200})
	t.AddNote(2000, song.Note{Fret: 1})
	t.AddNote(2000, song.Note{Fret: 3})
	t.AddNote(3000, song.Note{Fret: 0, Length: 500, Special: true})

	s.Update()
	return s
}
