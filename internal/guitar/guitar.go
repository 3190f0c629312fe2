package guitar

import (
	"github.com/maurirope/fretsonfire/internal/input"
	"github.com/maurirope/fretsonfire/internal/song"
)

const (
	// beatsPerBoard is how far ahead of the playback head the scroll area
	// reaches, in beats. The tempo scan uses the same horizon.
	beatsPerBoard = 5.0
	chordEpsilon  = 1e-3
)

// Guitar matches player input against the active track of a song. It owns
// the hit window, the currently sustained notes, and the cosmetic scroll-bpm
// interpolation. All methods run on the game logic goroutine.
type Guitar struct {
	song *song.Song

	bpm    float64
	window HitWindow

	playedNotes  []song.TimedEvent
	pickStartPos float64

	currentBpm    float64
	targetBpm     float64
	lastBpmChange float64
	baseBeat      float64
}

func New(s *song.Song) *Guitar {
	g := &Guitar{
		song:          s,
		currentBpm:    50.0,
		lastBpmChange: -1.0,
	}
	g.targetBpm = g.currentBpm
	g.SetBpm(g.currentBpm)
	return g
}

// SetBpm recomputes the hit window for a new tempo and restarts the beat
// accumulator.
func (g *Guitar) SetBpm(bpm float64) {
	g.bpm = bpm
	g.window = NewHitWindow(bpm)
	g.baseBeat = 0.0
}

func (g *Guitar) Window() HitWindow {
	return g.window
}

// GetRequiredNotes returns the unplayed chord group due soonest within the
// hit window around pos, or nil when nothing is due.
func (g *Guitar) GetRequiredNotes(pos float64) []song.TimedEvent {
	track := g.song.Track()
	var notes []song.TimedEvent
	for _, e := range track.GetEvents(pos-g.window.Late, pos+g.window.Early) {
		if e.Ref.Kind != song.KindNote || track.Played(e.Ref) {
			continue
		}
		// Bucket queries over-return, filter to the exact window
		if e.Time < pos-g.window.Late || e.Time > pos+g.window.Early {
			continue
		}
		notes = append(notes, e)
	}
	if len(notes) == 0 {
		return nil
	}

	earliest := notes[0].Time
	for _, e := range notes[1:] {
		if e.Time < earliest {
			earliest = e.Time
		}
	}
	chord := notes[:0]
	for _, e := range notes {
		if e.Time-earliest <= chordEpsilon {
			chord = append(chord, e)
		}
	}
	return chord
}

// GetMissedNotes returns unplayed notes whose hit window has fully elapsed,
// i.e. notes between one and two late margins behind pos.
func (g *Guitar) GetMissedNotes(pos float64) []song.TimedEvent {
	track := g.song.Track()
	m1 := g.window.Late
	m2 := g.window.Late * 2

	var notes []song.TimedEvent
	for _, e := range track.GetEvents(pos-m1, pos-m2) {
		if e.Ref.Kind != song.KindNote || track.Played(e.Ref) {
			continue
		}
		if e.Time < pos-m2 || e.Time > pos-m1 {
			continue
		}
		notes = append(notes, e)
	}
	return notes
}

// ControlsMatchNotes reports whether the held frets satisfy the given notes.
// Every required fret must be held. An extra held fret is tolerated only
// when it sits below every required fret; anything else is a mismatch.
// No notes means nothing to strum, which never matches.
func (g *Guitar) ControlsMatchNotes(controls input.Controls, notes []song.TimedEvent) bool {
	if len(notes) == 0 {
		return false
	}
	track := g.song.Track()

	chords := make(map[float64][]uint8)
	for _, e := range notes {
		chords[e.Time] = append(chords[e.Time], track.Note(e.Ref).Fret)
	}

	result := true
	for _, required := range chords {
		lowest := required[0]
		for _, fret := range required[1:] {
			if fret < lowest {
				lowest = fret
			}
		}
		for n := 0; n < input.NumFrets; n++ {
			isRequired := false
			for _, fret := range required {
				if int(fret) == n {
					isRequired = true
					break
				}
			}
			if isRequired && !controls.Held(n) {
				result = false
				break
			}
			if !isRequired && controls.Held(n) && n >= int(lowest) {
				result = false
				break
			}
		}
	}
	return result
}

// AreNotesTappable reports whether every note of the group is tappable.
// An empty group is not.
func (g *Guitar) AreNotesTappable(notes []song.TimedEvent) bool {
	if len(notes) == 0 {
		return false
	}
	track := g.song.Track()
	for _, e := range notes {
		if !track.Note(e.Ref).Tappable {
			return false
		}
	}
	return true
}

// StartPick attempts to strum at pos. On a match every required note is
// committed as played and becomes the sustained set; on a mismatch the
// sustained set is cleared. The result is a normal outcome, not an error.
func (g *Guitar) StartPick(pos float64, controls input.Controls) bool {
	g.playedNotes = nil
	notes := g.GetRequiredNotes(pos)
	if !g.ControlsMatchNotes(controls, notes) {
		return false
	}

	track := g.song.Track()
	g.pickStartPos = pos
	for _, e := range notes {
		if e.Time > g.pickStartPos {
			g.pickStartPos = e.Time
		}
		track.SetPlayed(e.Ref)
	}
	g.playedNotes = notes
	return true
}

// EndPick releases the current strum. Returns false when a sustained note
// still had more than the release margin left, breaking the streak.
func (g *Guitar) EndPick(pos float64) bool {
	track := g.song.Track()
	for _, e := range g.playedNotes {
		if e.Time+track.Note(e.Ref).Length > pos+g.window.Release {
			g.playedNotes = nil
			return false
		}
	}
	g.playedNotes = nil
	return true
}

// GetPickLength returns how long the current notes have been held, capped by
// the shortest sustained note. Zero when nothing is held.
func (g *Guitar) GetPickLength(pos float64) float64 {
	if len(g.playedNotes) == 0 {
		return 0.0
	}
	track := g.song.Track()
	length := pos - g.pickStartPos
	for _, e := range g.playedNotes {
		if l := track.Note(e.Ref).Length; l < length {
			length = l
		}
	}
	return length
}

// PlayedNotes returns the currently sustained notes.
func (g *Guitar) PlayedNotes() []song.TimedEvent {
	return g.playedNotes
}

// CurrentBpm is the smoothed scroll tempo. Cosmetic only; the matcher
// margins come from SetBpm.
func (g *Guitar) CurrentBpm() float64 {
	return g.currentBpm
}

func (g *Guitar) TargetBpm() float64 {
	return g.targetBpm
}

// BaseBeat anchors beat-space projection across tempo changes.
func (g *Guitar) BaseBeat() float64 {
	return g.baseBeat
}

// Run advances per-frame state: picks up tempo changes near the playback
// head, eases the scroll bpm toward the target, and reports whether every
// sustained note is still within its length. A false return means a hold
// outlived its note without a release.
func (g *Guitar) Run(pos float64) bool {
	track := g.song.Track()
	period := 60000.0 / g.currentBpm

	for _, e := range track.GetEvents(pos-period*2, pos+period*beatsPerBoard) {
		if e.Ref.Kind != song.KindTempo {
			continue
		}
		if (pos-e.Time > period || g.lastBpmChange < 0) && e.Time > g.lastBpmChange {
			g.baseBeat += (e.Time - g.lastBpmChange) / period
			g.targetBpm = track.Tempo(e.Ref).Bpm
			g.lastBpmChange = e.Time
		}
	}

	for _, e := range g.playedNotes {
		if pos > e.Time+track.Note(e.Ref).Length {
			return false
		}
	}

	g.currentBpm += (g.targetBpm - g.currentBpm) * .03
	return true
}
