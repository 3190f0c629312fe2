package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/maurirope/fretsonfire/internal/config"
	"github.com/maurirope/fretsonfire/internal/guitar"
	"github.com/maurirope/fretsonfire/internal/input"
	"github.com/maurirope/fretsonfire/internal/parser"
	"github.com/maurirope/fretsonfire/internal/render"
	"github.com/maurirope/fretsonfire/internal/score"
	"github.com/maurirope/fretsonfire/internal/song"
	"github.com/maurirope/fretsonfire/internal/theme"
)

type Program struct {
	Parser   parser.Parser
	Scorer   score.Scorer
	Renderer render.Renderer
	Theme    theme.Theme

	collector *input.Collector

	song   *song.Song
	guitar *guitar.Guitar

	audioFile   string
	lastNoteEnd float64

	columns, rows int
	hitRow        int
	fretCols      [input.NumFrets]int
	sideCol       int

	marginBpm   float64
	totalScore  int64
	streak      int64
	bestStreak  int64
	hitCount    int
	missCount   int
	missCounted map[song.TimedEvent]bool
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Scorer = &score.DefaultScorer{}
	p.Renderer = &render.DefaultRenderer{}
	p.Theme = &theme.DefaultTheme{}
	p.missCounted = make(map[song.TimedEvent]bool)

	if err := filepath.Walk(*config.Directory, func(pth string, info os.FileInfo, err error) error {
		if nil != err || info.IsDir() {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".ogg", ".mp3":
			p.audioFile = pth
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}

	s, err := p.Parser.Parse(*config.Directory)
	if nil != err {
		return err
	}
	p.song = s

	available := s.AvailableDifficulties()
	if len(available) == 0 {
		return errors.New("note file contains no playable notes")
	}
	s.Difficulty = available[0].ID
	for _, d := range available {
		if d.ID == *config.Difficulty {
			s.Difficulty = d.ID
		}
	}

	for _, e := range s.Track().AllEvents() {
		if end := e.Time + s.Track().Length(e.Ref); end > p.lastNoteEnd {
			p.lastNoteEnd = end
		}
	}

	p.guitar = guitar.New(s)
	if s.Bpm > 0 {
		p.guitar.SetBpm(s.Bpm)
		p.marginBpm = s.Bpm
	}

	if err := p.Scorer.Init(); nil != err {
		return err
	}

	p.collector, err = input.NewCollector(config.FretKeys(), config.PickKey())
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}

	return nil
}

func (p *Program) Deinit() {
	if nil != p.Scorer {
		p.Scorer.Deinit()
	}
	if nil != p.collector {
		p.collector.Close()
	}
}

func (p *Program) breakStreak() {
	if p.streak > p.bestStreak {
		p.bestStreak = p.streak
	}
	p.streak = 0
}

func (p *Program) multiplier() int64 {
	m := 1 + p.streak/10
	if m > 4 {
		m = 4
	}
	return m
}

func (p *Program) startAudio() error {
	if p.audioFile == "" {
		return nil
	}
	f, err := os.Open(p.audioFile)
	if nil != err {
		return err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	if path.Ext(p.audioFile) == ".ogg" {
		streamer, format, err = vorbis.Decode(f)
	} else {
		streamer, format, err = mp3.Decode(f)
	}
	if nil != err {
		return err
	}
	sr := beep.SampleRate(math.Round(float64(format.SampleRate) * *config.Rate))
	if err := speaker.Init(sr, format.SampleRate.N(time.Second/60)); nil != err {
		return err
	}
	go func() {
		time.Sleep(*config.Delay)
		speaker.Play(streamer)
	}()
	return nil
}

func (p *Program) Run() error {
	if err := p.Renderer.Init(); nil != err {
		return err
	}
	defer p.Renderer.Deinit()

	columns, rows, err := p.Renderer.Size()
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	p.columns, p.rows = columns, rows
	p.hitRow = rows - int(*config.BarRow)
	mc := columns >> 1
	for i := range p.fretCols {
		p.fretCols[i] = mc + (i-2)*4
	}
	p.sideCol = p.fretCols[0] - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}

	if err := p.startAudio(); nil != err {
		return err
	}

	p.song.Play()
	p.Renderer.RenderLoop(*config.Delay, p.frame)
	p.song.Stop()

	if p.streak > p.bestStreak {
		p.bestStreak = p.streak
	}
	p.Scorer.Save(p.song.Hash, p.song.Difficulty, score.Record{
		Score:  p.totalScore,
		Streak: p.bestStreak,
		Name:   *config.Name,
		Rate:   *config.Rate,
	})
	return nil
}

// frame is one logic tick: read input, match it against the timeline at the
// current playback position, then redraw.
func (p *Program) frame(now time.Time, duration time.Duration) bool {
	pos := (float64(duration.Milliseconds()) + *config.Offset + p.song.Info.Delay) * *config.Rate

	if pos-5000 > p.lastNoteEnd {
		p.song.Fadeout()
		return false
	}

	frame := p.collector.Poll()
	if frame.Quit {
		return false
	}

	if !p.guitar.Run(pos) {
		p.guitar.EndPick(pos)
		p.breakStreak()
	}

	// Margins follow the true tempo at the playback head, not the smoothed
	// scroll tempo.
	if target := p.guitar.TargetBpm(); target > 0 && target != p.marginBpm {
		p.guitar.SetBpm(target)
		p.marginBpm = target
	}

	for i := 0; i < frame.Picks; i++ {
		if p.guitar.StartPick(pos, frame.Controls) {
			hit := p.guitar.PlayedNotes()
			p.streak++
			p.hitCount += len(hit)
			p.totalScore += 50 * int64(len(hit)) * p.multiplier()
		} else {
			p.breakStreak()
		}
	}
	for i := 0; i < frame.Releases; i++ {
		sustain := p.guitar.GetPickLength(pos)
		if p.guitar.EndPick(pos) {
			p.totalScore += int64(sustain / 4)
		} else {
			p.breakStreak()
		}
	}

	missed := p.guitar.GetMissedNotes(pos)
	if len(missed) > 0 {
		p.breakStreak()
		for _, e := range missed {
			if !p.missCounted[e] {
				p.missCounted[e] = true
				p.missCount++
				col := p.fretCols[p.song.Track().Note(e.Ref).Fret]
				p.Renderer.AddDecoration(p.hitRow, col, "\033[1;31m⨯\033[0m", 30)
			}
		}
	}

	p.render(pos, frame.Controls)
	return true
}

func (p *Program) render(pos float64, controls input.Controls) {
	track := p.song.Track()
	period := 60000.0 / p.guitar.CurrentBpm()
	boardMs := period * 5.0
	msPerRow := boardMs / float64(*config.BoardRows)
	topRow := p.hitRow - int(*config.BoardRows)
	if topRow < 1 {
		topRow = 1
	}

	// Clear the playing field
	for row := topRow; row < p.hitRow; row++ {
		for _, col := range p.fretCols {
			p.Renderer.Fill(row, col, " ")
		}
	}

	// Hit bar, lit for held frets
	for i, col := range p.fretCols {
		if controls.Held(i) {
			p.Renderer.FillColor(p.hitRow, col, theme.FretColor(i), "█")
		} else {
			p.Renderer.Fill(p.hitRow, col, p.Theme.RenderHitField(i))
		}
	}

	for _, e := range track.GetEvents(pos-period, pos+boardMs) {
		if e.Ref.Kind != song.KindNote || track.Played(e.Ref) {
			continue
		}
		note := track.Note(e.Ref)
		col := p.fretCols[note.Fret]
		row := p.hitRow - int((e.Time-pos)/msPerRow)
		for t := e.Time + msPerRow; t < e.Time+note.Length; t += msPerRow {
			tailRow := p.hitRow - int((t-pos)/msPerRow)
			if tailRow > topRow && tailRow < p.hitRow {
				p.Renderer.Fill(tailRow, col, p.Theme.RenderSustain(int(note.Fret)))
			}
		}
		if row > topRow && row < p.hitRow {
			p.Renderer.Fill(row, col, p.Theme.RenderNote(int(note.Fret), note.Tappable, note.Special))
		}
	}

	p.Renderer.Fill(2, p.sideCol, fmt.Sprintf("%v - %v", p.song.Info.Artist, p.song.Info.Name))
	p.Renderer.Fill(4, p.sideCol, fmt.Sprintf("     Score:  %8v", p.totalScore))
	p.Renderer.Fill(5, p.sideCol, fmt.Sprintf("    Streak:  %8v", p.streak))
	p.Renderer.Fill(6, p.sideCol, fmt.Sprintf("Multiplier:  %8v", p.multiplier()))
	p.Renderer.Fill(7, p.sideCol, fmt.Sprintf("      Hits:  %8v", p.hitCount))
	p.Renderer.Fill(8, p.sideCol, fmt.Sprintf("    Misses:  %8v", p.missCount))
	p.Renderer.Fill(9, p.sideCol, fmt.Sprintf("       BPM:  %8.1f", p.guitar.CurrentBpm()))
}
