package parser

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/maurirope/fretsonfire/internal/song"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultParser loads a song directory: notes.mid for the note tracks,
// song.ini for metadata and script.txt for text/picture events.
type DefaultParser struct{}

func (p *DefaultParser) Parse(directory string) (*song.Song, error) {
	s := song.New()

	if err := p.readInfo(filepath.Join(directory, "song.ini"), &s.Info); nil != err {
		return nil, err
	}

	noteFile := filepath.Join(directory, "notes.mid")
	data, err := os.ReadFile(noteFile)
	if nil != err {
		return nil, fmt.Errorf("unable to read note file: %w", err)
	}
	sum := sha256.Sum256(data)
	s.Hash = base64.StdEncoding.EncodeToString(sum[:])

	sm, err := smf.ReadFrom(bytes.NewReader(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse note file: %w", err)
	}

	loader := song.NewLoader(s)
	if mt, ok := sm.TimeFormat.(smf.MetricTicks); ok {
		loader.Header(int(mt))
	}

	// The conductor track is not guaranteed to come first, so collect the
	// tempo markers from every track and feed them in tick order before
	// any note lands on the timeline.
	type tempoChange struct {
		tick int64
		bpm  float64
	}
	var tempos []tempoChange
	for _, track := range sm.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				tempos = append(tempos, tempoChange{tick: absTicks, bpm: bpm})
			}
		}
	}
	sort.SliceStable(tempos, func(i, j int) bool { return tempos[i].tick < tempos[j].tick })
	for _, t := range tempos {
		loader.Tempo(t.tick, t.bpm)
	}

	for num, track := range sm.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteStart(&channel, &key, &velocity):
				loader.NoteOn(num, absTicks, channel, key, velocity)
			case ev.Message.GetNoteEnd(&channel, &key):
				loader.NoteOff(num, absTicks, channel, key)
			}
		}
	}

	if err := p.readScript(filepath.Join(directory, "script.txt"), s); nil != err {
		return nil, err
	}

	s.Update()
	return s, nil
}

// readInfo loads the [song] section of song.ini. A missing file is fine.
func (p *DefaultParser) readInfo(path string, info *song.Info) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if nil != err {
		return fmt.Errorf("unable to read song info: %w", err)
	}
	defer f.Close()

	section := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.Trim(line, "[]"))
			continue
		}
		if section != "song" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		switch key {
		case "name":
			info.Name = value
		case "artist":
			info.Artist = value
		case "delay":
			if d, err := strconv.ParseFloat(value, 64); nil == err {
				info.Delay = d
			}
		}
	}
	return scanner.Err()
}

var scriptLine = regexp.MustCompile(`[\t ]+`)

// readScript loads script.txt lines of the form "time length type data" and
// spreads the resulting display events over every track.
func (p *DefaultParser) readScript(path string, s *song.Song) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if nil != err {
		return fmt.Errorf("unable to read script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := scriptLine.Split(line, 4)
		if len(fields) < 4 {
			continue
		}
		time, err := strconv.ParseFloat(fields[0], 64)
		if nil != err {
			continue
		}
		length, err := strconv.ParseFloat(fields[1], 64)
		if nil != err {
			continue
		}
		switch fields[2] {
		case "text":
			for _, t := range s.Tracks {
				t.AddText(time, song.TextEvent{Text: fields[3], Length: length})
			}
		case "pic":
			for _, t := range s.Tracks {
				t.AddPicture(time, song.PictureEvent{FileName: fields[3], Length: length})
			}
		}
	}
	return scanner.Err()
}
