package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maurirope/fretsonfire/internal/song"
)

func TestReadInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.ini")
	data := `[song]
name = Defy
artist = Of Heroes
delay = 120
cassettecolor = #8080C0

[other]
name = ignored
`
	if err := os.WriteFile(path, []byte(data), 0644); nil != err {
		t.Fatal(err)
	}

	p := &DefaultParser{}
	var info song.Info
	if err := p.readInfo(path, &info); nil != err {
		t.Log("readInfo", err)
		t.Fail()
		return
	}
	if info.Name != "Defy" || info.Artist != "Of Heroes" || info.Delay != 120 {
		t.Log("info", info)
		t.Fail()
	}
}

func TestReadInfoMissingFile(t *testing.T) {
	p := &DefaultParser{}
	var info song.Info
	if err := p.readInfo(filepath.Join(t.TempDir(), "song.ini"), &info); nil != err {
		t.Log("a missing song.ini is not an error", err)
		t.Fail()
	}
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	data := "# a comment\n" +
		"1000.0\t2000.0\ttext\tHands on the fretboard\n" +
		"4000.0 1000.0 pic intro.png\n" +
		"bogus line\n"
	if err := os.WriteFile(path, []byte(data), 0644); nil != err {
		t.Fatal(err)
	}

	p := &DefaultParser{}
	s := song.New()
	if err := p.readScript(path, s); nil != err {
		t.Log("readScript", err)
		t.Fail()
		return
	}

	for i, track := range s.Tracks {
		var texts, pics int
		for _, e := range track.AllEvents() {
			switch e.Ref.Kind {
			case song.KindText:
				texts++
				if track.Text(e.Ref).Text != "Hands on the fretboard" || e.Time != 1000 {
					t.Log("text event", e, track.Text(e.Ref))
					t.Fail()
				}
			case song.KindPicture:
				pics++
				if track.Picture(e.Ref).FileName != "intro.png" {
					t.Log("picture event", track.Picture(e.Ref))
					t.Fail()
				}
			}
		}
		if texts != 1 || pics != 1 {
			t.Log("track", i, "texts", texts, "pics", pics)
			t.Fail()
		}
	}
}
