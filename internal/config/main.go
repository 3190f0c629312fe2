package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song directory containing notes.mid").Required().ExistingDir()
	Rate        = kingpin.Flag("rate", "Playback speed").Default("1.0").Short('r').Float64()
	Offset      = kingpin.Flag("offset", "Global offset in ms").Default("0").Short('o').Float64()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("8ms").Short('p').Duration()
	Difficulty  = kingpin.Flag("difficulty", "Difficulty, 0 = Amazing .. 3 = Supaeasy").Default("0").Short('D').Int()
	BarRow      = kingpin.Flag("bar-row", "Console rows between hit bar and bottom").Default("4").Uint()
	BoardRows   = kingpin.Flag("board-rows", "Rows of fretboard to scroll notes over").Default("40").Uint()
	Name        = kingpin.Flag("name", "Player name for the score table").Default("player").String()
	fretKeys    = kingpin.Flag("keys", "Fret keys, lowest first").Default("asdfg").Short('k').String()
	pickKey     = kingpin.Flag("pick", "Pick key").Default(";").String()
)

func FretKeys() []rune {
	return []rune(*fretKeys)
}

func PickKey() rune {
	r := []rune(*pickKey)
	if len(r) == 0 {
		return ';'
	}
	return r[0]
}

func init() {
	kingpin.Version("0.2.0")
	kingpin.Parse()
}
