package parser

import "github.com/maurirope/fretsonfire/internal/song"

type Parser interface {
	Parse(directory string) (*song.Song, error)
}
