package theme

import (
	"fmt"
	"image/color"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(fret int, tappable, special bool) string {
	sym := noteSym
	if tappable {
		sym = tapSym
	}
	if special {
		sym = specialSym
	}
	c := FretColor(fret)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sym)
}

func (t *DefaultTheme) RenderSustain(fret int) string {
	c := FretColor(fret)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sustainSym)
}

func (t *DefaultTheme) RenderHitField(fret int) string {
	return barSym
}

const (
	noteSym    = "⬤"
	tapSym     = "◯"
	specialSym = "✪"
	sustainSym = "│"
	barSym     = "═"
)

var fretColors = [...]color.RGBA{
	{46, 204, 64, 255},  // green
	{255, 65, 54, 255},  // red
	{255, 220, 0, 255},  // yellow
	{0, 116, 217, 255},  // blue
	{255, 133, 27, 255}, // orange
}

func FretColor(fret int) color.RGBA {
	if fret < 0 || fret >= len(fretColors) {
		return color.RGBA{255, 255, 255, 255}
	}
	return fretColors[fret]
}
