package theme

type Theme interface {
	RenderNote(fret int, tappable, special bool) string
	RenderSustain(fret int) string
	RenderHitField(fret int) string
}
