package guitar

// HitWindow holds the timing margins for a given tempo, in milliseconds.
// Faster songs get tighter windows.
type HitWindow struct {
	Early   float64
	Late    float64
	Release float64
}

// NewHitWindow derives the margins for a bpm. Pure; recompute whenever the
// bpm changes.
func NewHitWindow(bpm float64) HitWindow {
	return HitWindow{
		Early:   60000.0 / bpm / 3.5,
		Late:    60000.0 / bpm / 3.5,
		Release: 60000.0 / bpm / 2,
	}
}
