package input

// NumFrets is the number of playable lanes.
const NumFrets = 5

// Controls is the per-frame input state, one bit per fret lane.
type Controls uint8

func (c Controls) Held(fret int) bool {
	return c&(1<<uint(fret)) != 0
}

func (c Controls) With(fret int) Controls {
	return c | 1<<uint(fret)
}

func (c Controls) Without(fret int) Controls {
	return c &^ (1 << uint(fret))
}

func (c Controls) Toggle(fret int) Controls {
	return c ^ 1<<uint(fret)
}
