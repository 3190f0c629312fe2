package song

// TempoMarker pins a bpm change at an absolute MIDI tick.
type TempoMarker struct {
	Tick int64
	Bpm  float64
}

// TempoMap converts absolute MIDI ticks to tempo-scaled milliseconds.
// Markers must be added in non-decreasing tick order.
type TempoMap struct {
	TicksPerBeat int
	markers      []TempoMarker
}

func NewTempoMap(ticksPerBeat int) *TempoMap {
	return &TempoMap{TicksPerBeat: ticksPerBeat}
}

func (m *TempoMap) AddMarker(tick int64, bpm float64) {
	m.markers = append(m.markers, TempoMarker{Tick: tick, Bpm: bpm})
}

func (m *TempoMap) Markers() []TempoMarker {
	return m.markers
}

func (m *TempoMap) ticksToMs(ticks, bpm float64) float64 {
	return (60000.0 * ticks) / (bpm * float64(m.TicksPerBeat))
}

// TimeAt returns the wall-clock position of an absolute tick, accumulating
// the scaled duration of every tempo segment at or before it. Without any
// markers there is no tempo reference yet and the position is 0.
func (m *TempoMap) TimeAt(tick int64) float64 {
	if len(m.markers) == 0 {
		return 0
	}
	scaled := 0.0
	markerTick := int64(0)
	bpm := m.markers[0].Bpm
	for _, marker := range m.markers {
		if marker.Tick > tick {
			break
		}
		scaled += m.ticksToMs(float64(marker.Tick-markerTick), bpm)
		markerTick, bpm = marker.Tick, marker.Bpm
	}
	return scaled + m.ticksToMs(float64(tick-markerTick), bpm)
}
