package score

// Record is one finished performance of a song at one difficulty.
type Record struct {
	Score  int64
	Streak int64
	Name   string
	Rate   float64
}

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of this performance
	Save(sum string, difficulty int, r Record)

	// Load previous results for the song, best first
	Load(sum string, difficulty int) []Record
}
