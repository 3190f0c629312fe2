package input

import (
	"github.com/eiannone/keyboard"
)

// Frame is the input snapshot the game loop consumes once per tick.
type Frame struct {
	Controls Controls
	Picks    int // strum presses since the last frame
	Releases int // strum releases since the last frame
	Quit     bool
}

// Collector drains raw key events into a fret bitmask. A terminal delivers
// no key-up events, so fret keys toggle and the pick key alternates between
// press and release.
type Collector struct {
	events   <-chan keyboard.KeyEvent
	fretKeys []rune
	pickKey  rune

	state    Controls
	strummed bool
}

func NewCollector(fretKeys []rune, pickKey rune) (*Collector, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, err
	}
	return &Collector{
		events:   events,
		fretKeys: fretKeys,
		pickKey:  pickKey,
	}, nil
}

func (c *Collector) Close() error {
	return keyboard.Close()
}

// Poll consumes every queued key event and returns the current frame state.
func (c *Collector) Poll() Frame {
	frame := Frame{}
	for i := 0; i < len(c.events); i++ {
		key := <-c.events
		if key.Key == keyboard.KeyEsc {
			frame.Quit = true
			continue
		}
		if key.Rune == c.pickKey || key.Key == keyboard.KeySpace {
			if c.strummed {
				frame.Releases++
			} else {
				frame.Picks++
			}
			c.strummed = !c.strummed
			continue
		}
		for fret, r := range c.fretKeys {
			if key.Rune == r {
				c.state = c.state.Toggle(fret)
				break
			}
		}
	}
	frame.Controls = c.state
	return frame
}
