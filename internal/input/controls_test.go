package input

import "testing"

func TestControlsBits(t *testing.T) {
	var c Controls
	c = c.With(0).With(3)

	for n := 0; n < NumFrets; n++ {
		expected := n == 0 || n == 3
		if c.Held(n) != expected {
			t.Log("fret", n, "held", c.Held(n))
			t.Fail()
		}
	}

	c = c.Without(0)
	if c.Held(0) {
		t.Fail()
	}

	c = c.Toggle(3)
	if c.Held(3) {
		t.Fail()
	}
	c = c.Toggle(3)
	if !c.Held(3) {
		t.Fail()
	}
}
