package score

import (
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	scorer := DefaultScorer{Path: ":memory:"}
	if err := scorer.Init(); nil != err {
		t.Log("unable to open database", err)
		t.Fail()
		return
	}
	defer scorer.Deinit()

	sum := "c29tZSBoYXNo"
	scorer.Save(sum, 0, Record{Score: 1200, Streak: 14, Name: "p1", Rate: 1.0})
	scorer.Save(sum, 0, Record{Score: 4800, Streak: 32, Name: "p2", Rate: 1.0})
	scorer.Save(sum, 1, Record{Score: 9000, Streak: 50, Name: "p3", Rate: 1.0})
	scorer.Save("other", 0, Record{Score: 100, Streak: 1, Name: "p4", Rate: 1.0})

	records := scorer.Load(sum, 0)
	if len(records) != 2 {
		t.Log("records", records)
		t.Fail()
		return
	}
	// Best first
	if records[0].Score != 4800 || records[0].Name != "p2" {
		t.Log("records", records)
		t.Fail()
	}
	if records[1].Score != 1200 || records[1].Streak != 14 {
		t.Log("records", records)
		t.Fail()
	}
}

func TestLoadUnknownSong(t *testing.T) {
	scorer := DefaultScorer{Path: ":memory:"}
	if err := scorer.Init(); nil != err {
		t.Log("unable to open database", err)
		t.Fail()
		return
	}
	defer scorer.Deinit()

	if records := scorer.Load("missing", 0); len(records) != 0 {
		t.Log("records", records)
		t.Fail()
	}
}
