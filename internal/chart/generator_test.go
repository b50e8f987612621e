package chart

import (
	"math"
	"math/rand"
	"testing"

	"git.lost.host/meutraa/neon/internal/game"
)

func checkInvariants(t *testing.T, notes []*game.Note) {
	t.Helper()
	for i := 1; i < len(notes); i++ {
		if notes[i].Time < notes[i-1].Time {
			t.Log("notes out of order at", i, notes[i-1].Time, notes[i].Time)
			t.Fail()
		}
	}
	last := map[int]float64{}
	for _, n := range notes {
		if prev, ok := last[n.Lane]; ok && n.Time-prev < DedupWindow {
			t.Log("dedup violated in lane", n.Lane, prev, n.Time)
			t.Fail()
		}
		last[n.Lane] = n.Time
	}
}

func TestGenerateInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		c, err := g.Generate(120, 180)
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Notes) == 0 {
			t.Fatal("empty chart")
		}
		checkInvariants(t, c.Notes)
	}
}

func TestGenerateBeatLayout(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	c, err := g.Generate(120, 10)
	if err != nil {
		t.Fatal(err)
	}

	// Beats fall on 2.0, 2.5, ... 7.5; nothing inside the lead-in or
	// lead-out.
	first := c.Notes[0].Time
	lastNote := c.Notes[len(c.Notes)-1].Time
	if first != 2.0 {
		t.Log("first note at", first, "want 2.0")
		t.Fail()
	}
	if lastNote >= 8.0 {
		t.Log("last note at", lastNote, "want < 8.0")
		t.Fail()
	}

	// At t=2.0 progress is 0.2, intensity ~0.67, so the beat carries
	// floor(1 + 0.67*3) = 3 notes spread over [2.0, 2.5). Dedup can
	// only drop them when two land in one lane, and the spread is
	// wider than the window, so all three survive.
	intensity := math.Sin(0.2*math.Pi)*0.8 + 0.2
	want := int(1 + intensity*3)
	if want != 3 {
		t.Fatal("intensity math drifted, got", want)
	}
	got := 0
	for _, n := range c.Notes {
		if n.Time >= 2.0 && n.Time < 2.5 {
			got++
		}
	}
	if got > 3 || got < 1 {
		t.Log("first beat carries", got, "notes, want 1..3 with 3 generated")
		t.Fail()
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	for _, args := range [][2]float64{{0, 30}, {-120, 30}, {120, 0}, {120, -5}} {
		if _, err := g.Generate(args[0], args[1]); err == nil {
			t.Log("expected error for bpm", args[0], "duration", args[1])
			t.Fail()
		}
	}
	if _, err := g.Fixed(0); err == nil {
		t.Log("expected error for zero fixed duration")
		t.Fail()
	}
}

func TestFixedInvariants(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)))
	c, err := g.Fixed(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Notes) == 0 {
		t.Fatal("empty demo chart")
	}
	checkInvariants(t, c.Notes)
	if c.Notes[0].Time < 2.0 {
		t.Log("demo note inside lead-in:", c.Notes[0].Time)
		t.Fail()
	}
	for i, n := range c.Notes {
		if n.Lane != i%game.Lanes {
			t.Log("demo lane at", i, "is", n.Lane, "want", i%game.Lanes)
			t.Fail()
			break
		}
	}
}

func TestNormalizeDedup(t *testing.T) {
	notes := []*game.Note{
		{Time: 2.0, Lane: 1},
		{Time: 1.0, Lane: 0},
		{Time: 1.05, Lane: 0}, // same lane, inside the window
		{Time: 1.05, Lane: 2}, // different lane, kept
	}
	kept := Normalize(notes)
	if len(kept) != 3 {
		t.Fatal("kept", len(kept), "notes, want 3")
	}
	if kept[0].Time != 1.0 || kept[1].Time != 1.05 || kept[2].Time != 2.0 {
		t.Log("bad order:", kept[0].Time, kept[1].Time, kept[2].Time)
		t.Fail()
	}
}
