package score

import (
	"math/rand"
	"testing"

	"git.lost.host/meutraa/neon/internal/game"
	"git.lost.host/meutraa/neon/internal/testdata"
)

var multiplierTests = map[int]int{
	0:  1,
	9:  1,
	10: 2,
	19: 2,
	20: 3,
	49: 3,
	50: 4,
	99: 4,
}

func TestNewJudgeRejectsInvalid(t *testing.T) {
	for _, args := range [][2]float64{{-5, 150}, {0, 150}, {50, 0}, {50, -10}} {
		if _, err := NewJudge(args[0], args[1], nil); err == nil {
			t.Log("expected error for tolerance", args[0], "speed", args[1])
			t.Fail()
		}
	}
	j, err := NewJudge(DefaultTolerance, 150, nil)
	if err != nil {
		t.Fatal(err)
	}
	if j.Tolerance != DefaultTolerance || j.Speed != 150 {
		t.Fatal("judge parameters not carried:", j.Tolerance, j.Speed)
	}
}

func TestMultiplierFor(t *testing.T) {
	for combo, expected := range multiplierTests {
		if got := MultiplierFor(combo); got != expected {
			t.Log("combo", combo, "multiplier", got, "want", expected)
			t.Fail()
		}
	}
}

type recordingEffects struct {
	lanes []int
}

func (r *recordingEffects) Burst(lane int) {
	r.lanes = append(r.lanes, lane)
}

func TestHitScoreDelta(t *testing.T) {
	// Speed 100 px/s, note 0.1s ahead of now: distance 10 px. With
	// tolerance 50 that is max(1, floor((50-10)*2)) = 80 at 1x.
	j := &DefaultJudge{Tolerance: 50, Speed: 100}
	c := &game.Chart{Notes: []*game.Note{{Time: 10.1, Lane: 2}}}
	s := game.NewSession()

	outcome := j.AttemptHit(c, s, 10.0)
	if !outcome.Hit {
		t.Fatal("expected a hit")
	}
	if outcome.ScoreDelta != 80 || s.Score != 80 {
		t.Log("delta", outcome.ScoreDelta, "score", s.Score, "want 80")
		t.Fail()
	}
	if s.Combo != 1 || s.Multiplier != 1 {
		t.Log("combo", s.Combo, "multiplier", s.Multiplier)
		t.Fail()
	}
	if !c.Notes[0].Judged {
		t.Log("note not marked judged")
		t.Fail()
	}
}

func TestMissResetsComboOnly(t *testing.T) {
	j := &DefaultJudge{Tolerance: 50, Speed: 100}
	c := &game.Chart{Notes: []*game.Note{{Time: 20.0, Lane: 0}}}
	s := game.NewSession()
	s.Combo = 12
	s.Multiplier = MultiplierFor(s.Combo)
	s.Score = 500

	// Nothing within the window at t=10.
	outcome := j.AttemptHit(c, s, 10.0)
	if outcome.Hit {
		t.Fatal("expected a miss")
	}
	if s.Combo != 0 || s.Multiplier != 1 {
		t.Log("combo", s.Combo, "multiplier", s.Multiplier, "want 0, 1")
		t.Fail()
	}
	if s.Score != 500 {
		t.Log("score changed on miss:", s.Score)
		t.Fail()
	}
	if c.Notes[0].Judged {
		t.Log("distant note was judged by a miss")
		t.Fail()
	}
}

func TestClosestSelectionAndTies(t *testing.T) {
	j := &DefaultJudge{Tolerance: 50, Speed: 100}
	early := &game.Note{Time: 9.9, Lane: 0}
	late := &game.Note{Time: 10.1, Lane: 1}
	closer := &game.Note{Time: 10.05, Lane: 2}
	c := &game.Chart{Notes: []*game.Note{early, closer, late}}
	s := game.NewSession()

	outcome := j.AttemptHit(c, s, 10.0)
	if outcome.Note != closer {
		t.Fatal("expected the closest note to win")
	}

	// Equidistant candidates resolve to the earliest time.
	c = &game.Chart{Notes: []*game.Note{early, late}}
	outcome = j.AttemptHit(c, s, 10.0)
	if outcome.Note != early {
		t.Log("tie broke to", outcome.Note.Time, "want", early.Time)
		t.Fail()
	}
}

func TestEffectsRequestedPerHit(t *testing.T) {
	effects := &recordingEffects{}
	j := &DefaultJudge{Tolerance: 50, Speed: 100, Effects: effects}
	c := &game.Chart{Notes: []*game.Note{
		{Time: 10.0, Lane: 3},
		{Time: 11.0, Lane: 1},
	}}
	s := game.NewSession()

	j.AttemptHit(c, s, 10.0)
	j.AttemptHit(c, s, 11.0)
	j.AttemptHit(c, s, 20.0) // miss, no burst

	if len(effects.lanes) != 2 || effects.lanes[0] != 3 || effects.lanes[1] != 1 {
		t.Log("bursts:", effects.lanes)
		t.Fail()
	}
}

// Hammering a generated chart with random-timed attempts must never
// decrease the score or grow the combo past the hit count.
func TestScoreMonotonicUnderSpam(t *testing.T) {
	c, err := testdata.GetChart()
	if err != nil {
		t.Fatal(err)
	}
	j := &DefaultJudge{Tolerance: 50, Speed: 150}
	s := game.NewSession()
	rng := rand.New(rand.NewSource(7))

	lastScore := 0
	for i := 0; i < 2000; i++ {
		now := rng.Float64() * 30
		j.AttemptHit(c, s, now)
		if s.Score < lastScore {
			t.Fatal("score decreased at attempt", i)
		}
		lastScore = s.Score
		if s.Combo > s.Hits {
			t.Fatal("combo exceeds hit count")
		}
	}
}
