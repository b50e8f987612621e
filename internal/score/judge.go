// Package score resolves hit attempts against the chart and keeps the
// combo/multiplier/score math in one place. The sqlite result store
// lives here too.
package score

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/neon/internal/game"
)

// DefaultTolerance is the maximum distance, in position units, between
// a note and the hit line for a press to count.
const DefaultTolerance = 50.0

// Effects receives a burst request for every hit. The judge does not
// care what it costs; the pool and quality tier decide that.
type Effects interface {
	Burst(lane int)
}

type Outcome struct {
	Hit        bool
	Note       *game.Note
	Distance   float64
	ScoreDelta int
}

type Judge interface {
	AttemptHit(chart *game.Chart, session *game.Session, now float64) Outcome
}

type DefaultJudge struct {
	Tolerance float64
	Speed     float64 // position units per second
	Effects   Effects // may be nil
}

// NewJudge validates the judging parameters up front. A non-positive
// tolerance can never match a note and a non-positive speed breaks the
// distance math, so both are rejected here instead of producing a judge
// that misses every press.
func NewJudge(tolerance, speed float64, effects Effects) (*DefaultJudge, error) {
	if tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %v", tolerance)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("note speed must be positive, got %v", speed)
	}
	return &DefaultJudge{Tolerance: tolerance, Speed: speed, Effects: effects}, nil
}

// MultiplierFor is the score multiplier as a pure step function of
// combo. It is recomputed on every hit, never accumulated.
func MultiplierFor(combo int) int {
	switch {
	case combo >= 50:
		return 4
	case combo >= 20:
		return 3
	case combo >= 10:
		return 2
	}
	return 1
}

// AttemptHit resolves one input trigger at song time now. Among
// unjudged notes within the tolerance window it picks the smallest
// absolute distance to the hit line, ties to the earliest note. A miss
// resets the combo; score only ever increases.
func (j *DefaultJudge) AttemptHit(c *game.Chart, s *game.Session, now float64) Outcome {
	var closest *game.Note
	best := math.Inf(1)

	// Notes are sorted by time, so distance shrinks to the closest
	// candidate and then grows again; stop at the first increase.
	for _, n := range c.Notes {
		if n.Judged {
			continue
		}
		d := n.Distance(now, j.Speed)
		if d < best {
			best = d
			closest = n
		} else if closest != nil {
			break
		}
	}

	if closest == nil || best > j.Tolerance {
		s.Combo = 0
		s.Multiplier = 1
		s.Misses++
		return Outcome{}
	}

	closest.Judged = true
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.Multiplier = MultiplierFor(s.Combo)

	delta := int(math.Floor((j.Tolerance - best) * 2))
	if delta < 1 {
		delta = 1
	}
	delta *= s.Multiplier
	s.Score += delta
	s.Hits++

	if j.Effects != nil {
		j.Effects.Burst(closest.Lane)
	}

	return Outcome{
		Hit:        true,
		Note:       closest,
		Distance:   best,
		ScoreDelta: delta,
	}
}
