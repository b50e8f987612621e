// Package chart builds note sequences: a beat-aligned generator driven
// by a tempo estimate, and a fixed-cadence fallback for when no media
// is available. Every chart that leaves this package is sorted
// ascending by time and deduplicated per lane.
package chart

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"git.lost.host/meutraa/neon/internal/game"
)

const (
	// Notes are never scheduled inside the first or last two seconds.
	leadIn = 2.0

	// Two notes in the same lane closer than this collapse to one.
	DedupWindow = 0.1

	fixedInterval = 0.5 // seconds between fallback notes
)

type Generator interface {
	Generate(bpm, duration float64) (*game.Chart, error)
	Fixed(duration float64) (*game.Chart, error)
}

type DefaultGenerator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *DefaultGenerator {
	return &DefaultGenerator{rng: rng}
}

// Generate lays notes on beat timestamps between leadIn and
// duration-leadIn. Per-beat density follows a bell curve over song
// progress: intensity = sin(progress*pi)*0.8 + 0.2, and the beat gets
// floor(1 + intensity*3) notes spread linearly across the beat
// interval, each in a uniformly random lane.
func (g *DefaultGenerator) Generate(bpm, duration float64) (*game.Chart, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %v", bpm)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", duration)
	}

	beat := 60.0 / bpm
	var notes []*game.Note
	for t := leadIn; t < duration-leadIn; t += beat {
		progress := t / duration
		intensity := math.Sin(progress*math.Pi)*0.8 + 0.2
		count := int(1 + intensity*3)
		for i := 0; i < count; i++ {
			notes = append(notes, &game.Note{
				Time:  t + float64(i)*beat/float64(count),
				Lane:  g.rng.Intn(game.Lanes),
				Phase: g.rng.Float64() * 2 * math.Pi,
			})
		}
	}

	return &game.Chart{
		Notes:    Normalize(notes),
		BPM:      bpm,
		Duration: duration,
	}, nil
}

// Fixed is the demo fallback: uniform spacing, lanes cycling left to
// right, no intensity curve. It holds the same sort/dedup contract as
// Generate.
func (g *DefaultGenerator) Fixed(duration float64) (*game.Chart, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", duration)
	}

	var notes []*game.Note
	for i, t := 0, leadIn; t < duration-leadIn; i, t = i+1, t+fixedInterval {
		notes = append(notes, &game.Note{
			Time:  t,
			Lane:  i % game.Lanes,
			Phase: g.rng.Float64() * 2 * math.Pi,
		})
	}

	return &game.Chart{
		Notes:    Normalize(notes),
		BPM:      60.0 / fixedInterval,
		Duration: duration,
	}, nil
}

// Normalize sorts notes ascending by time and drops any note that lands
// within DedupWindow of an already-kept note in the same lane. It holds
// regardless of how the notes were produced, so parsed charts go
// through it too.
func Normalize(notes []*game.Note) []*game.Note {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	kept := notes[:0]
	lastInLane := [game.Lanes]float64{}
	seen := [game.Lanes]bool{}
	for _, n := range notes {
		if n.Lane < 0 || n.Lane >= game.Lanes {
			continue
		}
		if seen[n.Lane] && n.Time-lastInLane[n.Lane] < DedupWindow {
			continue
		}
		lastInLane[n.Lane] = n.Time
		seen[n.Lane] = true
		kept = append(kept, n)
	}

	// Generation order is already ascending, but the contract must hold
	// regardless of the source.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time < kept[j].Time
	})
	return kept
}
