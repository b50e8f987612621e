package testdata

import (
	"math/rand"

	"git.lost.host/meutraa/neon/internal/chart"
	"git.lost.host/meutraa/neon/internal/game"
)

// GetChart returns a deterministic generated chart for tests.
func GetChart() (*game.Chart, error) {
	g := chart.NewGenerator(rand.New(rand.NewSource(1)))
	return g.Generate(120, 30)
}
