package parser

import "git.lost.host/meutraa/neon/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
