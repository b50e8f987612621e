package game

// Session is the combo/score state for one play-through. Multiplier is
// always recomputed from Combo by the judge; it is stored here only so
// the render layer can read it without recomputing.
type Session struct {
	Combo      int
	MaxCombo   int
	Multiplier int
	Score      int
	Hits       int
	Misses     int
}

func NewSession() *Session {
	return &Session{Multiplier: 1}
}
