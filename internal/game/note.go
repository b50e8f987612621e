package game

// Lanes is the number of note columns.
const Lanes = 4

type Note struct {
	Time   float64 // seconds, when the note should cross the hit line
	Lane   int     // [0, Lanes)
	Judged bool    // hit or expired
	Phase  float64 // oscillation phase, cosmetic only
}

// Y derives the on-screen position of the note at song time now. Position
// is never stored; notes fall from above the window toward the hit line.
func (n *Note) Y(now, speed, hitLine float64) float64 {
	return hitLine - (n.Time-now)*speed
}

// Distance is the absolute distance to the hit line at song time now,
// in the same units as Y.
func (n *Note) Distance(now, speed float64) float64 {
	d := (n.Time - now) * speed
	if d < 0 {
		return -d
	}
	return d
}
