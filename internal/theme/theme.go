package theme

// RGB is a surface-independent color triple. The render layer converts
// these to whatever the drawing backend wants.
type RGB struct {
	R, G, B uint8
}

type Theme interface {
	LaneColor(lane int) RGB
	ComboColor() RGB
	ScoreColor() RGB
	MissColor() RGB
	Background() RGB
}
