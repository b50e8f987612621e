package theme

type DefaultTheme struct {
}

var (
	laneColors = [...]RGB{
		{255, 20, 147}, // pink
		{57, 255, 20},  // green
		{255, 255, 0},  // yellow
		{0, 255, 255},  // cyan
	}
	comboColor      = RGB{255, 255, 0}
	scoreColor      = RGB{0, 255, 255}
	missColor       = RGB{255, 20, 60}
	backgroundColor = RGB{10, 10, 15}
)

func (t *DefaultTheme) LaneColor(lane int) RGB {
	if lane < 0 || lane >= len(laneColors) {
		return RGB{255, 255, 255}
	}
	return laneColors[lane]
}

func (t *DefaultTheme) ComboColor() RGB { return comboColor }
func (t *DefaultTheme) ScoreColor() RGB { return scoreColor }
func (t *DefaultTheme) MissColor() RGB  { return missColor }
func (t *DefaultTheme) Background() RGB { return backgroundColor }
