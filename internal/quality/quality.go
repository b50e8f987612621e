// Package quality adapts effect cost to the achieved frame rate. The
// controller samples fps over ~1 second windows and moves the tier one
// step at a time, with hysteresis so it does not oscillate around a
// threshold.
package quality

type Tier int

const (
	High Tier = iota
	Medium
	Low
)

func (t Tier) String() string {
	switch t {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return "unknown"
}

// ParticleBudget is the spawn cap per burst for a tier.
func (t Tier) ParticleBudget() int {
	switch t {
	case High:
		return 15
	case Medium:
		return 8
	}
	return 5
}

const sampleWindow = 1.0 // seconds

type Controller struct {
	tier    Tier
	frames  int
	elapsed float64
	fps     float64
}

func NewController() *Controller {
	return &Controller{tier: High, fps: 60}
}

// Frame records one rendered frame of duration dt seconds. Tier
// transitions happen only here, at most one step per sample window.
func (c *Controller) Frame(dt float64) {
	c.frames++
	c.elapsed += dt
	if c.elapsed < sampleWindow {
		return
	}
	c.fps = float64(c.frames) / c.elapsed
	c.frames = 0
	c.elapsed = 0

	switch {
	case c.tier == High && c.fps < 45:
		c.tier = Medium
	case c.tier == Medium && c.fps < 30:
		c.tier = Low
	case c.tier == Low && c.fps > 55:
		c.tier = Medium
	case c.tier == Medium && c.fps > 58:
		c.tier = High
	}
}

func (c *Controller) Tier() Tier   { return c.tier }
func (c *Controller) FPS() float64 { return c.fps }
