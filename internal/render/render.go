// Package render draws the decorative layers: the animated background
// and the short-lived hit/miss decorations. It only ever reads state
// derived elsewhere; nothing in here feeds back into the game.
package render

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"git.lost.host/meutraa/neon/internal/quality"
	"git.lost.host/meutraa/neon/internal/theme"
)

const spectrumBars = 32

type Mode int

const (
	ModeSpectrum Mode = iota
	ModeWave
	modeCount
)

type decoration struct {
	x, y      float64
	radius    float64
	color     theme.RGB
	frames    int
	maxFrames int
}

type Renderer interface {
	Update(dt float64)
	DrawBackground(width, height int32, tier quality.Tier)
	AddDecoration(x, y, radius float64, c theme.RGB, frames int)
	DrawDecorations()
	CycleMode()
}

type DefaultRenderer struct {
	mode        Mode
	time        float64
	bars        [spectrumBars]float64
	decorations []*decoration
	rng         *rand.Rand
}

func NewRenderer(rng *rand.Rand) *DefaultRenderer {
	return &DefaultRenderer{rng: rng}
}

// Color converts a theme color to a raylib color at the given alpha.
func Color(c theme.RGB, a uint8) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, a)
}

func (r *DefaultRenderer) CycleMode() {
	r.mode = (r.mode + 1) % modeCount
}

func (r *DefaultRenderer) Update(dt float64) {
	r.time += dt

	// Random-walk the bars toward fresh targets; there is no real
	// spectrum data, this is decoration.
	for i := range r.bars {
		target := r.rng.Float64() * 200
		r.bars[i] += (target - r.bars[i]) * 0.1 * dt * 60
	}

	kept := r.decorations[:0]
	for _, d := range r.decorations {
		d.frames--
		if d.frames > 0 {
			kept = append(kept, d)
		}
	}
	r.decorations = kept
}

func (r *DefaultRenderer) DrawBackground(width, height int32, tier quality.Tier) {
	switch r.mode {
	case ModeSpectrum:
		r.drawSpectrum(width, height, tier)
	case ModeWave:
		r.drawWave(width, height, tier)
	}
}

func (r *DefaultRenderer) drawSpectrum(width, height int32, tier quality.Tier) {
	barWidth := width / spectrumBars
	for i, h := range r.bars {
		x := int32(i) * barWidth
		bh := int32(h)
		intensity := uint8(h / 200 * 255)
		color := rl.NewColor(intensity, 50, 255-intensity, 255)

		if tier == quality.High {
			for j := int32(0); j < 3; j++ {
				glow := color
				glow.A = uint8(100 - j*30)
				rl.DrawRectangle(x-j, height-bh-j, barWidth+2*j, bh+2*j, glow)
			}
		} else {
			rl.DrawRectangle(x, height-bh, barWidth, bh, color)
		}
	}
}

func (r *DefaultRenderer) drawWave(width, height int32, tier quality.Tier) {
	waves := 1
	if tier == quality.High {
		waves = 3
	}
	for w := 0; w < waves; w++ {
		color := rl.NewColor(0, uint8(200-w*50), 255, 255)
		var prev rl.Vector2
		for x := int32(0); x < width; x += 5 {
			offset := math.Sin((float64(x)+r.time*100+float64(w)*50)*0.01) * 30
			pt := rl.NewVector2(float32(x), float32(height/2)+float32(offset)+float32(w*20))
			if x > 0 {
				rl.DrawLineV(prev, pt, color)
			}
			prev = pt
		}
	}
}

func (r *DefaultRenderer) AddDecoration(x, y, radius float64, c theme.RGB, frames int) {
	r.decorations = append(r.decorations, &decoration{
		x:         x,
		y:         y,
		radius:    radius,
		color:     c,
		frames:    frames,
		maxFrames: frames,
	})
}

func (r *DefaultRenderer) DrawDecorations() {
	for _, d := range r.decorations {
		alpha := uint8(255 * float64(d.frames) / float64(d.maxFrames))
		grow := float32(d.radius) * (1 + float32(d.maxFrames-d.frames)/float32(d.maxFrames))
		rl.DrawCircleLines(int32(d.x), int32(d.y), grow, Color(d.color, alpha))
	}
}
