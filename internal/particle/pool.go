// Package particle is a fixed-capacity effect pool. Slots are allocated
// once and toggled active; a burst that finds no free slot is dropped,
// never queued, so the steady-state cost is bounded no matter how many
// hits land.
package particle

import (
	"math/rand"

	"git.lost.host/meutraa/neon/internal/theme"
)

const (
	DefaultCapacity = 100

	decayRate = 1.0 // life per second
	gravity   = 360 // px/s^2, downward

	minVX = -180.0
	maxVX = 180.0
	minVY = -300.0
	maxVY = -120.0
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // [0, 1]
	Color  theme.RGB
	Active bool
}

type Pool struct {
	particles []Particle
	active    int
	rng       *rand.Rand
}

// NewPool preallocates capacity slots. A non-positive capacity falls
// back to DefaultCapacity.
func NewPool(capacity int, rng *rand.Rand) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		particles: make([]Particle, capacity),
		rng:       rng,
	}
}

// Spawn activates up to count inactive slots at (x, y), scanned in
// index order. Requests beyond the free slot count are silently dropped.
func (p *Pool) Spawn(x, y float64, count int, color theme.RGB) {
	for i := range p.particles {
		if count <= 0 {
			return
		}
		pt := &p.particles[i]
		if pt.Active {
			continue
		}
		pt.X = x
		pt.Y = y
		pt.VX = minVX + p.rng.Float64()*(maxVX-minVX)
		pt.VY = minVY + p.rng.Float64()*(maxVY-minVY)
		pt.Life = 1.0
		pt.Color = color
		pt.Active = true
		p.active++
		count--
	}
}

// Step integrates every active particle by dt seconds and retires the
// ones whose life ran out. Retired slots are reusable immediately.
func (p *Pool) Step(dt float64) {
	for i := range p.particles {
		pt := &p.particles[i]
		if !pt.Active {
			continue
		}
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VY += gravity * dt
		pt.Life -= decayRate * dt
		if pt.Life <= 0 {
			pt.Active = false
			p.active--
		}
	}
}

// Active is the number of live particles, always <= capacity.
func (p *Pool) Active() int {
	return p.active
}

func (p *Pool) Capacity() int {
	return len(p.particles)
}

// Particles exposes the slot array for rendering. Callers must treat it
// as read-only and skip inactive entries.
func (p *Pool) Particles() []Particle {
	return p.particles
}
