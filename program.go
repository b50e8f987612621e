package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"git.lost.host/meutraa/neon/internal/chart"
	"git.lost.host/meutraa/neon/internal/clock"
	"git.lost.host/meutraa/neon/internal/config"
	"git.lost.host/meutraa/neon/internal/game"
	"git.lost.host/meutraa/neon/internal/parser"
	"git.lost.host/meutraa/neon/internal/particle"
	"git.lost.host/meutraa/neon/internal/quality"
	"git.lost.host/meutraa/neon/internal/render"
	"git.lost.host/meutraa/neon/internal/score"
	"git.lost.host/meutraa/neon/internal/settings"
	"git.lost.host/meutraa/neon/internal/theme"
)

// Notes are pruned once their derived position is this far past the
// window edge.
const viewMargin = 50.0

var laneKeys = [game.Lanes]int32{rl.KeyD, rl.KeyF, rl.KeyJ, rl.KeyK}

type Program struct {
	Parser    *parser.DefaultParser
	Generator *chart.DefaultGenerator
	Judge     *score.DefaultJudge
	Theme     *theme.DefaultTheme
	Renderer  *render.DefaultRenderer

	Settings *settings.Settings
	Store    *score.Store // nil when the database is unavailable
	Clock    *clock.Clock
	Pool     *particle.Pool
	Quality  *quality.Controller
	Session  *game.Session
	Chart    *game.Chart

	music    rl.Music
	hasMusic bool
	started  bool
	startAt  time.Time
	saved    bool
	now      float64

	chartSum string
	best     int

	width, height int32
	laneWidth     float64
	hitLine       float64

	audioFile, chartFile string
	rng                  *rand.Rand
}

func (p *Program) Init() error {
	p.Parser = &parser.DefaultParser{}
	p.Theme = &theme.DefaultTheme{}

	s, err := settings.Load(*config.SettingsPath)
	if err != nil {
		log.Println("using default settings:", err)
	}
	p.Settings = s

	seed := *config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p.rng = rand.New(rand.NewSource(seed))
	p.Generator = chart.NewGenerator(p.rng)
	p.Renderer = render.NewRenderer(p.rng)

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(s.Width), int32(s.Height), "neon")
	if s.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(60)
	rl.InitAudioDevice()
	p.Resize()

	if dir := *config.Directory; dir != "" {
		if err := filepath.Walk(dir, func(pth string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			switch path.Ext(info.Name()) {
			case ".ogg", ".mp3", ".wav", ".xm", ".mod", ".flac":
				p.audioFile = pth
			case ".sm":
				p.chartFile = pth
			}
			return nil
		}); err != nil {
			log.Println("unable to walk song directory:", err)
		}
	}

	if st, err := score.NewStore(*config.DatabasePath); err != nil {
		log.Println("running without score history:", err)
	} else {
		p.Store = st
	}

	if err := p.initTransport(); err != nil {
		log.Println("no playable audio, demo mode:", err)
	}
	if err := p.initChart(); err != nil {
		return err
	}

	p.Session = game.NewSession()
	p.Pool = particle.NewPool(particle.DefaultCapacity, p.rng)
	p.Quality = quality.NewController()
	judge, err := score.NewJudge(*config.Tolerance, s.NoteSpeed, p)
	if err != nil {
		return fmt.Errorf("unable to configure judging: %w", err)
	}
	p.Judge = judge

	if p.Store != nil {
		p.chartSum = score.HashChart(p.Chart)
		p.best = p.Store.Best(p.chartSum)
	}

	p.startAt = time.Now().Add(*config.Delay)
	log.Printf("playing %q, %v notes\n", p.Chart.Title, len(p.Chart.Notes))
	return nil
}

// initTransport loads the music stream, bounded by the configured
// timeout. On success the clock follows the stream position; any
// failure leaves the clock unset so the demo fallback takes over.
func (p *Program) initTransport() error {
	if p.audioFile == "" {
		return errors.New("no audio file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *config.LoadTimeout)
	defer cancel()

	m, err := awaitLoad(ctx, func() (rl.Music, error) {
		m := rl.LoadMusicStream(p.audioFile)
		if !rl.IsMusicValid(m) {
			return rl.Music{}, fmt.Errorf("unable to decode %v", p.audioFile)
		}
		return m, nil
	}, rl.UnloadMusicStream)
	if err != nil {
		return err
	}

	p.music = m
	p.hasMusic = true
	rl.SetMusicVolume(p.music, float32(p.Settings.Volume))
	p.Clock = clock.NewDriven(func() float64 {
		return float64(rl.GetMusicTimePlayed(p.music))
	})
	return nil
}

// awaitLoad runs load off the frame goroutine and waits for it or the
// context, whichever comes first. A load that completes after the
// deadline is unloaded so the stream is not leaked.
func awaitLoad(ctx context.Context, load func() (rl.Music, error), unload func(rl.Music)) (rl.Music, error) {
	type result struct {
		music rl.Music
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		m, err := load()
		ch <- result{music: m, err: err}
	}()

	select {
	case r := <-ch:
		return r.music, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.err == nil {
				unload(r.music)
			}
		}()
		return rl.Music{}, fmt.Errorf("audio did not become ready: %w", ctx.Err())
	}
}

// initChart picks the chart source: a simfile next to the audio, a
// generated chart from the filename tempo heuristic, or the demo
// fallback.
func (p *Program) initChart() error {
	if p.chartFile != "" {
		c, err := p.Parser.Parse(p.chartFile)
		if err == nil {
			p.Chart = c
			return nil
		}
		log.Println("unable to parse simfile:", err)
	}

	if p.hasMusic {
		duration := float64(rl.GetMusicTimeLength(p.music))
		c, err := p.Generator.Generate(chart.EstimateBPM(p.audioFile), duration)
		if err == nil {
			c.Title = path.Base(p.audioFile)
			p.Chart = c
			return nil
		}
		log.Println("unable to generate chart:", err)
	}

	c, err := p.Generator.Fixed(config.DemoDuration.Seconds())
	if err != nil {
		return fmt.Errorf("unable to build demo chart: %w", err)
	}
	c.Title = "demo"
	p.Chart = c
	return nil
}

func (p *Program) Resize() {
	p.width = int32(rl.GetScreenWidth())
	p.height = int32(rl.GetScreenHeight())
	p.laneWidth = float64(p.width) / game.Lanes
	p.hitLine = float64(p.height) - 100
}

func (p *Program) laneCenter(lane int) float64 {
	return float64(lane)*p.laneWidth + p.laneWidth/2
}

// Burst satisfies score.Effects: every hit requests particles at the
// note's lane, capped by the quality tier and the effects setting.
func (p *Program) Burst(lane int) {
	if !p.Settings.VisualEffects {
		return
	}
	p.Pool.Spawn(
		p.laneCenter(lane), p.hitLine,
		p.Quality.Tier().ParticleBudget(),
		p.Theme.LaneColor(lane),
	)
}

// Update runs one tick: clock, advance, judge, particles, quality, in
// that order. Nothing here blocks.
func (p *Program) Update(dt float64) {
	if p.hasMusic {
		rl.UpdateMusicStream(p.music)
	}

	if !p.started && time.Now().After(p.startAt) {
		p.started = true
		if p.hasMusic {
			rl.PlayMusicStream(p.music)
		}
		if p.Clock == nil {
			p.Clock = clock.NewFreewheeling()
		}
	}
	if !p.started {
		p.Quality.Frame(dt)
		p.Renderer.Update(dt)
		return
	}

	p.now = p.Clock.Now()

	// Playback that never advances means the transport silently
	// failed; switch to wall time once and keep going.
	if p.Clock.Driven() && p.now < 0.05 && time.Since(p.startAt) > 2*time.Second {
		log.Println("playback did not start, freewheeling the clock")
		p.Clock.Freewheel()
	}

	speed := p.Settings.NoteSpeed
	expired := p.Chart.Advance(p.now, speed, p.hitLine, float64(p.height)+viewMargin)
	for _, n := range expired {
		p.Renderer.AddDecoration(p.laneCenter(n.Lane), p.hitLine, 18, p.Theme.MissColor(), 40)
	}

	for lane, key := range laneKeys {
		if !rl.IsKeyPressed(key) {
			continue
		}
		outcome := p.Judge.AttemptHit(p.Chart, p.Session, p.now)
		if outcome.Hit {
			p.Renderer.AddDecoration(
				p.laneCenter(outcome.Note.Lane), p.hitLine, 22,
				p.Theme.LaneColor(outcome.Note.Lane), 24)
		} else {
			p.Renderer.AddDecoration(p.laneCenter(lane), p.hitLine, 14, p.Theme.MissColor(), 24)
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		p.Renderer.CycleMode()
	}
	if p.hasMusic && rl.IsKeyPressed(rl.KeyP) {
		if rl.IsMusicStreamPlaying(p.music) {
			rl.PauseMusicStream(p.music)
		} else {
			rl.ResumeMusicStream(p.music)
		}
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		p.Settings.Fullscreen = !p.Settings.Fullscreen
		p.saveSettings()
	}

	p.Pool.Step(dt)
	p.Quality.Frame(dt)
	p.Renderer.Update(dt)

	if p.Finished() {
		p.saveResult()
	}
}

func (p *Program) Finished() bool {
	return p.started && p.Chart.Remaining() == 0 && p.now > p.Chart.Duration
}

func (p *Program) saveResult() {
	if p.saved || !p.started {
		return
	}
	p.saved = true
	if p.Store != nil && p.chartSum != "" {
		p.Store.Save(p.chartSum, p.Session)
	}
}

func (p *Program) Render() {
	rl.BeginDrawing()
	rl.ClearBackground(render.Color(p.Theme.Background(), 255))

	tier := p.Quality.Tier()
	p.Renderer.DrawBackground(p.width, p.height, tier)
	p.renderLanes(tier)
	p.renderNotes(tier)
	p.renderParticles()
	p.Renderer.DrawDecorations()
	p.renderUI()

	rl.EndDrawing()
}

func (p *Program) renderLanes(tier quality.Tier) {
	for i := 0; i < game.Lanes; i++ {
		x := int32(float64(i) * p.laneWidth)
		if i > 0 {
			rl.DrawLine(x, 0, x, p.height, rl.NewColor(255, 255, 255, 40))
		}

		color := render.Color(p.Theme.LaneColor(i), 255)
		zone := rl.NewRectangle(float32(x), float32(p.hitLine-25), float32(p.laneWidth), 50)
		if tier == quality.High {
			for j := 0; j < 3; j++ {
				glow := rl.NewRectangle(
					zone.X-float32(j), zone.Y-float32(j),
					zone.Width+float32(2*j), zone.Height+float32(2*j))
				c := color
				c.A = uint8(100 - j*30)
				rl.DrawRectangleLinesEx(glow, 2, c)
			}
		}
		rl.DrawRectangleLinesEx(zone, 3, color)
	}
}

func (p *Program) renderNotes(tier quality.Tier) {
	speed := p.Settings.NoteSpeed
	for _, n := range p.Chart.Notes {
		if n.Judged {
			continue
		}
		y := n.Y(p.now, speed, p.hitLine)
		if y < -viewMargin || y > float64(p.height)+viewMargin {
			continue
		}

		x := p.laneCenter(n.Lane) + math.Sin(p.now*3+n.Phase)*4
		color := render.Color(p.Theme.LaneColor(n.Lane), 255)
		radius := float32(15)
		if n.Distance(p.now, speed) <= p.Judge.Tolerance {
			radius = 18
			if tier == quality.High {
				rl.DrawCircleLines(int32(x), int32(y), radius+5, color)
			}
		}
		rl.DrawCircle(int32(x), int32(y), radius, color)
	}
}

func (p *Program) renderParticles() {
	particles := p.Pool.Particles()
	for i := range particles {
		pt := &particles[i]
		if !pt.Active {
			continue
		}
		alpha := uint8(255 * pt.Life)
		rl.DrawCircle(int32(pt.X), int32(pt.Y), 3, render.Color(pt.Color, alpha))
	}
}

func (p *Program) renderUI() {
	rl.DrawText(fmt.Sprintf("Score: %v", p.Session.Score), 10, 10, 32,
		render.Color(p.Theme.ScoreColor(), 255))
	if p.best > 0 {
		rl.DrawText(fmt.Sprintf("Best: %v", p.best), 10, 48, 20, rl.Gray)
	}

	if p.Session.Combo > 5 {
		text := fmt.Sprintf("Combo: %vx", p.Session.Combo)
		rl.DrawText(text, p.width/2-rl.MeasureText(text, 28)/2, 50, 28,
			render.Color(p.Theme.ComboColor(), 255))
	}
	if p.Session.Multiplier > 1 {
		rl.DrawText(fmt.Sprintf("%vx", p.Session.Multiplier), p.width-100, 40, 40,
			render.Color(p.Theme.LaneColor(0), 255))
	}

	if p.hasMusic {
		played := rl.GetMusicTimePlayed(p.music)
		length := rl.GetMusicTimeLength(p.music)
		if length > 0 {
			rl.DrawRectangle(0, 2, int32(float32(p.width)*played/length), 2, rl.White)
		}
	}

	if !p.started {
		remaining := time.Until(p.startAt).Seconds()
		if remaining > 0 {
			text := fmt.Sprintf("%.1f", remaining)
			rl.DrawText(text, p.width/2-rl.MeasureText(text, 48)/2, p.height/2, 48, rl.White)
		}
	}
	if p.Finished() {
		text := fmt.Sprintf("Final: %v  Max combo: %vx", p.Session.Score, p.Session.MaxCombo)
		rl.DrawText(text, p.width/2-rl.MeasureText(text, 32)/2, p.height/2, 32,
			render.Color(p.Theme.ScoreColor(), 255))
	}

	rl.DrawText(
		fmt.Sprintf("FPS: %.1f | Quality: %v", p.Quality.FPS(), p.Quality.Tier()),
		10, p.height-25, 20, rl.White)
}

// saveSettings persists immediately so a change survives a crash
// before Deinit runs.
func (p *Program) saveSettings() {
	if err := p.Settings.Save(*config.SettingsPath); err != nil {
		log.Println("unable to save settings:", err)
	}
}

func (p *Program) Deinit() {
	p.saveResult()
	p.saveSettings()
	if p.Store != nil {
		p.Store.Close()
	}
	if p.hasMusic {
		rl.UnloadMusicStream(p.music)
	}
	rl.CloseAudioDevice()
	rl.CloseWindow()
}
