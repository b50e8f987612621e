package main

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	p := &Program{}
	if err := p.Init(); err != nil {
		return err
	}
	defer p.Deinit()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			p.Resize()
		}
		p.Update(float64(rl.GetFrameTime()))
		p.Render()
	}
	return nil
}
