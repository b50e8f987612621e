// Package settings is the persisted configuration record. Loading
// never fails the caller: any read or parse problem substitutes the
// compiled-in defaults, and out-of-range values are clamped.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	Volume        float64 `yaml:"volume"`
	NoteSpeed     float64 `yaml:"noteSpeed"`     // position units per second
	VisualEffects bool    `yaml:"visualEffects"` // gates particle spawning
}

func Default() *Settings {
	return &Settings{
		Width:         1200,
		Height:        800,
		Volume:        0.7,
		NoteSpeed:     150,
		VisualEffects: true,
	}
}

// Load reads the settings file at path. The returned settings are
// always usable; the error only reports why defaults were substituted.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("unable to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return Default(), fmt.Errorf("unable to parse settings: %w", err)
	}
	s.clamp()
	return s, nil
}

func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("unable to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write settings: %w", err)
	}
	return nil
}

func (s *Settings) clamp() {
	if s.Width < 800 {
		s.Width = 800
	}
	if s.Height < 600 {
		s.Height = 600
	}
	if s.Volume < 0 {
		s.Volume = 0
	} else if s.Volume > 1 {
		s.Volume = 1
	}
	if s.NoteSpeed < 30 {
		s.NoteSpeed = 30
	} else if s.NoteSpeed > 600 {
		s.NoteSpeed = 600
	}
}
