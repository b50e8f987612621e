package chart

import (
	"path/filepath"
	"strings"
)

const DefaultBPM = 120

// EstimateBPM guesses a tempo from the audio filename. It is a coarse
// heuristic with no confidence signal, kept because nothing better is
// available without real tempo detection.
func EstimateBPM(path string) float64 {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "slow"):
		return 80
	case strings.Contains(name, "fast"):
		return 140
	case strings.Contains(name, "dance"):
		return 128
	}
	return DefaultBPM
}
