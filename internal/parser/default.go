// Package parser reads StepMania .sm simfiles into the four-lane note
// model. Only tap notes are kept; holds collapse to their head and
// mines are ignored. The parsed notes run through the same normalize
// pass as generated charts, so the sort/dedup contract holds for both.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/neon/internal/chart"
	"git.lost.host/meutraa/neon/internal/game"
)

type DefaultParser struct{}

type bpmChange struct {
	startingBeat float64
	value        float64
}

func secondsPerNote(changes []bpmChange, currentBeat, beatsPerNote float64) float64 {
	sel := float64(chart.DefaultBPM)
	for _, c := range changes {
		if currentBeat >= c.startingBeat {
			sel = c.value
		} else {
			break
		}
	}
	return beatsPerNote * 60.0 / sel
}

// 1 = tap, 2 = hold head, 4 = roll head. Everything else (mines,
// lifts, fakes, tails) is not a judgeable press here.
func isTap(c byte) bool {
	return c == '1' || c == '2' || c == '4'
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read simfile: %w", err)
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	if len(sections) < 2 {
		return nil, errors.New("simfile has no #NOTES section")
	}

	offset, changes, err := parseMeta(sections[0])
	if err != nil {
		return nil, err
	}

	section, err := pickSection(sections[1:])
	if err != nil {
		return nil, err
	}

	seconds := offset
	currentBeat := 0.0
	var notes []*game.Note

	for _, block := range strings.Split(section, "\n,") {
		var lines []string
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(l)
			if len(l) >= game.Lanes && !strings.Contains(l, ";") {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Four beats per measure, split evenly over its rows.
		beatsPerNote := 4.0 / float64(len(lines))
		for _, line := range lines {
			for col := 0; col < game.Lanes && col < len(line); col++ {
				if isTap(line[col]) {
					notes = append(notes, &game.Note{
						Time: seconds,
						Lane: col,
					})
				}
			}
			seconds += secondsPerNote(changes, currentBeat, beatsPerNote)
			currentBeat += beatsPerNote
		}
	}

	if len(notes) == 0 {
		return nil, errors.New("simfile produced no notes")
	}

	c := &game.Chart{Notes: chart.Normalize(notes), Title: file}
	c.Duration = c.Notes[len(c.Notes)-1].Time + 2.0
	if len(changes) > 0 {
		c.BPM = changes[0].value
	}
	return c, nil
}

func parseMeta(meta string) (float64, []bpmChange, error) {
	offset := 0.0
	var changes []bpmChange

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimSpace(mdl)
		if strings.HasPrefix(mdl, "OFFSET:") {
			mdl = strings.TrimSuffix(strings.TrimPrefix(mdl, "OFFSET:"), ";")
			offs, err := strconv.ParseFloat(mdl, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("bad OFFSET: %w", err)
			}
			offset = -offs
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimSuffix(strings.TrimPrefix(mdl, "BPMS:"), ";")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			for _, pair := range strings.Split(mdl, ",") {
				as := strings.SplitN(pair, "=", 2)
				if len(as) != 2 {
					continue
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if err != nil {
					return 0, nil, fmt.Errorf("bad BPMS beat: %w", err)
				}
				v, err := strconv.ParseFloat(as[1], 64)
				if err != nil {
					return 0, nil, fmt.Errorf("bad BPMS value: %w", err)
				}
				changes = append(changes, bpmChange{startingBeat: sb, value: v})
			}
		}
	}
	return offset, changes, nil
}

// pickSection returns the note data of the first chart that fits the
// four-lane model.
func pickSection(sections []string) (string, error) {
	for _, section := range sections {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		if chartType != "dance-single" {
			continue
		}
		return lines[6], nil
	}
	return "", errors.New("no dance-single chart in simfile")
}
