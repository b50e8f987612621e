package game

type Chart struct {
	Notes    []*Note
	Title    string
	BPM      float64
	Duration float64 // seconds
}

// Advance prunes the chart at song time now: judged notes and unjudged
// notes whose derived position has fallen past viewBottom are removed.
// The unjudged ones are returned so the caller can decorate the miss;
// expiry never touches combo or score.
func (c *Chart) Advance(now, speed, hitLine, viewBottom float64) []*Note {
	var expired []*Note
	kept := c.Notes[:0]
	for _, n := range c.Notes {
		if n.Judged {
			continue
		}
		if n.Y(now, speed, hitLine) > viewBottom {
			expired = append(expired, n)
			continue
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(c.Notes); i++ {
		c.Notes[i] = nil
	}
	c.Notes = kept
	return expired
}

// Remaining counts unjudged notes still in the chart.
func (c *Chart) Remaining() int {
	count := 0
	for _, n := range c.Notes {
		if !n.Judged {
			count++
		}
	}
	return count
}
