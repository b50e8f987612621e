package parser

import (
	"os"
	"path/filepath"
	"testing"
)

const simfile = `#TITLE:test;
#OFFSET:0.000;
#BPMS:0.000=120.000;

#NOTES:
     dance-single:
     :
     Beginner:
     1:
     0,0,0,0,0:
1000
0100
0010
0001
,
1000
0000
0000
0000
;
`

func writeSimfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sm")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseTiming(t *testing.T) {
	p := &DefaultParser{}
	c, err := p.Parse(writeSimfile(t, simfile))
	if err != nil {
		t.Fatal(err)
	}

	// Four quarter notes at 120 bpm, then one on the next measure.
	expected := []struct {
		time float64
		lane int
	}{
		{0.0, 0},
		{0.5, 1},
		{1.0, 2},
		{1.5, 3},
		{2.0, 0},
	}
	if len(c.Notes) != len(expected) {
		t.Fatal("parsed", len(c.Notes), "notes, want", len(expected))
	}
	for i, e := range expected {
		n := c.Notes[i]
		if n.Time != e.time || n.Lane != e.lane {
			t.Log("note", i, "at", n.Time, "lane", n.Lane, "want", e.time, e.lane)
			t.Fail()
		}
	}
	if c.BPM != 120 {
		t.Log("bpm", c.BPM, "want 120")
		t.Fail()
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	p := &DefaultParser{}

	if _, err := p.Parse(writeSimfile(t, "#TITLE:empty;\n")); err == nil {
		t.Log("expected an error for a simfile without notes")
		t.Fail()
	}

	doubles := `#OFFSET:0.0;
#BPMS:0.000=120.000;

#NOTES:
     dance-double:
     :
     Beginner:
     1:
     0,0,0,0,0:
10000000
;
`
	if _, err := p.Parse(writeSimfile(t, doubles)); err == nil {
		t.Log("expected an error when only unsupported charts exist")
		t.Fail()
	}
}
