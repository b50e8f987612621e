package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory    = kingpin.Arg("directory", "Song directory (omit for demo mode)").ExistingDir()
	Tolerance    = kingpin.Flag("tolerance", "Hit window in pixels").Default("50").Short('t').Float64()
	Delay        = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	LoadTimeout  = kingpin.Flag("load-timeout", "Give up on the audio after this long").Default("5s").Duration()
	DemoDuration = kingpin.Flag("demo-duration", "Length of the fallback demo chart").Default("30s").Duration()
	Seed         = kingpin.Flag("seed", "Chart random seed, 0 = time-based").Default("0").Int64()
	SettingsPath = kingpin.Flag("settings", "Settings file").Default("settings.yaml").String()
	DatabasePath = kingpin.Flag("db", "Score database").Default("results.db").String()
)

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
