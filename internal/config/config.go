package config

import "time"

// Config holds the fixed parameters of a run
type Config struct {
	SampleCount  int
	Interval     time.Duration
	CanvasWidth  int
	CanvasHeight int
	SVGPath      string
	PNGPath      string
	Title        string
	XAxisLabel   string
	YAxisLabel   string
	SeriesName   string
}

// Default returns the only configuration the tool runs with
func Default() Config {
	return Config{
		SampleCount:  15,
		Interval:     500 * time.Millisecond,
		CanvasWidth:  1000,
		CanvasHeight: 1000,
		SVGPath:      "cpu_usage.svg",
		PNGPath:      "cpu_usage.png",
		Title:        "CPU USAGE",
		XAxisLabel:   "Time (s)",
		YAxisLabel:   "CPU Usage (%)",
		SeriesName:   "CPU Usage",
	}
}
