package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/CristiGvl/cpuchart/internal/chart"
	"github.com/CristiGvl/cpuchart/internal/config"
	"github.com/CristiGvl/cpuchart/internal/cpu"
	"github.com/CristiGvl/cpuchart/internal/memory"
	"github.com/CristiGvl/cpuchart/internal/raster"
	"github.com/CristiGvl/cpuchart/internal/sampler"
	"github.com/CristiGvl/cpuchart/internal/viewer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// State is the furthest stage a run has completed
type State int

const (
	Init State = iota
	Sampling
	Charted
	VectorWritten
	Rasterized
	Opened
)

var stateNames = [...]string{"init", "sampling", "charted", "vector_written", "rasterized", "opened"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// FatalError is a failure that must end the process
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through the fatal error
func (e *FatalError) Cause() error { return e.Err }

// Options holds the collaborators of a run
type Options struct {
	CPU    cpu.Reader
	Memory memory.Reader
	Opener viewer.Opener
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Result describes what a run produced
type Result struct {
	State   State
	Samples []sampler.Sample
	Chart   chart.Spec
}

// Pipeline samples CPU usage, charts it and opens the chart
type Pipeline struct {
	cfg    config.Config
	cpu    cpu.Reader
	memory memory.Reader
	opener viewer.Opener
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// New creates a pipeline
func New(cfg config.Config, opts Options) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		cpu:    opts.CPU,
		memory: opts.Memory,
		opener: opts.Opener,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: opts.Logger,
	}
}

// Run executes every stage in order. A chart that cannot be saved is reported
// on stderr and ends the run without an error; any returned error is a
// *FatalError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{State: Init}

	fmt.Fprintln(p.stdout, "Hello, world!")
	p.reportMemory(ctx)

	res.State = Sampling
	res.Samples = sampler.New(p.cpu, p.stdout, p.logger).Collect(ctx, p.cfg.SampleCount, p.cfg.Interval)

	res.Chart = chart.Build(res.Samples, p.cfg.Title, p.cfg.XAxisLabel, p.cfg.YAxisLabel, p.cfg.SeriesName)
	res.State = Charted

	if err := chart.Render(res.Chart, p.cfg.CanvasWidth, p.cfg.CanvasHeight, p.cfg.SVGPath); err != nil {
		fmt.Fprintf(p.stderr, "Error saving chart: %v\n", err)
		p.logger.Debug("pipeline halted", zap.Stringer("state", res.State), zap.Error(err))
		return res, nil
	}
	res.State = VectorWritten
	fmt.Fprintf(p.stdout, "Chart saved successfully as %s\n", p.cfg.SVGPath)

	doc, err := os.ReadFile(p.cfg.SVGPath)
	if err != nil {
		return res, &FatalError{Op: "read vector document", Err: errors.WithStack(err)}
	}

	img, err := raster.Rasterize(string(doc))
	if img != nil {
		if err := raster.WritePNG(img, p.cfg.PNGPath); err != nil {
			return res, &FatalError{Op: "save bitmap", Err: err}
		}
		res.State = Rasterized
	} else {
		p.logger.Warn("chart could not be rasterized", zap.String("path", p.cfg.SVGPath), zap.Error(err))
	}

	if err := p.opener.Open(p.cfg.PNGPath); err != nil {
		return res, &FatalError{Op: "open viewer", Err: err}
	}
	res.State = Opened

	return res, nil
}

// reportMemory prints used memory in gigabytes. A failed read prints zero.
func (p *Pipeline) reportMemory(ctx context.Context) {
	var used float64

	info, err := p.memory.GetInfo(ctx)
	if err != nil {
		p.logger.Debug("memory read failed", zap.Error(err))
	} else {
		used = info.UsedGB()
	}

	fmt.Fprintf(p.stdout, "%.3f\n", used)
}
