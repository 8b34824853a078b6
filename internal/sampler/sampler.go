package sampler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/CristiGvl/cpuchart/internal/cpu"
	"go.uber.org/zap"
)

// Sample is one CPU utilization observation. Index is 1-based and stands in
// for elapsed time in units of the sampling interval.
type Sample struct {
	Index int     `json:"index"`
	Value float64 `json:"value_percent"`
}

// Sampler polls a cpu.Reader a fixed number of times at a fixed interval
type Sampler struct {
	reader cpu.Reader
	out    io.Writer
	logger *zap.Logger
	sleep  func(time.Duration)
}

// New creates a sampler that echoes every reading to out
func New(reader cpu.Reader, out io.Writer, logger *zap.Logger) *Sampler {
	return &Sampler{
		reader: reader,
		out:    out,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Collect takes n samples, sleeping interval between the refresh and the read
// of each one. It always runs to completion; ctx only bounds the metric
// queries. Failed reads are recorded as 0.
func (s *Sampler) Collect(ctx context.Context, n int, interval time.Duration) []Sample {
	samples := make([]Sample, 0, n)

	for i := 1; i <= n; i++ {
		if err := s.reader.Refresh(ctx); err != nil {
			s.logger.Debug("cpu refresh failed", zap.Int("index", i), zap.Error(err))
		}

		s.sleep(interval)

		usage, err := s.reader.GetUsage(ctx)
		if err != nil {
			s.logger.Debug("cpu read failed", zap.Int("index", i), zap.Error(err))
			usage = 0
		}
		usage = cpu.Clamp(usage)

		samples = append(samples, Sample{Index: i, Value: usage})
		fmt.Fprintf(s.out, "Total CPU usage: %.2f%%\n", usage)
	}

	return samples
}
