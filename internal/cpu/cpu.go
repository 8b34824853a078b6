package cpu

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"
)

// Reader interface for CPU monitoring.
//
// Refresh marks the start of a measurement window and GetUsage returns the
// aggregate utilization of all logical CPUs since the last Refresh.
type Reader interface {
	Refresh(ctx context.Context) error
	GetUsage(ctx context.Context) (float64, error)
}

// NewReader creates a new CPU reader for the current platform
func NewReader(logger *zap.Logger) Reader {
	return newPlatformReader(logger)
}

// systemPercent asks gopsutil for the global usage since its previous call.
// A zero interval makes the call non-blocking.
func systemPercent(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, errors.Wrap(err, "read cpu times")
	}

	if len(percentages) == 0 {
		return 0, nil
	}

	return Clamp(percentages[0]), nil
}

// Clamp bounds a utilization figure to 0..100.
func Clamp(percent float64) float64 {
	switch {
	case percent != percent: // NaN
		return 0
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}
