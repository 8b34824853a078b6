//go:build !windows

package cpu

import (
	"context"

	"go.uber.org/zap"
)

// SystemReader implements CPU monitoring on Linux and macOS
type SystemReader struct {
	logger *zap.Logger
}

// newPlatformReader creates a new gopsutil backed CPU reader
func newPlatformReader(logger *zap.Logger) Reader {
	return &SystemReader{logger: logger}
}

// Refresh discards the usage accumulated so far so the next GetUsage
// covers only the time after this call.
func (r *SystemReader) Refresh(ctx context.Context) error {
	_, err := systemPercent(ctx)
	return err
}

// GetUsage returns CPU usage percentage
func (r *SystemReader) GetUsage(ctx context.Context) (float64, error) {
	usage, err := systemPercent(ctx)
	if err != nil {
		return 0, err
	}

	r.logger.Debug("cpu usage", zap.Float64("percent", usage))
	return usage, nil
}
