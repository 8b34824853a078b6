package memory

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// Info represents memory information in bytes
type Info struct {
	Total     uint64  `json:"total_bytes"`
	Used      uint64  `json:"used_bytes"`
	Available uint64  `json:"available_bytes"`
	Usage     float64 `json:"usage_percent"`
}

// UsedGB returns used memory in decimal gigabytes.
func (i *Info) UsedGB() float64 {
	return float64(i.Used) / 1_000_000_000.0
}

// Reader interface for memory monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a new memory reader backed by gopsutil
func NewReader(logger *zap.Logger) Reader {
	return &SystemReader{logger: logger}
}

// SystemReader reads the virtual memory counters of the host
type SystemReader struct {
	logger *zap.Logger
}

// GetInfo returns memory information
func (r *SystemReader) GetInfo(ctx context.Context) (*Info, error) {
	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read virtual memory")
	}

	info := &Info{
		Total:     memInfo.Total,
		Used:      memInfo.Used,
		Available: memInfo.Available,
		Usage:     memInfo.UsedPercent,
	}

	r.logger.Debug("memory",
		zap.String("used", humanize.Bytes(info.Used)),
		zap.String("total", humanize.Bytes(info.Total)),
		zap.Float64("percent", info.Usage),
	)

	return info, nil
}
