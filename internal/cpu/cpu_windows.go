//go:build windows

package cpu

import (
	"context"

	"github.com/StackExchange/wmi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WindowsReader implements CPU monitoring for Windows
type WindowsReader struct {
	logger *zap.Logger
}

// newPlatformReader creates a new Windows CPU reader
func newPlatformReader(logger *zap.Logger) Reader {
	return &WindowsReader{logger: logger}
}

// Win32_PerfFormattedData_PerfOS_Processor represents WMI processor counters
type Win32_PerfFormattedData_PerfOS_Processor struct {
	Name                 string
	PercentProcessorTime uint64
}

// Refresh resets the measurement window
func (r *WindowsReader) Refresh(ctx context.Context) error {
	if _, err := systemPercent(ctx); err != nil {
		// The WMI counter is already averaged by the OS, nothing to prime.
		r.logger.Debug("cpu refresh failed, relying on wmi", zap.Error(err))
	}
	return nil
}

// GetUsage returns CPU usage percentage
func (r *WindowsReader) GetUsage(ctx context.Context) (float64, error) {
	usage, err := systemPercent(ctx)
	if err == nil {
		return usage, nil
	}

	r.logger.Debug("gopsutil cpu query failed, falling back to wmi", zap.Error(err))
	return r.getWMIUsage()
}

// getWMIUsage reads the _Total processor instance
func (r *WindowsReader) getWMIUsage() (float64, error) {
	var processors []Win32_PerfFormattedData_PerfOS_Processor
	err := wmi.Query("SELECT Name, PercentProcessorTime FROM Win32_PerfFormattedData_PerfOS_Processor WHERE Name = '_Total'", &processors)
	if err != nil {
		return 0, errors.Wrap(err, "query Win32_PerfFormattedData_PerfOS_Processor")
	}

	if len(processors) == 0 {
		return 0, errors.New("no _Total processor counter")
	}

	return Clamp(float64(processors[0].PercentProcessorTime)), nil
}
