package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.WarnLevel)

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("shown warning", zap.String("path", "cpu_usage.png"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entries below warn were written: %q", out)
	}
	if !strings.Contains(out, "shown warning") || !strings.Contains(out, "cpu_usage.png") {
		t.Errorf("warning missing from output: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected capital level in output: %q", out)
	}
}
