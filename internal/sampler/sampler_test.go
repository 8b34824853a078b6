package sampler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeReader struct {
	values    []float64
	err       error
	refreshes int
	reads     int
}

func (f *fakeReader) Refresh(ctx context.Context) error {
	f.refreshes++
	return nil
}

func (f *fakeReader) GetUsage(ctx context.Context) (float64, error) {
	if f.err != nil {
		f.reads++
		return 0, f.err
	}
	v := f.values[f.reads%len(f.values)]
	f.reads++
	return v, nil
}

func newTestSampler(r *fakeReader, out *bytes.Buffer) (*Sampler, *[]time.Duration) {
	s := New(r, out, zap.NewNop())
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, &slept
}

func TestCollectIndicesAndValues(t *testing.T) {
	r := &fakeReader{values: []float64{12.5, 0, 100, 57.25}}
	var out bytes.Buffer
	s, slept := newTestSampler(r, &out)

	samples := s.Collect(context.Background(), 15, 500*time.Millisecond)

	if len(samples) != 15 {
		t.Fatalf("got %d samples, want 15", len(samples))
	}
	for i, sample := range samples {
		if sample.Index != i+1 {
			t.Errorf("samples[%d].Index = %d, want %d", i, sample.Index, i+1)
		}
		if sample.Value < 0 || sample.Value > 100 {
			t.Errorf("samples[%d].Value = %v, out of range", i, sample.Value)
		}
		if want := r.values[i%len(r.values)]; sample.Value != want {
			t.Errorf("samples[%d].Value = %v, want %v", i, sample.Value, want)
		}
	}

	if r.refreshes != 15 || r.reads != 15 {
		t.Errorf("refreshes = %d, reads = %d, want 15 each", r.refreshes, r.reads)
	}
	if len(*slept) != 15 {
		t.Fatalf("slept %d times, want 15", len(*slept))
	}
	for _, d := range *slept {
		if d != 500*time.Millisecond {
			t.Errorf("slept %v, want 500ms", d)
		}
	}
}

func TestCollectPrintsEachSample(t *testing.T) {
	r := &fakeReader{values: []float64{3.14159, 42}}
	var out bytes.Buffer
	s, _ := newTestSampler(r, &out)

	s.Collect(context.Background(), 2, time.Millisecond)

	want := "Total CPU usage: 3.14%\nTotal CPU usage: 42.00%\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestCollectClampsAndRecordsFailures(t *testing.T) {
	tests := []struct {
		name   string
		reader *fakeReader
		want   float64
	}{
		{"above range", &fakeReader{values: []float64{180}}, 100},
		{"below range", &fakeReader{values: []float64{-4}}, 0},
		{"read error", &fakeReader{err: errors.New("boom")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s, _ := newTestSampler(tt.reader, &out)

			samples := s.Collect(context.Background(), 3, time.Millisecond)
			if len(samples) != 3 {
				t.Fatalf("got %d samples, want 3", len(samples))
			}
			for _, sample := range samples {
				if sample.Value != tt.want {
					t.Errorf("Value = %v, want %v", sample.Value, tt.want)
				}
			}
		})
	}
}

func TestCollectBlocksForAtLeastNIntervals(t *testing.T) {
	r := &fakeReader{values: []float64{1}}
	var out bytes.Buffer
	s := New(r, &out, zap.NewNop())

	const n = 4
	const interval = 20 * time.Millisecond

	start := time.Now()
	s.Collect(context.Background(), n, interval)
	elapsed := time.Since(start)

	if elapsed < n*interval {
		t.Errorf("Collect took %v, want at least %v", elapsed, n*interval)
	}
	if strings.Count(out.String(), "\n") != n {
		t.Errorf("expected %d printed lines, got %q", n, out.String())
	}
}
