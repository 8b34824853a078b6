package chart

import "github.com/CristiGvl/cpuchart/internal/sampler"

// Spec describes a single-series line chart
type Spec struct {
	Title      string           `json:"title"`
	XAxisLabel string           `json:"x_axis_label"`
	YAxisLabel string           `json:"y_axis_label"`
	SeriesName string           `json:"series_name"`
	Points     []sampler.Sample `json:"points"`
}

// Build creates a chart spec. Points keep their order; the slice is copied so
// later changes by the caller do not leak into the chart.
func Build(points []sampler.Sample, title, xLabel, yLabel, seriesName string) Spec {
	return Spec{
		Title:      title,
		XAxisLabel: xLabel,
		YAxisLabel: yLabel,
		SeriesName: seriesName,
		Points:     append([]sampler.Sample(nil), points...),
	}
}

// XValues returns the sample indices as chart coordinates
func (s Spec) XValues() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = float64(p.Index)
	}
	return xs
}

// YValues returns the sample values as chart coordinates
func (s Spec) YValues() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Value
	}
	return ys
}
