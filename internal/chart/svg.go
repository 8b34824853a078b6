package chart

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Render stages
const (
	StageLayout = "layout"
	StageWrite  = "write"
)

// RenderError reports a failure to lay out or save a chart
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through the render error
func (e *RenderError) Cause() error { return e.Err }

// Render lays out spec on a width x height canvas and writes it as SVG to
// path. Nothing is written when layout fails.
func Render(spec Spec, width, height int, path string) error {
	if width <= 0 || height <= 0 {
		return &RenderError{
			Stage: StageLayout,
			Err:   errors.Errorf("invalid canvas %dx%d", width, height),
		}
	}

	graph := newGraph(spec, width, height)

	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return &RenderError{Stage: StageLayout, Err: errors.Wrap(err, "render svg")}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &RenderError{Stage: StageWrite, Err: errors.Wrapf(err, "write %s", path)}
	}

	return nil
}

// newGraph maps a spec onto a go-chart line chart. The y axis is pinned to
// the percentage domain so a flat series still has a usable range.
func newGraph(spec Spec, width, height int) *gochart.Chart {
	graph := &gochart.Chart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    60,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: gochart.XAxis{
			Name: spec.XAxisLabel,
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v)
			},
		},
		YAxis: gochart.YAxis{
			Name: spec.YAxisLabel,
			Range: &gochart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f%%", v)
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name: spec.SeriesName,
				Style: gochart.Style{
					StrokeColor: gochart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: spec.XValues(),
				YValues: spec.YValues(),
			},
		},
	}

	graph.Elements = []gochart.Renderable{
		gochart.Legend(graph),
	}

	return graph
}
