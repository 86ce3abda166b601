package chart

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pitwall/f1insight/pkg/model"
)

const (
	telemetryWidth  = 16 * vg.Inch
	telemetryHeight = 12 * vg.Inch
	traceWidth      = 2.5 // points
)

// DriverTrace is one driver's telemetry on the comparison chart.
type DriverTrace struct {
	Label  string // legend entry, e.g. "VER - 1:11.365"
	Color  color.Color
	Dashes []vg.Length
	Frames []model.TelemetryFrame
}

// TelemetryChart compares lap telemetry of several drivers in three
// panels: speed, throttle and brake, each over lap distance.
type TelemetryChart struct {
	Title  string
	Traces []DriverTrace
}

//nolint:gochecknoglobals // panel definitions
var telemetryPanels = []struct {
	label   string
	value   func(f model.TelemetryFrame) float64
	percent bool
}{
	{"Speed (km/h)", func(f model.TelemetryFrame) float64 { return f.Speed }, false},
	{"Throttle (%)", func(f model.TelemetryFrame) float64 { return f.Throttle }, true},
	{"Brake (%)", func(f model.TelemetryFrame) float64 { return f.Brake }, true},
}

// WritePNG renders the chart and writes it as PNG.
func (tc *TelemetryChart) WritePNG(w io.Writer) error {
	if len(tc.Traces) == 0 {
		return errors.New("no traces to draw")
	}
	panels, err := tc.buildPanels()
	if err != nil {
		return err
	}
	img := newCanvas(telemetryWidth, telemetryHeight)
	rows := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{Rows: len(panels), Cols: 1, PadY: vg.Points(12)}
	canvases := plot.Align(rows, tiles, draw.New(img))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
	return writePNG(img, w)
}

func (tc *TelemetryChart) buildPanels() ([]*plot.Plot, error) {
	ret := make([]*plot.Plot, 0, len(telemetryPanels))
	for pi, panel := range telemetryPanels {
		p := plot.New()
		p.Y.Label.Text = panel.label
		p.Add(plotter.NewGrid())
		if panel.percent {
			p.Y.Min, p.Y.Max = 0, 105
		}
		if pi == 0 {
			p.Title.Text = tc.Title
			p.Legend.Top = true
		}
		if pi == len(telemetryPanels)-1 {
			p.X.Label.Text = "Distance (m)"
		}
		for _, trace := range tc.Traces {
			line, err := traceLine(trace, panel.value)
			if err != nil {
				return nil, err
			}
			p.Add(line)
			if pi == 0 {
				p.Legend.Add(trace.Label, line)
			}
		}
		ret = append(ret, p)
	}
	return ret, nil
}

//nolint:whitespace // can't make both editor and linter happy
func traceLine(
	trace DriverTrace, value func(f model.TelemetryFrame) float64,
) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(trace.Frames))
	for i, f := range trace.Frames {
		xys[i] = plotter.XY{X: f.Distance, Y: value(f)}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = trace.Color
	line.LineStyle.Width = vg.Points(traceWidth)
	line.LineStyle.Dashes = trace.Dashes
	return line, nil
}
