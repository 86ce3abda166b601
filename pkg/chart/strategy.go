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
	"github.com/pitwall/f1insight/pkg/style"
)

const (
	strategyWidth  = 14 * vg.Inch
	strategyHeight = 10 * vg.Inch
	stintBarWidth  = 14 // points
)

// DriverStrategy is one row of the strategy chart.
type DriverStrategy struct {
	Abbreviation string
	Stints       []model.Stint
}

// StrategyChart shows the stint sequence of every driver as a chain of
// horizontal bars colored by compound. Drivers are listed in
// classification order with the winner on top.
type StrategyChart struct {
	Title     string
	TotalLaps int
	Drivers   []DriverStrategy
}

// WritePNG renders the chart and writes it as PNG.
//
//nolint:funlen,gocognit // readability
func (sc *StrategyChart) WritePNG(w io.Writer) error {
	if len(sc.Drivers) == 0 {
		return errors.New("no drivers to draw")
	}
	p := plot.New()
	p.Title.Text = sc.Title
	p.X.Label.Text = "Lap"
	p.X.Min = 0
	if sc.TotalLaps > 0 {
		p.X.Max = float64(sc.TotalLaps) + 1
	}

	// NominalY assigns rows bottom-up, reverse for the winner on top
	names := make([]string, len(sc.Drivers))
	for i, d := range sc.Drivers {
		names[len(sc.Drivers)-1-i] = d.Abbreviation
	}
	p.NominalY(names...)

	legend := map[model.Compound]*plotter.BarChart{}
	for di, d := range sc.Drivers {
		row := len(sc.Drivers) - 1 - di
		var prev *plotter.BarChart
		for si, stint := range d.Stints {
			if si == 0 && stint.StartLap > 1 {
				spacer, err := sc.spacerBar(row, stint.StartLap-1)
				if err != nil {
					return err
				}
				p.Add(spacer)
				prev = spacer
			}
			bar, err := sc.stintBar(row, stint)
			if err != nil {
				return err
			}
			if prev != nil {
				bar.StackOn(prev)
			}
			p.Add(bar)
			if _, ok := legend[stint.Compound]; !ok {
				legend[stint.Compound] = bar
			}
			prev = bar
		}
	}

	order := []model.Compound{
		model.CompoundSoft, model.CompoundMedium, model.CompoundHard,
		model.CompoundIntermediate, model.CompoundWet, model.CompoundUnknown,
	}
	for _, compound := range order {
		if bar, ok := legend[compound]; ok {
			p.Legend.Add(compound.String(), bar)
		}
	}
	p.Legend.Top = true

	img := newCanvas(strategyWidth, strategyHeight)
	p.Draw(draw.New(img))
	return writePNG(img, w)
}

func (sc *StrategyChart) stintBar(row int, stint model.Stint) (*plotter.BarChart, error) {
	values := make(plotter.Values, len(sc.Drivers))
	values[row] = float64(stint.Laps)
	bar, err := plotter.NewBarChart(values, vg.Points(stintBarWidth))
	if err != nil {
		return nil, err
	}
	bar.Horizontal = true
	bar.Color = style.CompoundColor(stint.Compound)
	bar.LineStyle.Color = color.Black
	bar.LineStyle.Width = vg.Points(0.5)
	return bar, nil
}

// spacerBar fills the gap before a first stint that does not start on
// lap 1 (e.g. pit lane starts joining late).
func (sc *StrategyChart) spacerBar(row, laps int) (*plotter.BarChart, error) {
	values := make(plotter.Values, len(sc.Drivers))
	values[row] = float64(laps)
	bar, err := plotter.NewBarChart(values, vg.Points(stintBarWidth))
	if err != nil {
		return nil, err
	}
	bar.Horizontal = true
	bar.Color = color.NRGBA{}
	bar.LineStyle.Width = 0
	return bar, nil
}
