package chart

import (
	"bytes"
	"image/color"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/pitwall/f1insight/pkg/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleFrames() []model.TelemetryFrame {
	frames := make([]model.TelemetryFrame, 0, 50)
	for i := 0; i < 50; i++ {
		frames = append(frames, model.TelemetryFrame{
			Distance: float64(i) * 20,
			Speed:    200 + float64(i%25)*4,
			Throttle: float64((i * 2) % 101),
			Brake:    float64((i * 7) % 101),
		})
	}
	return frames
}

func TestTelemetryChartWritePNG(t *testing.T) {
	tc := &TelemetryChart{
		Title: "Monaco Grand Prix 2023 Qualifying - Top 3 Comparison",
		Traces: []DriverTrace{
			{Label: "VER - 1:28.241", Color: color.RGBA{R: 0x36, G: 0x71, B: 0xC6, A: 0xFF}, Dashes: LineDashes(0), Frames: sampleFrames()},
			{Label: "LEC - 1:28.325", Color: color.RGBA{R: 0xE8, B: 0x20, A: 0xFF}, Dashes: LineDashes(1), Frames: sampleFrames()},
			{Label: "ALO - 1:28.780", Color: color.RGBA{R: 0x35, G: 0x8C, B: 0x75, A: 0xFF}, Dashes: LineDashes(2), Frames: sampleFrames()},
		},
	}
	var buf bytes.Buffer
	assert.NilError(t, tc.WritePNG(&buf))
	assert.Assert(t, buf.Len() > len(pngMagic))
	assert.DeepEqual(t, buf.Bytes()[:4], pngMagic)
}

func TestTelemetryChartNoTraces(t *testing.T) {
	tc := &TelemetryChart{Title: "empty"}
	var buf bytes.Buffer
	assert.ErrorContains(t, tc.WritePNG(&buf), "no traces")
}

func TestStrategyChartWritePNG(t *testing.T) {
	sc := &StrategyChart{
		Title:     "Monaco Grand Prix 2023 Race - Tyre Strategy",
		TotalLaps: 78,
		Drivers: []DriverStrategy{
			{Abbreviation: "VER", Stints: []model.Stint{
				{Number: 1, Compound: model.CompoundMedium, StartLap: 1, Laps: 54},
				{Number: 2, Compound: model.CompoundIntermediate, StartLap: 55, Laps: 24},
			}},
			{Abbreviation: "ALO", Stints: []model.Stint{
				{Number: 1, Compound: model.CompoundHard, StartLap: 1, Laps: 53},
				{Number: 2, Compound: model.CompoundIntermediate, StartLap: 54, Laps: 25},
			}},
			{Abbreviation: "OCO", Stints: []model.Stint{
				{Number: 1, Compound: model.CompoundMedium, StartLap: 3, Laps: 52},
				{Number: 2, Compound: model.CompoundIntermediate, StartLap: 55, Laps: 24},
			}},
		},
	}
	var buf bytes.Buffer
	assert.NilError(t, sc.WritePNG(&buf))
	assert.Assert(t, buf.Len() > len(pngMagic))
	assert.DeepEqual(t, buf.Bytes()[:4], pngMagic)
}

func TestStrategyChartNoDrivers(t *testing.T) {
	sc := &StrategyChart{Title: "empty"}
	var buf bytes.Buffer
	assert.ErrorContains(t, sc.WritePNG(&buf), "no drivers")
}

func TestLineDashesCycle(t *testing.T) {
	assert.Assert(t, LineDashes(0) == nil)
	assert.Assert(t, LineDashes(1) != nil)
	assert.DeepEqual(t, LineDashes(1), LineDashes(4))
	assert.DeepEqual(t, LineDashes(2), LineDashes(5))
}
