// Package chart renders the analysis artifacts as PNG files.
package chart

import (
	"image/color"
	"io"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI matches the resolution the reports reference.
const DPI = 150

func newCanvas(width, height vg.Length) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(DPI),
		vgimg.UseBackgroundColor(color.White),
	)
}

func writePNG(img *vgimg.Canvas, w io.Writer) error {
	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

// LineDashes returns the dash pattern for the i-th trace of a chart:
// solid, dashed and dash-dotted, cycling.
func LineDashes(i int) []vg.Length {
	patterns := [][]vg.Length{
		nil,
		{vg.Points(6), vg.Points(3)},
		{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)},
	}
	if i < 0 {
		i = -i
	}
	return patterns[i%len(patterns)]
}
