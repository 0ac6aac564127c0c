package report

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// palette shared by the static charts.
var palette = []color.RGBA{
	{R: 66, G: 133, B: 244, A: 255},
	{R: 219, G: 68, B: 55, A: 255},
	{R: 244, G: 180, B: 0, A: 255},
	{R: 15, G: 157, B: 88, A: 255},
	{R: 171, G: 71, B: 188, A: 255},
	{R: 255, G: 112, B: 67, A: 255},
}

func plotColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// PieChart draws a labeled pie PNG from value slices.
func PieChart(path, title string, labels []string, values []float64) error {
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return fmt.Errorf("pie %s: all values zero", title)
	}

	const size = 560
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, size/2, 20, 0.5, 0.5)

	cx, cy, r := float64(size)/2, float64(size)/2+10, float64(size)/2-80
	angle := -math.Pi / 2
	for i, v := range values {
		sweep := v / total * 2 * math.Pi
		c := plotColor(i)
		dc.SetColor(c)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, angle, angle+sweep)
		dc.LineTo(cx, cy)
		dc.Fill()

		mid := angle + sweep/2
		lx := cx + (r+30)*math.Cos(mid)
		ly := cy + (r+30)*math.Sin(mid)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%s (%.1f%%)", labels[i], v/total*100), lx, ly, 0.5, 0.5)
		angle += sweep
	}
	return dc.SavePNG(path)
}

// RadarChart draws a radar PNG comparing named series across axes, each
// axis normalized to the largest value seen on it.
func RadarChart(path, title string, axes []string, series map[string][]float64) error {
	if len(axes) < 3 {
		return fmt.Errorf("radar %s: need at least 3 axes", title)
	}
	axisMax := make([]float64, len(axes))
	for _, values := range series {
		for i, v := range values {
			if i < len(axisMax) && v > axisMax[i] {
				axisMax[i] = v
			}
		}
	}

	const size = 560
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, size/2, 20, 0.5, 0.5)

	cx, cy, r := float64(size)/2, float64(size)/2+10, float64(size)/2-90
	axisAngle := func(i int) float64 {
		return -math.Pi/2 + float64(i)*2*math.Pi/float64(len(axes))
	}

	// Grid rings and spokes.
	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(1)
	for ring := 1; ring <= 4; ring++ {
		rr := r * float64(ring) / 4
		for i := 0; i <= len(axes); i++ {
			a := axisAngle(i % len(axes))
			x, y := cx+rr*math.Cos(a), cy+rr*math.Sin(a)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	for i, axis := range axes {
		a := axisAngle(i)
		dc.DrawLine(cx, cy, cx+r*math.Cos(a), cy+r*math.Sin(a))
		dc.Stroke()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(axis, cx+(r+28)*math.Cos(a), cy+(r+28)*math.Sin(a), 0.5, 0.5)
		dc.SetRGB(0.75, 0.75, 0.75)
	}

	si := 0
	legendY := 40.0
	for name, values := range series {
		c := plotColor(si)
		dc.SetColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 110})
		for i := 0; i <= len(axes); i++ {
			j := i % len(axes)
			frac := 0.0
			if j < len(values) && axisMax[j] > 0 {
				frac = values[j] / axisMax[j]
			}
			a := axisAngle(j)
			x, y := cx+r*frac*math.Cos(a), cy+r*frac*math.Sin(a)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.FillPreserve()
		dc.SetColor(c)
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.DrawStringAnchored(name, 70, legendY, 0, 0.5)
		legendY += 16
		si++
	}
	return dc.SavePNG(path)
}

// HeatmapChart draws an annotated matrix PNG, used for confusion
// matrices.
func HeatmapChart(path, title string, rowLabels, colLabels []string, cells [][]float64) error {
	maxVal := 1.0
	for _, row := range cells {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	const cell = 120.0
	const margin = 130.0
	width := margin + cell*float64(len(colLabels)) + 20
	height := margin + cell*float64(len(rowLabels)) + 20

	dc := gg.NewContext(int(width), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, width/2, 24, 0.5, 0.5)

	for i, rl := range rowLabels {
		y := margin + cell*float64(i) + cell/2
		dc.DrawStringAnchored(rl, margin/2, y, 0.5, 0.5)
		for j := range colLabels {
			x := margin + cell*float64(j)
			v := cells[i][j]
			shade := v / maxVal
			dc.SetRGB(1-0.8*shade, 1-0.5*shade, 1)
			dc.DrawRectangle(x, margin+cell*float64(i), cell, cell)
			dc.Fill()
			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), x+cell/2, margin+cell*float64(i)+cell/2, 0.5, 0.5)
		}
	}
	for j, cl := range colLabels {
		x := margin + cell*float64(j) + cell/2
		dc.DrawStringAnchored(cl, x, margin-18, 0.5, 0.5)
	}
	return dc.SavePNG(path)
}
