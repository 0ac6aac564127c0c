package report

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	cellPadding = 8.0
	rowHeight   = 22.0
	charWidth   = 7.0 // basicfont Face7x13 glyph advance
	titleHeight = 34.0
)

// RenderTableImage draws the table as a PNG: shaded header row, bordered
// cells, columns sized to their widest content.
func RenderTableImage(path string, t *Table) error {
	widths := make([]float64, len(t.Columns))
	for j, col := range t.Columns {
		widths[j] = float64(len(col))*charWidth + 2*cellPadding
	}
	for _, row := range t.Rows {
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			if w := float64(len(cell))*charWidth + 2*cellPadding; w > widths[j] {
				widths[j] = w
			}
		}
	}

	var totalWidth float64
	for _, w := range widths {
		totalWidth += w
	}
	height := titleHeight + rowHeight*float64(len(t.Rows)+1) + cellPadding

	dc := gg.NewContext(int(totalWidth+2*cellPadding), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(t.Title, (totalWidth+2*cellPadding)/2, titleHeight/2, 0.5, 0.5)

	y := titleHeight
	x := cellPadding
	dc.SetRGB(0.85, 0.89, 0.95)
	dc.DrawRectangle(x, y, totalWidth, rowHeight)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	for j, col := range t.Columns {
		dc.DrawStringAnchored(col, x+widths[j]/2, y+rowHeight/2, 0.5, 0.5)
		x += widths[j]
	}

	for i, row := range t.Rows {
		y := titleHeight + rowHeight*float64(i+1)
		x := cellPadding
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			dc.DrawStringAnchored(cell, x+widths[j]/2, y+rowHeight/2, 0.5, 0.5)
			x += widths[j]
		}
	}

	// Grid lines.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	for i := 0; i <= len(t.Rows)+1; i++ {
		ly := titleHeight + rowHeight*float64(i)
		dc.DrawLine(cellPadding, ly, cellPadding+totalWidth, ly)
	}
	lx := cellPadding
	for j := 0; j <= len(widths); j++ {
		dc.DrawLine(lx, titleHeight, lx, titleHeight+rowHeight*float64(len(t.Rows)+1))
		if j < len(widths) {
			lx += widths[j]
		}
	}
	dc.Stroke()

	return dc.SavePNG(path)
}
