package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	markerRadius = 5.0
	markerLine   = 2.0
)

// Grayscale converts img to a single-channel intensity image, the input the
// corner finder expects.
func Grayscale(img image.Image) *image.Gray {
	return effect.Grayscale(img)
}

// DrawChessboardCorners returns a copy of img with the detected corners
// marked. Corners are expected in detector order, cols per row. Each row gets
// its own hue and consecutive corners are joined, including the jump from the
// end of one row to the start of the next, so a flipped or mis-ordered
// detection is visible at a glance.
func DrawChessboardCorners(img image.Image, corners []r2.Point, cols int) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(markerLine)
	if len(corners) == 0 || cols < 1 {
		return dc.Image()
	}

	rows := (len(corners) + cols - 1) / cols
	palette := rowPalette(rows)

	for i, p := range corners {
		row := i / cols
		r, g, b := palette[row].RGB255()
		dc.SetRGB255(int(r), int(g), int(b))

		if i > 0 {
			prev := corners[i-1]
			dc.DrawLine(prev.X, prev.Y, p.X, p.Y)
			dc.Stroke()
		}

		dc.DrawCircle(p.X, p.Y, markerRadius)
		dc.Stroke()
		dc.DrawLine(p.X-markerRadius, p.Y-markerRadius, p.X+markerRadius, p.Y+markerRadius)
		dc.DrawLine(p.X-markerRadius, p.Y+markerRadius, p.X+markerRadius, p.Y-markerRadius)
		dc.Stroke()
	}

	return dc.Image()
}

// rowPalette spreads n fully saturated hues from red towards magenta.
func rowPalette(n int) []colorful.Color {
	palette := make([]colorful.Color, n)
	for i := range palette {
		hue := 0.0
		if n > 1 {
			hue = 300 * float64(i) / float64(n-1)
		}
		palette[i] = colorful.Hsv(hue, 1, 1)
	}
	return palette
}
