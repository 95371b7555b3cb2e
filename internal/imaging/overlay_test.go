package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/golang/geo/r2"
)

func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 == 255 && g>>8 == 255 && b>>8 == 255
}

func TestGrayscale(t *testing.T) {
	img := createInMemoryImage(20, 10, color.RGBA{255, 255, 255, 255})
	img.Set(3, 4, color.RGBA{0, 0, 0, 255})

	gray := Grayscale(img)
	if gray.Bounds().Dx() != 20 || gray.Bounds().Dy() != 10 {
		t.Fatalf("dimensions: got %v, want 20x10", gray.Bounds())
	}
	if got := gray.GrayAt(0, 0).Y; got < 250 {
		t.Errorf("white pixel: got %d, want ~255", got)
	}
	if got := gray.GrayAt(3, 4).Y; got != 0 {
		t.Errorf("black pixel: got %d, want 0", got)
	}
}

func TestDrawChessboardCorners(t *testing.T) {
	src := createInMemoryImage(100, 100, color.White)
	corners := []r2.Point{
		{X: 20, Y: 20}, {X: 50, Y: 20},
		{X: 20, Y: 60}, {X: 50, Y: 60},
	}

	out := DrawChessboardCorners(src, corners, 2)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), src.Bounds())
	}
	for _, p := range corners {
		if isWhite(out.At(int(p.X), int(p.Y))) {
			t.Errorf("corner (%v,%v) was not marked", p.X, p.Y)
		}
	}
	// Midpoint of the first row's connecting line.
	if isWhite(out.At(35, 20)) {
		t.Error("row connector was not drawn")
	}
	if !isWhite(out.At(90, 90)) {
		t.Error("pixel far from any marker should be untouched")
	}
	if !isWhite(src.At(20, 20)) {
		t.Error("source image must not be modified")
	}
}

func TestDrawChessboardCorners_NoCorners(t *testing.T) {
	src := createInMemoryImage(30, 30, color.White)
	out := DrawChessboardCorners(src, nil, 7)
	if !isWhite(out.At(15, 15)) {
		t.Error("image without corners should be unchanged")
	}
}

func TestRowPalette(t *testing.T) {
	palette := rowPalette(7)
	if len(palette) != 7 {
		t.Fatalf("len: got %d, want 7", len(palette))
	}
	r, g, b := palette[0].RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("first row: got (%d,%d,%d), want pure red", r, g, b)
	}
	seen := map[[3]uint8]bool{}
	for _, c := range palette {
		r, g, b := c.RGB255()
		seen[[3]uint8{r, g, b}] = true
	}
	if len(seen) != 7 {
		t.Errorf("rows should get distinct colors, got %d unique", len(seen))
	}

	if single := rowPalette(1); len(single) != 1 {
		t.Errorf("single row palette: got %d entries", len(single))
	}
}
