package calibration

import (
	"fmt"
	"image"

	"github.com/golang/geo/r3"
)

// Board is the planar calibration target, described by its inner corners.
type Board struct {
	Cols       int
	Rows       int
	SquareSize float64
}

// NewBoard returns a validated board.
func NewBoard(cols, rows int, squareSize float64) (Board, error) {
	b := Board{Cols: cols, Rows: rows, SquareSize: squareSize}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate rejects boards the corner finder cannot work with.
func (b Board) Validate() error {
	if b.Cols < 2 || b.Rows < 2 {
		return fmt.Errorf("board needs at least 2x2 inner corners, got %dx%d", b.Cols, b.Rows)
	}
	if b.SquareSize <= 0 {
		return fmt.Errorf("board square size must be positive, got %v", b.SquareSize)
	}
	return nil
}

// Len is the number of inner corners.
func (b Board) Len() int {
	return b.Cols * b.Rows
}

// PatternSize is the (columns, rows) pattern size handed to the detector.
func (b Board) PatternSize() image.Point {
	return image.Pt(b.Cols, b.Rows)
}

// ObjectPoints returns the board corners on the z=0 plane in detector
// order: x varies fastest, so index j*Cols+i holds (i, j, 0) scaled by the
// square size. Every call returns a new slice.
func (b Board) ObjectPoints() []r3.Vector {
	pts := make([]r3.Vector, 0, b.Len())
	for j := 0; j < b.Rows; j++ {
		for i := 0; i < b.Cols; i++ {
			pts = append(pts, r3.Vector{
				X: float64(i) * b.SquareSize,
				Y: float64(j) * b.SquareSize,
			})
		}
	}
	return pts
}
