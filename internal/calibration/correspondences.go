package calibration

import (
	"errors"
	"fmt"
	"image"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ErrViewMismatch is returned when a view's object and image points do not pair up.
var ErrViewMismatch = errors.New("object and image point counts differ")

// Correspondences accumulates the calibration views of one run.
//
// Object points and image points are kept in two parallel slices; index i
// of each describes the same view. Views are only ever appended.
type Correspondences struct {
	objectPoints [][]r3.Vector
	imagePoints  [][]r2.Point
	frameSize    image.Point
}

// NewCorrespondences returns an empty set.
func NewCorrespondences() *Correspondences {
	return &Correspondences{}
}

// Add appends one view. Either both slices grow or neither does.
func (c *Correspondences) Add(obj []r3.Vector, img []r2.Point) error {
	if len(obj) == 0 {
		return fmt.Errorf("empty view: %w", ErrViewMismatch)
	}
	if len(obj) != len(img) {
		return fmt.Errorf("%d object points, %d image points: %w", len(obj), len(img), ErrViewMismatch)
	}
	c.objectPoints = append(c.objectPoints, obj)
	c.imagePoints = append(c.imagePoints, img)
	return nil
}

// Len is the number of views collected.
func (c *Correspondences) Len() int {
	return len(c.objectPoints)
}

// Empty reports whether no view has been collected.
func (c *Correspondences) Empty() bool {
	return c.Len() == 0
}

// ObjectPoints returns the per-view board points. Callers must not modify them.
func (c *Correspondences) ObjectPoints() [][]r3.Vector {
	return c.objectPoints
}

// ImagePoints returns the per-view detected corners. Callers must not modify them.
func (c *Correspondences) ImagePoints() [][]r2.Point {
	return c.imagePoints
}

// FrameSize is the (width, height) handed to the solver.
func (c *Correspondences) FrameSize() image.Point {
	return c.frameSize
}

// SetFrameSize replaces the frame size and reports whether it changed from
// a previously set, different value.
func (c *Correspondences) SetFrameSize(size image.Point) (changed bool) {
	changed = c.frameSize != (image.Point{}) && c.frameSize != size
	c.frameSize = size
	return changed
}
