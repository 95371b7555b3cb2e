package calibration

import (
	"image"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Detector finds the inner corners of board in an intensity image.
//
// found is false, with a nil error, when the board is simply not visible.
// When found is true the corners are in board order and there are exactly
// board.Len() of them.
type Detector interface {
	FindCorners(gray *image.Gray, board Board) (corners []r2.Point, found bool, err error)
}

// Solver recovers the camera intrinsics from a set of views.
// obj and img are parallel, one entry per view.
type Solver interface {
	Calibrate(obj [][]r3.Vector, img [][]r2.Point, frameSize image.Point) (*Result, error)
}

// VideoOpener opens a video file for sequential frame reads.
type VideoOpener interface {
	Open(path string) (FrameSource, error)
}

// FrameSource yields decoded frames in order. Read returns io.EOF once the
// stream is exhausted. Close releases the underlying handle.
type FrameSource interface {
	Read() (image.Image, error)
	Close() error
}
