package cv

import (
	"fmt"
	"image"

	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"

	"github.com/ironsheep/camera-calibration/internal/calibration"
)

const chessboardFlags = gocv.CalibCBAdaptiveThresh | gocv.CalibCBNormalizeImage

// Sub-pixel refinement search window.
var (
	subPixWindow   = image.Pt(11, 11)
	subPixZeroZone = image.Pt(-1, -1)
)

var _ calibration.Detector = (*Detector)(nil)

// Detector finds chessboard corners with cv::findChessboardCorners.
type Detector struct {
	subPixel bool
}

// NewDetector returns a Detector. With subPixel set, found corners are
// refined with cv::cornerSubPix before being returned.
func NewDetector(subPixel bool) *Detector {
	return &Detector{subPixel: subPixel}
}

// FindCorners implements calibration.Detector.
func (d *Detector) FindCorners(gray *image.Gray, board calibration.Board) ([]r2.Point, bool, error) {
	m, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, false, fmt.Errorf("failed to convert image: %w", err)
	}
	defer m.Close()

	corners := gocv.NewMat()
	defer corners.Close()

	if !gocv.FindChessboardCorners(m, board.PatternSize(), &corners, chessboardFlags) {
		return nil, false, nil
	}
	if n := corners.Rows() * corners.Cols(); n != board.Len() {
		return nil, false, fmt.Errorf("corner finder returned %d corners, want %d", n, board.Len())
	}

	if d.subPixel {
		criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, 30, 0.001)
		gocv.CornerSubPix(m, &corners, subPixWindow, subPixZeroZone, criteria)
	}

	pts := make([]r2.Point, 0, board.Len())
	for i := 0; i < corners.Rows(); i++ {
		v := corners.GetVecfAt(i, 0)
		pts = append(pts, r2.Point{X: float64(v[0]), Y: float64(v[1])})
	}
	return pts, true, nil
}
