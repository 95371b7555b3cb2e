package cv

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/camera-calibration/internal/calibration"
)

var _ calibration.Solver = Solver{}

// Solver calibrates with cv::calibrateCamera using the default model: five
// distortion coefficients, no initial guess.
type Solver struct{}

// Calibrate implements calibration.Solver.
func (Solver) Calibrate(obj [][]r3.Vector, img [][]r2.Point, frameSize image.Point) (*calibration.Result, error) {
	if len(obj) == 0 || len(obj) != len(img) {
		return nil, fmt.Errorf("%d object views, %d image views: %w", len(obj), len(img), calibration.ErrViewMismatch)
	}
	if frameSize.X <= 0 || frameSize.Y <= 0 {
		return nil, fmt.Errorf("invalid frame size %v", frameSize)
	}

	objPts := gocv.NewPoints3fVector()
	defer objPts.Close()
	imgPts := gocv.NewPoints2fVector()
	defer imgPts.Close()

	for i := range obj {
		if len(obj[i]) != len(img[i]) {
			return nil, fmt.Errorf("view %d: %w", i, calibration.ErrViewMismatch)
		}
		ov := gocv.NewPoint3fVectorFromPoints(toPoint3f(obj[i]))
		objPts.Append(ov)
		ov.Close()

		iv := gocv.NewPoint2fVectorFromPoints(toPoint2f(img[i]))
		imgPts.Append(iv)
		iv.Close()
	}

	k := gocv.NewMat()
	defer k.Close()
	dist := gocv.NewMat()
	defer dist.Close()
	rvecs := gocv.NewMat()
	defer rvecs.Close()
	tvecs := gocv.NewMat()
	defer tvecs.Close()

	rms := gocv.CalibrateCamera(objPts, imgPts, frameSize, &k, &dist, &rvecs, &tvecs, gocv.CalibFlag(0))
	if math.IsNaN(rms) || k.Empty() {
		return nil, errors.New("solver did not converge")
	}

	camera := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			camera.Set(r, c, k.GetDoubleAt(r, c))
		}
	}
	intrinsics, err := calibration.IntrinsicsFromMatrix(camera, frameSize)
	if err != nil {
		return nil, err
	}

	coeffs := make([]float64, 0, dist.Total())
	for i := 0; i < dist.Total(); i++ {
		coeffs = append(coeffs, dist.GetDoubleAt(0, i))
	}

	return &calibration.Result{
		Intrinsics: intrinsics,
		Distortion: calibration.DistortionFromCoefficients(coeffs),
		RMS:        rms,
		Views:      len(obj),
	}, nil
}

func toPoint3f(pts []r3.Vector) []gocv.Point3f {
	out := make([]gocv.Point3f, len(pts))
	for i, p := range pts {
		out[i] = gocv.Point3f{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
	}
	return out
}

func toPoint2f(pts []r2.Point) []gocv.Point2f {
	out := make([]gocv.Point2f, len(pts))
	for i, p := range pts {
		out[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	return out
}
