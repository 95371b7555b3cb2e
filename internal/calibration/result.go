package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"gonum.org/v1/gonum/mat"
)

// ErrNoIntrinsics is returned when intrinsics are missing or unusable.
var ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")

// Intrinsics holds the pinhole parameters recovered by calibration.
type Intrinsics struct {
	Width  int     `json:"width_px"`
	Height int     `json:"height_px"`
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Ppx    float64 `json:"ppx"`
	Ppy    float64 `json:"ppy"`
}

// IntrinsicsFromMatrix reads fx, fy, ppx and ppy out of a 3x3 camera matrix
// laid out as
//
//	fx  0 ppx
//	 0 fy ppy
//	 0  0   1
func IntrinsicsFromMatrix(k mat.Matrix, frameSize image.Point) (Intrinsics, error) {
	if r, c := k.Dims(); r != 3 || c != 3 {
		return Intrinsics{}, fmt.Errorf("camera matrix must be 3x3, got %dx%d", r, c)
	}
	return Intrinsics{
		Width:  frameSize.X,
		Height: frameSize.Y,
		Fx:     k.At(0, 0),
		Fy:     k.At(1, 1),
		Ppx:    k.At(0, 2),
		Ppy:    k.At(1, 2),
	}, nil
}

// Matrix returns the 3x3 camera matrix.
func (in Intrinsics) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		in.Fx, 0, in.Ppx,
		0, in.Fy, in.Ppy,
		0, 0, 1,
	})
}

// CheckValid checks that the intrinsics describe a usable camera.
func (in Intrinsics) CheckValid() error {
	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Errorf("invalid size (%d, %d): %w", in.Width, in.Height, ErrNoIntrinsics)
	}
	if in.Fx <= 0 || in.Fy <= 0 {
		return fmt.Errorf("invalid focal length (%v, %v): %w", in.Fx, in.Fy, ErrNoIntrinsics)
	}
	if in.Ppx < 0 || in.Ppy < 0 {
		return fmt.Errorf("invalid principal point (%v, %v): %w", in.Ppx, in.Ppy, ErrNoIntrinsics)
	}
	return nil
}

// Distortion holds Brown-Conrady lens distortion coefficients.
type Distortion struct {
	RadialK1     float64 `json:"rk1"`
	RadialK2     float64 `json:"rk2"`
	RadialK3     float64 `json:"rk3"`
	TangentialP1 float64 `json:"tp1"`
	TangentialP2 float64 `json:"tp2"`
}

// DistortionFromCoefficients reads OpenCV's (k1, k2, p1, p2, k3) ordering.
// Missing trailing coefficients are zero; extra ones are ignored.
func DistortionFromCoefficients(coeffs []float64) Distortion {
	at := func(i int) float64 {
		if i < len(coeffs) {
			return coeffs[i]
		}
		return 0
	}
	return Distortion{
		RadialK1:     at(0),
		RadialK2:     at(1),
		TangentialP1: at(2),
		TangentialP2: at(3),
		RadialK3:     at(4),
	}
}

// Coefficients returns the distortion in OpenCV's (k1, k2, p1, p2, k3) order.
func (d Distortion) Coefficients() []float64 {
	return []float64{d.RadialK1, d.RadialK2, d.TangentialP1, d.TangentialP2, d.RadialK3}
}

// Result is the outcome of one calibration. Per-view poses are not kept.
type Result struct {
	Intrinsics Intrinsics `json:"intrinsic_parameters"`
	Distortion Distortion `json:"distortion_parameters"`
	RMS        float64    `json:"rms_reprojection_error"`
	Views      int        `json:"views"`
}

// WriteJSON writes the result as indented JSON to path.
func (r *Result) WriteJSON(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calibration result: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write calibration result: %w", err)
	}
	return nil
}
