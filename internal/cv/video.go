package cv

import (
	"fmt"
	"image"
	"io"

	"go.uber.org/multierr"
	"gocv.io/x/gocv"

	"github.com/ironsheep/camera-calibration/internal/calibration"
)

var _ calibration.VideoOpener = VideoOpener{}

// VideoOpener decodes video files with cv::VideoCapture.
type VideoOpener struct{}

// Open implements calibration.VideoOpener.
func (VideoOpener) Open(path string) (calibration.FrameSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		return nil, multierr.Combine(fmt.Errorf("cannot open video %s", path), capture.Close())
	}
	return &videoSource{path: path, capture: capture, frame: gocv.NewMat()}, nil
}

type videoSource struct {
	path    string
	capture *gocv.VideoCapture
	frame   gocv.Mat
}

// Read returns the next frame, or io.EOF once the stream ends.
func (s *videoSource) Read() (image.Image, error) {
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, io.EOF
	}
	img, err := s.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame of %s: %w", s.path, err)
	}
	return img, nil
}

func (s *videoSource) Close() error {
	return multierr.Combine(s.frame.Close(), s.capture.Close())
}
