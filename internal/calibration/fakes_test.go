package calibration

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// fakeDetector reports a board whenever the top-left pixel is bright.
type fakeDetector struct {
	calls int
	err   error
}

func (d *fakeDetector) FindCorners(gray *image.Gray, board Board) ([]r2.Point, bool, error) {
	d.calls++
	if d.err != nil {
		return nil, false, d.err
	}
	b := gray.Bounds()
	if gray.GrayAt(b.Min.X, b.Min.Y).Y < 128 {
		return nil, false, nil
	}
	corners := make([]r2.Point, 0, board.Len())
	for i := 0; i < board.Len(); i++ {
		corners = append(corners, r2.Point{X: float64(i%board.Cols) * 2, Y: float64(i/board.Cols) * 2})
	}
	return corners, true, nil
}

type solverCall struct {
	views     int
	frameSize image.Point
}

type fakeSolver struct {
	calls  []solverCall
	err    error
	result *Result
}

func (s *fakeSolver) Calibrate(obj [][]r3.Vector, img [][]r2.Point, frameSize image.Point) (*Result, error) {
	s.calls = append(s.calls, solverCall{views: len(obj), frameSize: frameSize})
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		r := *s.result
		return &r, nil
	}
	return &Result{
		Intrinsics: Intrinsics{Width: frameSize.X, Height: frameSize.Y, Fx: 800, Fy: 810, Ppx: 320, Ppy: 240},
		Distortion: Distortion{RadialK1: 0.1},
		RMS:        0.25,
		Views:      len(obj),
	}, nil
}

// fakeVideos serves in-memory frames keyed by path. readErrs, keyed by the
// 1-based read number, makes those reads fail in every opened source.
type fakeVideos struct {
	frames   map[string][]image.Image
	readErrs map[int]error
	opened   []*fakeSource
	openErr  error
}

func (v *fakeVideos) Open(path string) (FrameSource, error) {
	if v.openErr != nil {
		return nil, v.openErr
	}
	frames, ok := v.frames[path]
	if !ok {
		return nil, errors.New("cannot open video")
	}
	src := &fakeSource{frames: frames, errs: v.readErrs}
	v.opened = append(v.opened, src)
	return src, nil
}

type fakeSource struct {
	frames []image.Image
	errs   map[int]error
	reads  int
	closed bool
}

func (s *fakeSource) Read() (image.Image, error) {
	if s.reads >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.reads]
	s.reads++
	if err := s.errs[s.reads]; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// solidImage returns an in-memory image filled with c.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// boardImage is bright, so fakeDetector finds a board in it.
func boardImage(width, height int) *image.RGBA {
	return solidImage(width, height, color.White)
}

// blankImage is dark, so fakeDetector finds nothing.
func blankImage(width, height int) *image.RGBA {
	return solidImage(width, height, color.Black)
}

// writeJPEG encodes img into dir/name and returns the path.
func writeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// repeatFrames returns n references to the same frame.
func repeatFrames(img image.Image, n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = img
	}
	return frames
}

// readResult decodes a result written by Result.WriteJSON.
func readResult(t *testing.T, path string) *Result {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var r Result
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return &r
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
