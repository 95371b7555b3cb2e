package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvLogLevel is the environment variable bound to the --log_level flag.
const EnvLogLevel = "CAMCAL_LOG_LEVEL"

// Output folder names, relative to Config.OutputRoot.
const (
	ImagesDirName       = "output_images"
	VideosDirName       = "output_videos"
	FramesDirNamePrefix = "output_frames_"
)

// ErrMissingInputPath is returned by Validate when no input directory was given.
var ErrMissingInputPath = errors.New("input path is required")

// Config describes a single calibration run.
type Config struct {
	// InputPath is the directory scanned for images and videos.
	InputPath string

	// OutputRoot is the directory the output folders are created in.
	OutputRoot string

	// BoardCols and BoardRows count inner corners, not squares.
	BoardCols int
	BoardRows int

	// SquareSize scales the board model. 1.0 expresses results in squares.
	SquareSize float64

	ImageExt string
	VideoExt string

	// FrameStride keeps every Nth video frame as a detection candidate.
	FrameStride int

	// MaxFramesPerVideo caps successful detections collected from one video.
	MaxFramesPerVideo int

	// SubPixel enables sub-pixel refinement of detected corners.
	SubPixel bool

	// JPEGQuality is used when writing annotated images and frames.
	JPEGQuality int

	// IntrinsicsJSON, when set, receives the calibration result as JSON.
	IntrinsicsJSON string

	LogLevel string
}

// Default returns the configuration used when no flags override it.
func Default() Config {
	return Config{
		OutputRoot:        ".",
		BoardCols:         7,
		BoardRows:         7,
		SquareSize:        1.0,
		ImageExt:          ".jpg",
		VideoExt:          ".mov",
		FrameStride:       5,
		MaxFramesPerVideo: 240,
		SubPixel:          true,
		JPEGQuality:       95,
		LogLevel:          "info",
	}
}

// Validate checks the configuration for values a run cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return ErrMissingInputPath
	}
	if c.BoardCols < 2 || c.BoardRows < 2 {
		return fmt.Errorf("board must have at least 2x2 inner corners, got %dx%d", c.BoardCols, c.BoardRows)
	}
	if c.SquareSize <= 0 {
		return fmt.Errorf("square size must be positive, got %v", c.SquareSize)
	}
	if c.FrameStride < 1 {
		return fmt.Errorf("frame stride must be at least 1, got %d", c.FrameStride)
	}
	if c.MaxFramesPerVideo < 1 {
		return fmt.Errorf("max frames per video must be at least 1, got %d", c.MaxFramesPerVideo)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be in [1,100], got %d", c.JPEGQuality)
	}
	for _, ext := range []string{c.ImageExt, c.VideoExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.ImageExt == c.VideoExt {
		return fmt.Errorf("image and video extensions must differ, both are %q", c.ImageExt)
	}
	return nil
}

// ImagesDir is where annotated still images are written.
func (c Config) ImagesDir() string {
	return filepath.Join(c.OutputRoot, ImagesDirName)
}

// VideosDir is created alongside the other folders; nothing writes to it.
func (c Config) VideosDir() string {
	return filepath.Join(c.OutputRoot, VideosDirName)
}

// FramesDir is where annotated frames of the index-th video (1-based) go.
func (c Config) FramesDir(index int) string {
	return filepath.Join(c.OutputRoot, FramesDirNamePrefix+strconv.Itoa(index))
}
