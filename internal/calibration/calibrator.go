package calibration

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"

	"github.com/ironsheep/camera-calibration/internal/config"
	"github.com/ironsheep/camera-calibration/internal/imaging"
	"github.com/ironsheep/camera-calibration/internal/inputs"
)

// ErrNoCorrespondences is returned by Calibrate when no view was collected.
var ErrNoCorrespondences = errors.New("no valid object points or image points were collected for calibration")

// maxConsecutiveReadFailures bounds how many undecodable frames in a row a
// video may produce before the rest of it is abandoned.
const maxConsecutiveReadFailures = 10

// Calibrator runs detection over a directory and calibrates once at the end.
type Calibrator struct {
	cfg      config.Config
	board    Board
	detector Detector
	solver   Solver
	videos   VideoOpener
	cache    *imaging.ImageCache
	logger   *zap.SugaredLogger
	out      io.Writer
}

// Option customizes a Calibrator.
type Option func(*Calibrator)

// WithLogger sets the logger used for progress and skip messages.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Calibrator) {
		c.logger = logger
	}
}

// WithOutput sets where the intrinsics report is printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Calibrator) {
		c.out = w
	}
}

// New builds a Calibrator from a validated configuration and the three
// vision capabilities.
func New(cfg config.Config, detector Detector, solver Solver, videos VideoOpener, opts ...Option) (*Calibrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if detector == nil || solver == nil || videos == nil {
		return nil, errors.New("detector, solver and video opener are required")
	}
	board, err := NewBoard(cfg.BoardCols, cfg.BoardRows, cfg.SquareSize)
	if err != nil {
		return nil, err
	}

	c := &Calibrator{
		cfg:      cfg,
		board:    board,
		detector: detector,
		solver:   solver,
		videos:   videos,
		cache:    imaging.NewImageCache(),
		logger:   zap.NewNop().Sugar(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Board returns the calibration target in use.
func (c *Calibrator) Board() Board {
	return c.board
}

// Run performs a full calibration over cfg.InputPath.
//
// The returned Summary is non-nil whenever the input path was usable, even
// if Run also returns an error. Summary.Result is nil when no view was
// collected.
func (c *Calibrator) Run(ctx context.Context) (*Summary, error) {
	dir := c.cfg.InputPath
	set, err := inputs.Scan(dir, c.cfg.ImageExt, c.cfg.VideoExt)
	if err != nil {
		if errors.Is(err, inputs.ErrNotDirectory) {
			c.logger.Errorf("Invalid input path: %s. Please provide a valid directory path.", dir)
		}
		return nil, err
	}

	for _, out := range []string{c.cfg.ImagesDir(), c.cfg.VideosDir()} {
		if err := imaging.EnsureDir(out); err != nil {
			return nil, err
		}
	}

	if set.Empty() {
		c.logger.Warnf("No %s images or %s videos found in %s.", c.cfg.ImageExt, c.cfg.VideoExt, dir)
	}

	corr := NewCorrespondences()
	summary := &Summary{}

	if len(set.Images) == 0 {
		c.logger.Info("No images found in the specified directory.")
	} else {
		summary.Sources = append(summary.Sources, c.ProcessImages(ctx, corr, set.Images))
	}

	if len(set.Videos) == 0 {
		c.logger.Info("No video files found in the specified directory.")
	} else {
		for i, video := range set.Videos {
			if ctx.Err() != nil {
				break
			}
			index := i + 1
			c.logger.Infof("Processing video file %d: %s", index, video)
			summary.Sources = append(summary.Sources, c.ProcessVideo(ctx, corr, index, video))
		}
	}

	summary.Views = corr.Len()
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("calibration interrupted after %d views: %w", corr.Len(), err)
	}

	result, err := c.Calibrate(corr)
	if errors.Is(err, ErrNoCorrespondences) {
		c.logger.Warn("No valid object points or image points were collected for calibration.")
		return summary, nil
	}
	if err != nil {
		return summary, err
	}
	summary.Result = result

	if err := WriteIntrinsics(c.out, result); err != nil {
		return summary, fmt.Errorf("failed to print intrinsics: %w", err)
	}
	c.logger.Debugf("camera matrix (rms %.4f over %d views):\n%v", result.RMS, result.Views, FormatMatrix(result.Intrinsics.Matrix()))
	c.logger.Debugf("distortion (k1, k2, p1, p2, k3): %v", result.Distortion.Coefficients())

	if c.cfg.IntrinsicsJSON != "" {
		if err := result.WriteJSON(c.cfg.IntrinsicsJSON); err != nil {
			c.logger.Errorf("Failed to save intrinsics: %v", err)
		} else {
			c.logger.Infof("Saved intrinsics: %s", c.cfg.IntrinsicsJSON)
		}
	}
	return summary, nil
}

// ProcessImages searches every still image for the board and appends the
// successful views to corr. The frame size is taken from the first image
// that decodes.
func (c *Calibrator) ProcessImages(ctx context.Context, corr *Correspondences, paths []string) SourceStats {
	stats := SourceStats{Kind: SourceImages}
	if len(paths) == 0 {
		return stats
	}
	stats.Source = filepath.Dir(paths[0])

	for _, path := range paths {
		size, err := c.cache.Size(path)
		if err != nil {
			continue
		}
		c.setFrameSize(corr, size, path)
		break
	}

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		stats.Candidates++
		if c.processImage(corr, path) {
			stats.Detected++
		}
	}
	return stats
}

func (c *Calibrator) processImage(corr *Correspondences, path string) bool {
	defer c.cache.Evict(path)

	img, err := c.cache.Load(path)
	if err != nil {
		c.logger.Warnf("Failed to load image: %s: %v", path, err)
		return false
	}

	if b := img.Bounds(); image.Pt(b.Dx(), b.Dy()) != corr.FrameSize() {
		c.logger.Warnf("Image %s is %dx%d, calibrating at %dx%d", path, b.Dx(), b.Dy(), corr.FrameSize().X, corr.FrameSize().Y)
	}

	corners, ok := c.detect(img, path)
	if !ok {
		c.logger.Infof("No chessboard corners found in image: %s", path)
		return false
	}
	if !c.collect(corr, corners, path) {
		return false
	}

	out := filepath.Join(c.cfg.ImagesDir(), filepath.Base(path))
	if c.saveAnnotated(img, corners, out) {
		c.logger.Infof("Saved image with corners detected: %s", out)
	}
	return true
}

// ProcessVideo samples every FrameStride-th frame of a video, counting
// frames from 1, and appends successful views to corr. Frames that fail to
// decode are skipped but still counted. It stops after MaxFramesPerVideo
// detections, at the end of the stream, or when ctx is done. index is the
// 1-based position of the video and names its output folder.
func (c *Calibrator) ProcessVideo(ctx context.Context, corr *Correspondences, index int, path string) SourceStats {
	stats := SourceStats{Kind: SourceVideo, Source: path}

	src, err := c.videos.Open(path)
	if err != nil {
		c.logger.Warnf("Failed to open video file: %s: %v", path, err)
		stats.Skipped = true
		return stats
	}
	defer func() {
		if err := src.Close(); err != nil {
			c.logger.Warnf("Failed to release video %s: %v", path, err)
		}
	}()

	framesDir := c.cfg.FramesDir(index)
	if err := imaging.EnsureDir(framesDir); err != nil {
		c.logger.Warnf("Skipping video %s: %v", path, err)
		stats.Skipped = true
		return stats
	}

	frameCount, failures := 0, 0
	for stats.Detected < c.cfg.MaxFramesPerVideo {
		if ctx.Err() != nil {
			break
		}
		frame, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		frameCount++
		if err != nil {
			failures++
			c.logger.Warnf("Failed to read frame %d of %s: %v", frameCount, path, err)
			if failures >= maxConsecutiveReadFailures {
				c.logger.Warnf("Giving up on %s after %d unreadable frames in a row", path, failures)
				break
			}
			continue
		}
		failures = 0

		if frameCount%c.cfg.FrameStride != 0 {
			continue
		}
		stats.Candidates++

		b := frame.Bounds()
		c.setFrameSize(corr, image.Pt(b.Dx(), b.Dy()), path)

		name := path + "#" + strconv.Itoa(frameCount)
		corners, ok := c.detect(frame, name)
		if !ok {
			c.logger.Debugf("No chessboard corners found in frame %d of %s", frameCount, path)
			continue
		}
		if !c.collect(corr, corners, name) {
			continue
		}
		stats.Detected++

		out := filepath.Join(framesDir, "frame_"+strconv.Itoa(frameCount)+".jpg")
		if c.saveAnnotated(frame, corners, out) {
			c.logger.Infof("Saved frame with corners detected: %s", out)
		}
	}

	if stats.Detected >= c.cfg.MaxFramesPerVideo {
		c.logger.Infof("Collected %d frames from %s, moving on", stats.Detected, path)
	}
	return stats
}

// Calibrate hands every collected view to the solver in a single call.
// The solver is not called when corr is empty. Intrinsics that fail
// Intrinsics.CheckValid are returned as an error wrapping ErrNoIntrinsics.
func (c *Calibrator) Calibrate(corr *Correspondences) (*Result, error) {
	if corr.Empty() {
		return nil, ErrNoCorrespondences
	}
	result, err := c.solver.Calibrate(corr.ObjectPoints(), corr.ImagePoints(), corr.FrameSize())
	if err != nil {
		return nil, fmt.Errorf("calibration failed: %w", err)
	}
	if err := result.Intrinsics.CheckValid(); err != nil {
		return nil, fmt.Errorf("calibration failed: %w", err)
	}
	if result.Views == 0 {
		result.Views = corr.Len()
	}
	return result, nil
}

func (c *Calibrator) detect(img image.Image, name string) ([]r2.Point, bool) {
	corners, found, err := c.detector.FindCorners(imaging.Grayscale(img), c.board)
	if err != nil {
		c.logger.Warnf("Corner detection failed for %s: %v", name, err)
		return nil, false
	}
	return corners, found
}

func (c *Calibrator) collect(corr *Correspondences, corners []r2.Point, name string) bool {
	if err := corr.Add(c.board.ObjectPoints(), corners); err != nil {
		c.logger.Warnf("Discarding view %s: %v", name, err)
		return false
	}
	return true
}

func (c *Calibrator) setFrameSize(corr *Correspondences, size image.Point, source string) {
	prev := corr.FrameSize()
	if corr.SetFrameSize(size) {
		c.logger.Warnf("Frame size changed from %dx%d to %dx%d at %s", prev.X, prev.Y, size.X, size.Y, source)
	}
}

func (c *Calibrator) saveAnnotated(img image.Image, corners []r2.Point, path string) bool {
	annotated := imaging.DrawChessboardCorners(img, corners, c.board.Cols)
	if err := imaging.Save(annotated, path, c.cfg.JPEGQuality); err != nil {
		c.logger.Warnf("Failed to save annotated image: %v", err)
		return false
	}
	return true
}
