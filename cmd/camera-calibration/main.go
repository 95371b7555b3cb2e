// Package main is the camera-calibration command.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ironsheep/camera-calibration/internal/calibration"
	"github.com/ironsheep/camera-calibration/internal/config"
	"github.com/ironsheep/camera-calibration/internal/cv"
	"github.com/ironsheep/camera-calibration/internal/inputs"
	"github.com/ironsheep/camera-calibration/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	// Flags.
	flagInputPath      = "input_path"
	flagOutputDir      = "output_dir"
	flagIntrinsicsJSON = "intrinsics_json"
	flagLogLevel       = "log_level"
	flagFrameStride    = "frame_stride"
	flagMaxFrames      = "max_frames"
	flagNoSubPix       = "no_subpix"
)

const missingInputMessage = "Error: Please provide a valid input path using the --input_path argument."

// capabilities builds the vision backends for a configuration.
type capabilities func(cfg config.Config) (calibration.Detector, calibration.Solver, calibration.VideoOpener)

func openCVCapabilities(cfg config.Config) (calibration.Detector, calibration.Solver, calibration.VideoOpener) {
	return cv.NewDetector(cfg.SubPixel), cv.Solver{}, cv.VideoOpener{}
}

func newApp(caps capabilities) *cli.App {
	defaults := config.Default()
	return &cli.App{
		Name:    "camera-calibration",
		Usage:   "calibrate a camera from chessboard images and videos",
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Description: "Scans a directory for *" + defaults.ImageExt + " images and *" + defaults.VideoExt +
			" videos, detects a 7x7 inner-corner chessboard in each image and in every " +
			"5th video frame, and prints the camera's focal lengths and principal point.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagInputPath,
				Usage: "directory containing calibration images and videos",
			},
			&cli.StringFlag{
				Name:  flagOutputDir,
				Usage: "directory the output folders are created in",
				Value: defaults.OutputRoot,
			},
			&cli.StringFlag{
				Name:  flagIntrinsicsJSON,
				Usage: "optional path to write the calibration result as JSON",
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "log level (debug, info, warn, error)",
				Value:   defaults.LogLevel,
				EnvVars: []string{config.EnvLogLevel},
			},
			&cli.IntFlag{
				Name:  flagFrameStride,
				Usage: "process every Nth video frame",
				Value: defaults.FrameStride,
			},
			&cli.IntFlag{
				Name:  flagMaxFrames,
				Usage: "stop reading a video after this many detections",
				Value: defaults.MaxFramesPerVideo,
			},
			&cli.BoolFlag{
				Name:  flagNoSubPix,
				Usage: "skip sub-pixel refinement of detected corners",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, caps)
		},
	}
}

func configFromFlags(c *cli.Context) config.Config {
	cfg := config.Default()
	cfg.InputPath = c.String(flagInputPath)
	cfg.OutputRoot = c.String(flagOutputDir)
	cfg.IntrinsicsJSON = c.String(flagIntrinsicsJSON)
	cfg.LogLevel = c.String(flagLogLevel)
	cfg.FrameStride = c.Int(flagFrameStride)
	cfg.MaxFramesPerVideo = c.Int(flagMaxFrames)
	cfg.SubPixel = !c.Bool(flagNoSubPix)
	return cfg
}

func run(c *cli.Context, caps capabilities) error {
	cfg := configFromFlags(c)
	if cfg.InputPath == "" {
		fmt.Fprintln(c.App.Writer, missingInputMessage)
		return nil
	}

	logger, err := logging.NewLogger("calibration", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Debugf("camera-calibration %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	detector, solver, videos := caps(cfg)
	calib, err := calibration.New(cfg, detector, solver, videos,
		calibration.WithLogger(logger),
		calibration.WithOutput(c.App.Writer),
	)
	if err != nil {
		return err
	}
	board := calib.Board()
	logger.Debugf("searching %s for a %dx%d inner-corner chessboard", cfg.InputPath, board.Cols, board.Rows)

	summary, err := calib.Run(c.Context)
	if errors.Is(err, inputs.ErrNotDirectory) {
		return nil
	}
	if summary != nil && len(summary.Sources) > 0 {
		calibration.WriteSummary(c.App.ErrWriter, summary)
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(openCVCapabilities).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "camera-calibration: %v\n", err)
		stop()
		os.Exit(1)
	}
}
