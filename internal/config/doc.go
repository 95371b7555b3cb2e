// Package config holds the run configuration for the camera calibration tool.
//
// A Config carries everything a calibration run needs besides the vision
// backend itself: where to read inputs from, where to write annotated
// outputs, the board geometry, and the video sampling policy.
//
// # Defaults
//
// Default returns:
//   - 7x7 inner-corner chessboard with unit squares
//   - "*.jpg" images and "*.mov" videos, read non-recursively
//   - every 5th video frame is a detection candidate
//   - at most 240 detected frames are collected per video
//   - outputs are written below the current working directory
//
// # Environment
//
// The log level can be supplied through CAMCAL_LOG_LEVEL; the CLI binds the
// variable to its --log_level flag.
package config
