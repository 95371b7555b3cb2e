// Package calibration drives a chessboard camera calibration run.
//
// A run scans one directory for still images and videos, searches each
// image and every Nth video frame for the chessboard, and collects a
// correspondence between the known board geometry and the detected corners
// for every view where the board was found. Once all inputs are consumed,
// the collected correspondences go to the solver in a single call and the
// recovered intrinsics are reported.
//
// # Capabilities
//
// Corner finding, frame decoding and the calibration solver are not
// implemented here. They are supplied through three interfaces:
//   - Detector: finds the board's inner corners in an intensity image
//   - Solver: recovers intrinsics and distortion from correspondences
//   - VideoOpener: yields decoded frames of a video file
//
// The gocv-backed implementations live in internal/cv. Tests in this
// package use in-memory fakes.
//
// # Accumulation
//
// Correspondences are an explicit value passed through every step; nothing
// is kept in package state. Image-derived and video-derived views are
// combined into one calibration.
//
// # Error Handling
//
// A run does not stop for a single bad input. Unreadable images, videos
// that fail to open, and views without a board are logged and skipped. Run
// only returns an error for an unusable input path, an output folder that
// cannot be created, a cancelled context, or a solver failure. An empty
// correspondence set is reported, not returned as an error.
package calibration
