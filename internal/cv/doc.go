// Package cv implements the calibration capabilities on top of OpenCV via
// gocv: chessboard corner finding, the camera calibration solver, and video
// frame decoding.
//
// Everything that needs cgo and a local OpenCV installation lives here, so
// the rest of the module builds and tests without it.
package cv
