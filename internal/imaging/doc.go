// Package imaging covers the pure-Go image handling around corner detection.
//
// It decodes calibration stills, converts them to the single-channel
// intensity images the corner finder works on, marks detected corners for
// visual inspection, and writes the annotated results to disk. Nothing here
// depends on OpenCV, so the package is usable and testable without it.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X growing
// rightward and Y downward. Corner positions are sub-pixel and carried as
// r2.Point values.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. DrawChessboardCorners and Grayscale
// never modify their input and return new images.
//
// # Overlay Style
//
// Each board row is drawn in its own hue, red for the first row through to
// magenta for the last, with consecutive corners connected. A correctly
// ordered detection shows a zig-zag that sweeps the whole board.
package imaging
