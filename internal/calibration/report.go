package calibration

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"
)

// SourceKind tells image and video rows of a Summary apart.
type SourceKind string

const (
	SourceImages SourceKind = "images"
	SourceVideo  SourceKind = "video"
)

// SourceStats counts detection attempts for one input source. All still
// images share a single row; each video gets its own.
type SourceStats struct {
	Kind       SourceKind
	Source     string
	Candidates int
	Detected   int
	Skipped    bool
}

// Summary describes a finished run.
type Summary struct {
	Sources []SourceStats
	Views   int
	Result  *Result
}

// WriteIntrinsics prints the focal lengths and principal point.
func WriteIntrinsics(w io.Writer, r *Result) error {
	in := r.Intrinsics
	_, err := fmt.Fprintf(w,
		"Camera intrinsic parameters:\nFocal Lengths (fx, fy): %v , %v\nPrincipal Point Coordinates (cx, cy): %v , %v\n",
		in.Fx, in.Fy, in.Ppx, in.Ppy)
	return err
}

// FormatMatrix renders a matrix for log output.
func FormatMatrix(m mat.Matrix) fmt.Formatter {
	return mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
}

// WriteSummary renders the per-source counts as a table.
func WriteSummary(w io.Writer, s *Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Kind", "Source", "Candidates", "Detected"})
	for _, src := range s.Sources {
		detected := fmt.Sprint(src.Detected)
		if src.Skipped {
			detected = "skipped"
		}
		t.AppendRow(table.Row{src.Kind, src.Source, src.Candidates, detected})
	}
	t.AppendFooter(table.Row{"", "views", "", s.Views})
	t.Render()
}
