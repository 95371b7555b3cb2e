package calibration

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteIntrinsics(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{Intrinsics: Intrinsics{Fx: 1012.75, Fy: 1009.5, Ppx: 633.25, Ppy: 361}}

	if err := WriteIntrinsics(&buf, r); err != nil {
		t.Fatalf("WriteIntrinsics failed: %v", err)
	}

	want := "Camera intrinsic parameters:\n" +
		"Focal Lengths (fx, fy): 1012.75 , 1009.5\n" +
		"Principal Point Coordinates (cx, cy): 633.25 , 361\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, &Summary{
		Sources: []SourceStats{
			{Kind: SourceImages, Source: "/data", Candidates: 12, Detected: 9},
			{Kind: SourceVideo, Source: "/data/a.mov", Candidates: 80, Detected: 31},
			{Kind: SourceVideo, Source: "/data/b.mov", Skipped: true},
		},
		Views: 40,
	})

	out := buf.String()
	for _, want := range []string{"CANDIDATES", "/data/a.mov", "31", "skipped", "40"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
