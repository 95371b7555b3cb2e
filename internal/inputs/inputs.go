// Package inputs lists the calibration inputs found in a directory.
package inputs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotDirectory is returned when the input path does not name a directory.
var ErrNotDirectory = errors.New("not a directory")

// Set holds the image and video files found directly in a directory.
// Both lists are sorted by path.
type Set struct {
	Images []string
	Videos []string
}

// Empty reports whether neither images nor videos were found.
func (s Set) Empty() bool {
	return len(s.Images) == 0 && len(s.Videos) == 0
}

// Scan lists regular files in dir whose extension is exactly imageExt or
// videoExt. Subdirectories are not descended into.
func Scan(dir, imageExt, videoExt string) (Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
		}
		return Set{}, fmt.Errorf("failed to stat input path: %w", err)
	}
	if !info.IsDir() {
		return Set{}, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Set{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var set Set
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch filepath.Ext(entry.Name()) {
		case imageExt:
			set.Images = append(set.Images, path)
		case videoExt:
			set.Videos = append(set.Videos, path)
		}
	}

	sort.Strings(set.Images)
	sort.Strings(set.Videos)
	return set, nil
}
