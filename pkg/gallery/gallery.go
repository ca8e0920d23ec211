package gallery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Artifact is one captured image, identified by its path. ModTime is the
// ordering key observed at scan time; the directory is externally mutable so
// nothing here is cached between calls.
type Artifact struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
}

// Scan lists the image files directly under dir (non-recursive, regular files
// only) ordered ascending by (modification time, path). The path tie-break
// keeps the order total when timestamps collide, e.g. two captures within the
// same second.
func Scan(dir string) ([]Artifact, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read capture dir")
	}

	out := make([]Artifact, 0, len(dirents))
	for _, e := range dirents {
		if e.IsDir() {
			continue
		}
		if _, ok := imageExts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// raced with a delete; the entry is gone, skip it
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		out = append(out, Artifact{Path: filepath.Join(dir, e.Name()), ModTime: info.ModTime()})
	}

	sort.SliceStable(out, func(i, j int) bool { return before(out[i], out[j]) })
	return out, nil
}

// before is the strict total order over artifacts: (mtime, path).
func before(a, b Artifact) bool {
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.Before(b.ModTime)
	}
	return a.Path < b.Path
}

func indexOf(entries []Artifact, path string) int {
	for i, a := range entries {
		if a.Path == path {
			return i
		}
	}
	return -1
}
