package capture

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Request describes one capture attempt. It is built once per attempt and
// never mutated afterwards.
type Request struct {
	// Instrument is an optional VISA name filter passed to the grabber.
	Instrument string `json:"instrument,omitempty"`
	// OutputPath is where the grabber must write the captured image.
	OutputPath string `json:"output_path"`
	Verbose    bool   `json:"verbose,omitempty"`
	Trace      bool   `json:"trace,omitempty"`
}

func (r Request) Validate() error {
	if r.OutputPath == "" {
		return errors.New("missing output path")
	}
	return nil
}

// Args builds the grabber command line. Boolean flags are presence flags.
func (r Request) Args() []string {
	args := []string{}
	if r.Instrument != "" {
		args = append(args, "--name", r.Instrument)
	}
	args = append(args, "--filename", r.OutputPath)
	if r.Verbose {
		args = append(args, "--verbose")
	}
	if r.Trace {
		args = append(args, "--trace")
	}
	return args
}

// DefaultFilename returns the timestamped capture path under dir. Timestamps
// have second resolution; two captures within the same second collide on
// purpose and are disambiguated downstream by path ordering.
func DefaultFilename(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("capture_%s.png", t.Format("20060102_150405")))
}
