package tui

import (
	"time"

	"github.com/go-go-golems/scopegrab/pkg/capture"
	"github.com/go-go-golems/scopegrab/pkg/gallery"
)

type CaptureStarted struct {
	OutputPath string    `json:"output_path"`
	Instrument string    `json:"instrument,omitempty"`
	At         time.Time `json:"at"`
}

type CaptureLine struct {
	Line string    `json:"line"`
	At   time.Time `json:"at"`
}

type CaptureFinished struct {
	Outcome capture.Outcome `json:"outcome"`
	At      time.Time       `json:"at"`
}

// GallerySnapshot is the periodically re-derived view of the capture
// directory. Entries are ordered oldest to newest.
type GallerySnapshot struct {
	Dir     string             `json:"dir"`
	At      time.Time          `json:"at"`
	Entries []gallery.Artifact `json:"entries,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type ArtifactDeleted struct {
	Path  string    `json:"path"`
	At    time.Time `json:"at"`
	Error string    `json:"error,omitempty"`
}

type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type EventLogEntry struct {
	At     time.Time `json:"at"`
	Source string    `json:"source,omitempty"`
	Level  LogLevel  `json:"level,omitempty"`
	Text   string    `json:"text"`
}
