package capture

import "github.com/pkg/errors"

// ErrCaptureInProgress is returned when a capture is requested while another
// one is still running. The running capture is unaffected; the new request is
// rejected, not queued.
var ErrCaptureInProgress = errors.New("capture already in progress")
