package tui

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-go-golems/scopegrab/pkg/gallery"
	"github.com/pkg/errors"
)

// GalleryWatcher re-scans the capture directory on an interval and publishes
// snapshots. The directory is a shared resource that the grabber and the
// operator's file manager both write to, so truth is re-derived every tick
// rather than cached and invalidated.
type GalleryWatcher struct {
	Dir      string
	Interval time.Duration
	Pub      message.Publisher

	lastSeen map[string]struct{}
}

func (w *GalleryWatcher) Run(ctx context.Context) error {
	if w.Dir == "" {
		return errors.New("missing Dir")
	}
	if w.Pub == nil {
		return errors.New("missing Publisher")
	}
	if w.Interval <= 0 {
		w.Interval = 1 * time.Second
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	for {
		if err := w.emitSnapshot(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (w *GalleryWatcher) emitSnapshot() error {
	snap := GallerySnapshot{Dir: w.Dir, At: time.Now()}

	entries, err := gallery.Scan(w.Dir)
	if err != nil {
		// an unlistable directory degrades to an empty gallery
		snap.Error = err.Error()
		w.lastSeen = nil
		return w.publishSnapshot(snap)
	}
	snap.Entries = entries

	seen := make(map[string]struct{}, len(entries))
	for _, a := range entries {
		seen[a.Path] = struct{}{}
	}
	if w.lastSeen != nil {
		for _, a := range entries {
			if _, ok := w.lastSeen[a.Path]; !ok {
				if err := w.publishAppeared(a); err != nil {
					return err
				}
			}
		}
	}
	w.lastSeen = seen

	return w.publishSnapshot(snap)
}

func (w *GalleryWatcher) publishSnapshot(snap GallerySnapshot) error {
	env, err := NewEnvelope(DomainTypeGallerySnapshot, snap)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return w.Pub.Publish(TopicScopegrabEvents, message.NewMessage(watermill.NewUUID(), b))
}

// publishAppeared feeds the event log when a file shows up that scopegrab did
// not necessarily create itself.
func (w *GalleryWatcher) publishAppeared(a gallery.Artifact) error {
	entry := EventLogEntry{At: time.Now(), Source: "gallery", Level: LogLevelInfo, Text: "new artifact: " + a.Path}
	env, err := NewEnvelope(UITypeEventAppend, entry)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return w.Pub.Publish(TopicUIMessages, message.NewMessage(watermill.NewUUID(), b))
}
