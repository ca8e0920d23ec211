package tui

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// RegisterUIForwarder bridges UI messages into the running bubbletea program.
func RegisterUIForwarder(bus *Bus, p *tea.Program) {
	bus.AddHandler("scopegrab-ui-forward", TopicUIMessages, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return errors.Wrap(err, "unmarshal ui envelope")
		}

		switch env.Type {
		case UITypeCaptureStarted:
			var ev CaptureStarted
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture started payload")
			}
			p.Send(CaptureStartedMsg{Event: ev})
		case UITypeCaptureLine:
			var ev CaptureLine
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture line payload")
			}
			p.Send(CaptureLineMsg{Event: ev})
		case UITypeCaptureFinished:
			var ev CaptureFinished
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture finished payload")
			}
			p.Send(CaptureFinishedMsg{Event: ev})
		case UITypeGallerySnapshot:
			var snap GallerySnapshot
			if err := json.Unmarshal(env.Payload, &snap); err != nil {
				return errors.Wrap(err, "unmarshal gallery snapshot payload")
			}
			p.Send(GallerySnapshotMsg{Snapshot: snap})
		case UITypeArtifactDeleted:
			var ev ArtifactDeleted
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal artifact deleted payload")
			}
			p.Send(ArtifactDeletedMsg{Event: ev})
		case UITypeEventAppend:
			var entry EventLogEntry
			if err := json.Unmarshal(env.Payload, &entry); err != nil {
				return errors.Wrap(err, "unmarshal event payload")
			}
			p.Send(EventLogAppendMsg{Entry: entry})
		}
		return nil
	})
}
