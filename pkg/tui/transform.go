package tui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
)

// RegisterDomainToUITransformer turns domain events into UI messages plus
// human-readable event log entries.
func RegisterDomainToUITransformer(bus *Bus) {
	bus.AddHandler("scopegrab-domain-to-ui", TopicScopegrabEvents, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return errors.Wrap(err, "unmarshal domain envelope")
		}

		publishUI := func(uiType string, payload any) error {
			uiEnv, err := NewEnvelope(uiType, payload)
			if err != nil {
				return err
			}
			uiBytes, err := uiEnv.MarshalJSONBytes()
			if err != nil {
				return err
			}
			if err := bus.Publisher.Publish(TopicUIMessages, message.NewMessage(watermill.NewUUID(), uiBytes)); err != nil {
				return errors.Wrap(err, "publish ui message")
			}
			return nil
		}

		publishEventText := func(at time.Time, source string, level LogLevel, text string) error {
			return publishUI(UITypeEventAppend, EventLogEntry{At: at, Source: source, Level: level, Text: text})
		}

		switch env.Type {
		case DomainTypeCaptureStarted:
			var ev CaptureStarted
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture started")
			}
			if err := publishUI(UITypeCaptureStarted, ev); err != nil {
				return err
			}
			return publishEventText(ev.At, "capture", LogLevelInfo, "capture started: "+ev.OutputPath)
		case DomainTypeCaptureLine:
			var ev CaptureLine
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture line")
			}
			// Lines go to the console view only; the event log would drown in
			// grabber chatter otherwise.
			return publishUI(UITypeCaptureLine, ev)
		case DomainTypeCaptureFinished:
			var ev CaptureFinished
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal capture finished")
			}
			if err := publishUI(UITypeCaptureFinished, ev); err != nil {
				return err
			}
			if ev.Outcome.OK {
				return publishEventText(ev.At, "capture", LogLevelInfo, "capture ok: "+ev.Outcome.ArtifactPath)
			}
			return publishEventText(ev.At, "capture", LogLevelError, "capture failed: "+ev.Outcome.Reason)
		case DomainTypeGallerySnapshot:
			var snap GallerySnapshot
			if err := json.Unmarshal(env.Payload, &snap); err != nil {
				return errors.Wrap(err, "unmarshal gallery snapshot")
			}
			return publishUI(UITypeGallerySnapshot, snap)
		case DomainTypeArtifactDeleted:
			var ev ArtifactDeleted
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal artifact deleted")
			}
			if err := publishUI(UITypeArtifactDeleted, ev); err != nil {
				return err
			}
			if ev.Error != "" {
				return publishEventText(ev.At, "gallery", LogLevelError, fmt.Sprintf("delete failed: %s: %s", ev.Path, ev.Error))
			}
			return publishEventText(ev.At, "gallery", LogLevelInfo, "deleted: "+ev.Path)
		default:
			return nil
		}
	})
}
