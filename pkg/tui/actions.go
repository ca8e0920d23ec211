package tui

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
)

type CaptureRequested struct {
	At time.Time `json:"at"`
}

type DeleteRequested struct {
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// PublishCaptureRequest asks the capture runner to start a capture. Whether
// the request is accepted or rejected comes back as a capture.finished event;
// the publisher never blocks on the answer.
func PublishCaptureRequest(pub message.Publisher) error {
	return publishAction(pub, UITypeCaptureRequest, CaptureRequested{At: time.Now()})
}

func PublishDeleteRequest(pub message.Publisher, path string) error {
	if path == "" {
		return errors.New("missing artifact path")
	}
	return publishAction(pub, UITypeDeleteRequest, DeleteRequested{Path: path, At: time.Now()})
}

func publishAction(pub message.Publisher, typ string, payload any) error {
	if pub == nil {
		return errors.New("missing publisher")
	}
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return pub.Publish(TopicUIActions, message.NewMessage(watermill.NewUUID(), b))
}
