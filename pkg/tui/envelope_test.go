package tui

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	ev := CaptureStarted{OutputPath: "/captures/capture_20260825_120000.png", At: time.Now()}
	env, err := NewEnvelope(DomainTypeCaptureStarted, ev)
	require.NoError(t, err)

	b, err := env.MarshalJSONBytes()
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, DomainTypeCaptureStarted, decoded.Type)

	var payload CaptureStarted
	require.NoError(t, json.Unmarshal(decoded.Payload, &payload))
	require.Equal(t, ev.OutputPath, payload.OutputPath)
}

func TestEnvelope_EmptyTypeRejected(t *testing.T) {
	_, err := NewEnvelope("", nil)
	require.Error(t, err)
}

func TestEnvelope_NilPayload(t *testing.T) {
	env, err := NewEnvelope(UITypeCaptureRequest, nil)
	require.NoError(t, err)
	require.Empty(t, env.Payload)
}
