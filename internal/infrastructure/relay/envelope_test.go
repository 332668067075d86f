package relay

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	userID  string
	event   string
	payload any
}

func (s *recordingSink) EmitToUser(_ context.Context, userID, event string, payload any) error {
	s.userID, s.event, s.payload = userID, event, payload
	return nil
}

func TestEnvelopeForwarding(t *testing.T) {
	env, err := NewEnvelope("b", "new-notification", map[string]any{"message": "hi", "read": false})
	require.NoError(t, err)
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"b","event":"new-notification","data":{"message":"hi","read":false}}`, string(raw))

	sink := &recordingSink{}
	require.NoError(t, Forward(context.Background(), sink, raw))
	assert.Equal(t, "b", sink.userID)
	assert.Equal(t, "new-notification", sink.event)
	data, ok := sink.payload.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"message":"hi","read":false}`, string(data))
}

func TestEnvelopeWithoutPayload(t *testing.T) {
	env, err := NewEnvelope("b", "refresh-requests", nil)
	require.NoError(t, err)
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"b","event":"refresh-requests"}`, string(raw))

	sink := &recordingSink{}
	require.NoError(t, Forward(context.Background(), sink, raw))
	assert.Nil(t, sink.payload)
}

func TestDecodeEnvelopeRejects(t *testing.T) {
	for _, raw := range []string{`not json`, `{"event":"x"}`, `{"user_id":"b"}`} {
		_, err := DecodeEnvelope([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestDiscardNeverFails(t *testing.T) {
	assert.NoError(t, Discard{}.EmitToUser(context.Background(), "b", "new-notification", nil))
}

func TestPublishersRequireConfiguration(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic")
	assert.Error(t, err)
	_, err = NewKafkaConsumer([]string{"localhost:9092"}, "", "topic", nil)
	assert.Error(t, err)
}
