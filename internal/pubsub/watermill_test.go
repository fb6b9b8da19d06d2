package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillBridge_PublishSubscribe(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, TopicMessagePosted, func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	sent := Message{
		Topic:    TopicMessagePosted,
		UserID:   "user:abc123",
		Payload:  []byte(`{"text":"hello"}`),
		Metadata: map[string]string{"conversation": "conversation:xyz"},
	}
	require.NoError(t, bridge.Publish(ctx, sent))

	select {
	case msg := <-received:
		assert.Equal(t, TopicMessagePosted, msg.Topic)
		assert.Equal(t, "user:abc123", msg.UserID)
		assert.Equal(t, []byte(`{"text":"hello"}`), msg.Payload)
		assert.Equal(t, "conversation:xyz", msg.Metadata["conversation"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestWatermillBridge_SubscriberOnlySeesItsTopic(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "other.topic", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bridge.Publish(ctx, Message{Topic: TopicMessagePosted, Payload: []byte("x")}))

	select {
	case <-received:
		t.Fatal("subscriber received a message from a different topic")
	case <-time.After(200 * time.Millisecond):
	}
}
