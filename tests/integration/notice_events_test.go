package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prelimpro/prelimpro-backend/internal/notices"
)

func TestPublisher_PublishesLifecycleEvents(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	channel := notices.EventChannel("notice-12345-6789")

	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	// Wait for the subscription before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := notices.NewPublisher(client)
	pub.Publish(ctx, notices.Event{
		NoticeID:  "notice-12345-6789",
		ProjectID: "prelim-11111-2222",
		Status:    notices.StatusSent,
	})

	rctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	msg, err := sub.ReceiveMessage(rctx)
	require.NoError(t, err)
	assert.Equal(t, channel, msg.Channel)

	var e notices.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &e))
	assert.Equal(t, "notice-12345-6789", e.NoticeID)
	assert.Equal(t, "prelim-11111-2222", e.ProjectID)
	assert.Equal(t, notices.StatusSent, e.Status)
	assert.False(t, e.At.IsZero())
}

func TestPublisher_NilPublisherIsNoop(t *testing.T) {
	var pub *notices.Publisher
	// Must not panic.
	pub.Publish(context.Background(), notices.Event{NoticeID: "notice-1"})
}
