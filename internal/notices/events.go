package notices

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventChannelPrefix = "notice:events:" // Pub/Sub channel per document: notice:events:{public_id}

// Event is published on every lifecycle transition so connected clients can
// refresh without polling.
type Event struct {
	NoticeID  string    `json:"notice_id"`
	ProjectID string    `json:"project_id"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// Publisher pushes lifecycle events to Redis Pub/Sub. A nil Publisher is a
// no-op so tests and the worker can skip wiring it.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish is best effort: delivery of the event never blocks or fails the
// transition it describes.
func (p *Publisher) Publish(ctx context.Context, e Event) {
	if p == nil || p.client == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	payload, err := json.Marshal(e)
	if err != nil {
		log.Printf("notices: failed to marshal event for %s: %v", e.NoticeID, err)
		return
	}

	if err := p.client.Publish(ctx, eventChannelPrefix+e.NoticeID, payload).Err(); err != nil {
		log.Printf("notices: failed to publish event for %s: %v", e.NoticeID, err)
	}
}

// EventChannel returns the Pub/Sub channel name for a document.
func EventChannel(noticeID string) string {
	return eventChannelPrefix + noticeID
}
