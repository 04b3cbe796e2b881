package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	markerKeyPrefix = "reminder:sent:" // reminder:sent:{project_id}:{deadline date}
	markerTTL       = 30 * 24 * time.Hour
)

// MarkerRepo remembers which project deadlines have already been reminded so
// the nightly scan never double-sends across runs or instances.
type MarkerRepo struct {
	client *redis.Client
}

func NewMarkerRepo(client *redis.Client) *MarkerRepo {
	return &MarkerRepo{client: client}
}

func markerKey(projectID string, deadline time.Time) string {
	return fmt.Sprintf("%s%s:%s", markerKeyPrefix, projectID, deadline.UTC().Format("2006-01-02"))
}

// TryMark claims the reminder slot. It returns true exactly once per
// project/deadline pair; the SETNX + TTL makes the claim atomic.
func (r *MarkerRepo) TryMark(ctx context.Context, projectID string, deadline time.Time) (bool, error) {
	ok, err := r.client.SetNX(ctx, markerKey(projectID, deadline), time.Now().UTC().Format(time.RFC3339), markerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	return ok, nil
}

// Sent reports whether the reminder for this project/deadline already went out.
func (r *MarkerRepo) Sent(ctx context.Context, projectID string, deadline time.Time) (bool, error) {
	n, err := r.client.Exists(ctx, markerKey(projectID, deadline)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reminder marker: %w", err)
	}
	return n > 0, nil
}
