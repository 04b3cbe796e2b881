package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prelimpro/prelimpro-backend/internal/reminders"
)

// setupTestRedis starts an in-process Redis for the test.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr
}

func TestMarkerRepo_TryMark(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := reminders.NewMarkerRepo(client)
	ctx := context.Background()
	deadline := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

	t.Run("claims the slot exactly once", func(t *testing.T) {
		claimed, err := repo.TryMark(ctx, "prelim-12345-6789", deadline)
		require.NoError(t, err)
		assert.True(t, claimed)

		// A second scan of the same project/deadline pair must not re-send.
		claimed, err = repo.TryMark(ctx, "prelim-12345-6789", deadline)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("different deadlines are independent slots", func(t *testing.T) {
		claimed, err := repo.TryMark(ctx, "prelim-12345-6789", deadline.AddDate(0, 0, 30))
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("different projects are independent slots", func(t *testing.T) {
		claimed, err := repo.TryMark(ctx, "prelim-99999-0000", deadline)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("Sent reflects the marker", func(t *testing.T) {
		sent, err := repo.Sent(ctx, "prelim-12345-6789", deadline)
		require.NoError(t, err)
		assert.True(t, sent)

		sent, err = repo.Sent(ctx, "prelim-never-seen", deadline)
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("marker expires after its TTL", func(t *testing.T) {
		claimed, err := repo.TryMark(ctx, "prelim-ttl-check", deadline)
		require.NoError(t, err)
		require.True(t, claimed)

		mr.FastForward(31 * 24 * time.Hour)

		claimed, err = repo.TryMark(ctx, "prelim-ttl-check", deadline)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}
