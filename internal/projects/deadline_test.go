package projects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputedDeadline(t *testing.T) {
	furnishing := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("mapped state yields furnishing date plus the table window", func(t *testing.T) {
		dl, clear := recomputedDeadline("California", &furnishing)
		require.NotNil(t, dl)
		assert.False(t, clear)
		assert.Equal(t, time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), *dl)
	})

	t.Run("unmapped state clears the stored deadline", func(t *testing.T) {
		dl, clear := recomputedDeadline("Guam", &furnishing)
		assert.Nil(t, dl)
		assert.True(t, clear)
	})

	t.Run("no furnishing date leaves the deadline alone", func(t *testing.T) {
		dl, clear := recomputedDeadline("California", nil)
		assert.Nil(t, dl)
		assert.False(t, clear)

		dl, clear = recomputedDeadline("Guam", nil)
		assert.Nil(t, dl)
		assert.False(t, clear)
	})
}
