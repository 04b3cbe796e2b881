package notices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("forward steps of one rank are allowed", func(t *testing.T) {
		assert.True(t, CanTransition(StatusDraft, StatusGenerated))
		assert.True(t, CanTransition(StatusGenerated, StatusSent))
		assert.True(t, CanTransition(StatusSent, StatusDelivered))
		assert.True(t, CanTransition(StatusDelivered, StatusProofOfService))
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		assert.False(t, CanTransition(StatusDraft, StatusSent))
		assert.False(t, CanTransition(StatusGenerated, StatusDelivered))
		assert.False(t, CanTransition(StatusSent, StatusProofOfService))
	})

	t.Run("moving backwards is rejected", func(t *testing.T) {
		assert.False(t, CanTransition(StatusSent, StatusGenerated))
		assert.False(t, CanTransition(StatusDelivered, StatusDraft))
		assert.False(t, CanTransition(StatusSent, StatusSent))
	})

	t.Run("void is reachable from any non-terminal status", func(t *testing.T) {
		assert.True(t, CanTransition(StatusDraft, StatusVoid))
		assert.True(t, CanTransition(StatusGenerated, StatusVoid))
		assert.True(t, CanTransition(StatusSent, StatusVoid))
		assert.True(t, CanTransition(StatusDelivered, StatusVoid))
	})

	t.Run("terminal statuses stay terminal", func(t *testing.T) {
		assert.False(t, CanTransition(StatusProofOfService, StatusVoid))
		assert.False(t, CanTransition(StatusVoid, StatusVoid))
		assert.False(t, CanTransition(StatusVoid, StatusDraft))
	})

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, CanTransition("archived", StatusSent))
		assert.False(t, CanTransition(StatusDraft, "archived"))
	})
}
