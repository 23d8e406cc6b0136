package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStoreOptimisticCancel(t *testing.T) {
	store := NewStatusStore()
	store.Resync(map[uint]string{42: "pending"})

	// Cancel is optimistic: the list shows cancelled before the server
	// confirms.
	prev := store.ApplyOptimistic(42, "cancelled")
	assert.Equal(t, "pending", prev)

	status, ok := store.Status(42)
	assert.True(t, ok)
	assert.Equal(t, "cancelled", status)
}

func TestStatusStoreRollback(t *testing.T) {
	store := NewStatusStore()
	store.Resync(map[uint]string{42: "pending"})

	prev := store.ApplyOptimistic(42, "cancelled")
	store.Rollback(42, prev)

	status, ok := store.Status(42)
	assert.True(t, ok)
	assert.Equal(t, "pending", status)
}

func TestStatusStoreRollbackUnknownRow(t *testing.T) {
	store := NewStatusStore()

	prev := store.ApplyOptimistic(9, "cancelled")
	assert.Equal(t, "", prev)

	store.Rollback(9, prev)
	_, ok := store.Status(9)
	assert.False(t, ok)
}
