package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAppliesBeforeRemoteConfirms(t *testing.T) {
	store := NewLikeStore()

	var observed bool
	liked, err := store.Toggle(context.Background(), 7, func(ctx context.Context, propertyID uint, wasLiked bool) error {
		// By the time the remote call runs, the local state has already
		// flipped.
		observed = store.Liked(propertyID)
		assert.False(t, wasLiked)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, observed)
	assert.True(t, store.Liked(7))
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	store := NewLikeStore()
	store.Resync([]uint{7, 9})

	failing := func(ctx context.Context, propertyID uint, wasLiked bool) error {
		return errors.New("network down")
	}

	// Unlike fails: the like must survive exactly as it was.
	liked, err := store.Toggle(context.Background(), 7, failing)
	require.Error(t, err)
	assert.True(t, liked)
	assert.True(t, store.Liked(7))

	// Like fails: no phantom like left behind.
	liked, err = store.Toggle(context.Background(), 12, failing)
	require.Error(t, err)
	assert.False(t, liked)
	assert.False(t, store.Liked(12))

	assert.ElementsMatch(t, []uint{7, 9}, store.LikedIDs())
}

func TestToggleRoundTrip(t *testing.T) {
	store := NewLikeStore()
	ok := func(ctx context.Context, propertyID uint, wasLiked bool) error { return nil }

	liked, err := store.Toggle(context.Background(), 3, ok)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = store.Toggle(context.Background(), 3, ok)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, store.LikedIDs())
}

func TestResyncReplacesLocalState(t *testing.T) {
	store := NewLikeStore()
	store.Resync([]uint{1, 2, 3})
	assert.True(t, store.Liked(2))

	// The authoritative store dropped 2 and added 5; local copy follows
	// wholesale, no merge.
	store.Resync([]uint{1, 3, 5})
	assert.False(t, store.Liked(2))
	assert.True(t, store.Liked(5))
	assert.ElementsMatch(t, []uint{1, 3, 5}, store.LikedIDs())
}
