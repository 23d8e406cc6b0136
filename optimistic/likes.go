// Package optimistic holds the client-side mirrors of mutable per-user
// collections. Low-stakes, high-frequency actions (like toggles, request
// cancellation) apply locally before the remote call and roll back to the
// exact prior value when it fails; a resync replaces the local copy wholesale
// whenever the change feed fires.
package optimistic

import (
	"context"
	"sync"
)

// ToggleFunc performs the remote like/unlike. wasLiked is the state before
// the toggle, matching the server's toggle contract.
type ToggleFunc func(ctx context.Context, propertyID uint, wasLiked bool) error

// LikeStore mirrors the set of property ids the user has liked.
type LikeStore struct {
	mu    sync.Mutex
	liked map[uint]bool
}

func NewLikeStore() *LikeStore {
	return &LikeStore{liked: make(map[uint]bool)}
}

func (s *LikeStore) Liked(propertyID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[propertyID]
}

// LikedIDs returns the current local like set.
func (s *LikeStore) LikedIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, len(s.liked))
	for id, liked := range s.liked {
		if liked {
			ids = append(ids, id)
		}
	}
	return ids
}

// Toggle flips the like state optimistically, then runs the remote call.
// On failure the local state is restored to what it was before the toggle
// and the error is returned for the caller to surface. The returned bool is
// the state after the call settles.
func (s *LikeStore) Toggle(ctx context.Context, propertyID uint, remote ToggleFunc) (bool, error) {
	s.mu.Lock()
	prev := s.liked[propertyID]
	s.liked[propertyID] = !prev
	s.mu.Unlock()

	if err := remote(ctx, propertyID, prev); err != nil {
		s.mu.Lock()
		s.liked[propertyID] = prev
		s.mu.Unlock()
		return prev, err
	}
	return !prev, nil
}

// Resync discards the local set and adopts the authoritative one.
func (s *LikeStore) Resync(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liked = make(map[uint]bool, len(ids))
	for _, id := range ids {
		s.liked[id] = true
	}
}
