package optimistic

import "sync"

// StatusStore mirrors a list of rows that carry a status field (the buyer's
// requests screen). Mutations go through the three phases the screens used
// to hand-roll: ApplyOptimistic stages the new status and returns the prior
// one, Rollback restores it, and a confirmed mutation simply stands.
type StatusStore struct {
	mu       sync.Mutex
	statuses map[uint]string
}

func NewStatusStore() *StatusStore {
	return &StatusStore{statuses: make(map[uint]string)}
}

func (s *StatusStore) Status(id uint) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.statuses[id]
	return status, ok
}

// ApplyOptimistic stages status for the row and returns the previous value
// for a later Rollback. Unknown ids are staged from the empty string.
func (s *StatusStore) ApplyOptimistic(id uint, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.statuses[id]
	s.statuses[id] = status
	return prev
}

// Rollback restores the value captured by ApplyOptimistic.
func (s *StatusStore) Rollback(id uint, prev string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev == "" {
		delete(s.statuses, id)
		return
	}
	s.statuses[id] = prev
}

// Resync discards the local copy and adopts the authoritative statuses.
func (s *StatusStore) Resync(statuses map[uint]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = make(map[uint]string, len(statuses))
	for id, status := range statuses {
		s.statuses[id] = status
	}
}
