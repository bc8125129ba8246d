package infrastructure

import (
	"sync/atomic"

	"salespulse/internal/domain"
)

// SnapshotStore holds the published snapshot behind a single atomic
// pointer. Readers always see either the previous complete snapshot
// or the new one, never a partial state.
type SnapshotStore struct {
	current atomic.Pointer[domain.Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Publish(snapshot *domain.Snapshot) {
	s.current.Store(snapshot)
}

// Current returns nil until the first successful publish.
func (s *SnapshotStore) Current() *domain.Snapshot {
	return s.current.Load()
}
