package infrastructure

import (
	"sync"
	"testing"
	"time"

	"salespulse/internal/domain"
)

func TestSnapshotStoreNilUntilFirstPublish(t *testing.T) {
	store := NewSnapshotStore()
	if store.Current() != nil {
		t.Fatal("store must start empty")
	}
}

func TestSnapshotStoreAtomicReplace(t *testing.T) {
	store := NewSnapshotStore()

	first := &domain.Snapshot{FetchedAt: time.Now()}
	store.Publish(first)
	if store.Current() != first {
		t.Fatal("publish did not take effect")
	}

	second := &domain.Snapshot{FetchedAt: time.Now()}
	store.Publish(second)
	if store.Current() != second {
		t.Fatal("replace did not take effect")
	}
}

func TestSnapshotStoreConcurrentReaders(t *testing.T) {
	store := NewSnapshotStore()
	store.Publish(&domain.Snapshot{FetchedAt: time.Now()})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if store.Current() == nil {
					t.Error("reader observed nil after publish")
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				store.Publish(&domain.Snapshot{FetchedAt: time.Now()})
			}
		}()
	}
	wg.Wait()
}
