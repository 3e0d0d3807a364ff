// Package snapshot archives the per-node result buffers of completed runs
// so callers can inspect intermediate images after the fact. Entries are
// serialized (msgpack + zstd by default) and evicted by TTL.
package snapshot

import (
	"fmt"
	"sync"
	"time"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/pkg/serialization"
)

// ErrNotFound is returned when no snapshot exists for a run ID.
var ErrNotFound = fmt.Errorf("snapshot not found")

// Config holds store settings.
type Config struct {
	// TTL after which a snapshot becomes eligible for eviction. Zero
	// means entries never expire.
	TTL time.Duration
	// MaxEntries caps the store; the oldest entry is evicted first.
	// Zero means unbounded.
	MaxEntries int
	// Serializer overrides the default msgpack+zstd pipeline.
	Serializer *serialization.Serializer
}

type entry struct {
	data      []byte
	createdAt time.Time
}

// Store is a thread-safe in-memory snapshot archive keyed by run ID.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	serializer *serialization.Serializer
}

// NewStore creates a snapshot store.
func NewStore(config Config) *Store {
	if config.Serializer == nil {
		config.Serializer = serialization.DefaultSerializer()
	}
	return &Store{
		entries:    make(map[string]entry),
		ttl:        config.TTL,
		maxEntries: config.MaxEntries,
		serializer: config.Serializer,
	}
}

// Record serializes and stores the result set of one run.
func (s *Store) Record(runID string, results map[string]*imaging.Buffer) error {
	data, err := s.serializer.Serialize(results)
	if err != nil {
		return fmt.Errorf("snapshot %q: %w", runID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.entries[runID] = entry{data: data, createdAt: time.Now()}
	return nil
}

// Load returns the result set recorded for a run.
func (s *Store) Load(runID string) (map[string]*imaging.Buffer, error) {
	s.mu.Lock()
	e, ok := s.entries[runID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, runID)
	}
	if s.ttl > 0 && time.Since(e.createdAt) > s.ttl {
		s.Delete(runID)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, runID)
	}

	var results map[string]*imaging.Buffer
	if err := s.serializer.Deserialize(e.data, &results); err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", runID, err)
	}
	return results, nil
}

// Delete removes a snapshot.
func (s *Store) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, runID)
}

// Len returns the number of live snapshots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLocked drops expired entries, then the oldest entries while over
// capacity. Caller holds the lock.
func (s *Store) evictLocked() {
	if s.ttl > 0 {
		for id, e := range s.entries {
			if time.Since(e.createdAt) > s.ttl {
				delete(s.entries, id)
			}
		}
	}
	if s.maxEntries <= 0 {
		return
	}
	for len(s.entries) >= s.maxEntries {
		oldestID := ""
		var oldest time.Time
		for id, e := range s.entries {
			if oldestID == "" || e.createdAt.Before(oldest) {
				oldestID = id
				oldest = e.createdAt
			}
		}
		delete(s.entries, oldestID)
	}
}
