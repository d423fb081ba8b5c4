package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"constituency_site/models"
)

// MemoryStore is an in-process RecordStore with the same observable
// behavior as MongoStore. It backs the package tests and handler tests.
type MemoryStore struct {
	mu          sync.RWMutex
	records     map[string]models.Record
	order       map[string]int
	seq         int
	unavailable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.Record),
		order:   make(map[string]int),
	}
}

// SetUnavailable makes every subsequent operation fail with
// ErrStoreUnavailable, simulating a store that never connected.
func (s *MemoryStore) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = down
}

func (s *MemoryStore) Create(ctx context.Context, rec models.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return "", ErrStoreUnavailable
	}

	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()

	id := rec.ID.Hex()
	s.records[id] = rec
	s.seq++
	s.order[id] = s.seq
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}

	existing, ok := s.records[id]
	if !ok {
		return nil
	}

	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	s.records[id] = rec
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}

	delete(s.records, id)
	delete(s.order, id)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, f Filter) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return nil, ErrStoreUnavailable
	}

	matched := []models.Record{}
	for _, rec := range s.records {
		if f.matches(rec) {
			matched = append(matched, rec)
		}
	}

	// Newest first, same as the Mongo sort on created_at.
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.order[a.ID.Hex()] > s.order[b.ID.Hex()]
	})
	return matched, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}
	return nil
}

func (f Filter) matches(rec models.Record) bool {
	if f.Block != "" && rec.Block != f.Block {
		return false
	}
	if f.Panchayat != "" && rec.Panchayat != f.Panchayat {
		return false
	}
	if f.Name != "" && !containsFold(rec.Name, f.Name) {
		return false
	}
	if f.Designation != "" && !containsFold(rec.Designation, f.Designation) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
