package recordstore

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory. It is the default backend;
// contents are lost on restart, which is fine for development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string]map[string]Record{},
	}
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Record, 0, len(s.records[collection]))
	for _, record := range s.records[collection] {
		docs = append(docs, record.clone())
	}
	return docs, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return record.clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, id string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[collection] == nil {
		s.records[collection] = map[string]Record{}
	}
	s.records[collection][id] = record.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.records[collection], id)
	return nil
}

// clone shields stored records from caller mutation. Nested values are
// shared; handlers treat records as read-only below the top level.
func (r Record) clone() Record {
	copied := make(Record, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}
