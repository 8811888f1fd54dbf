package services

import "sync"

// BatchStore holds one live Batch per login session. Nothing here survives
// a restart; a submitted batch is persisted as an order before clearing.
type BatchStore struct {
	mu      sync.Mutex
	batches map[string]*Batch
}

func NewBatchStore() *BatchStore {
	return &BatchStore{batches: make(map[string]*Batch)}
}

// Get returns the session's batch, creating it on first use.
func (s *BatchStore) Get(sessionID string) *Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[sessionID]
	if !ok {
		batch = NewBatch()
		s.batches[sessionID] = batch
	}
	return batch
}

// Drop forgets a session's batch, e.g. on logout.
func (s *BatchStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, sessionID)
}
