// Package memory is a process-local transaction store. Contents are lost on
// exit; it backs the "memory" data backend and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"expenses/internal/core"
	"expenses/internal/ports"
)

var _ ports.TransactionStore = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewSeeded returns a store pre-filled with txs; ids are reassigned.
func NewSeeded(txs []core.Transaction) *Store {
	s := New()
	for _, t := range txs {
		_, _ = s.Create(context.Background(), t)
	}
	return s
}

func (s *Store) Initialize(_ context.Context) error {
	return nil
}

// Create stores t under the next id. Ids are never reused, even after deletes.
func (s *Store) Create(_ context.Context, t core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items = append(s.items, t)
	return t.ID, nil
}

func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	out := append([]core.Transaction(nil), s.items...)
	s.mu.Unlock()

	// items are kept in insertion order, so a stable sort leaves ties by id.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
