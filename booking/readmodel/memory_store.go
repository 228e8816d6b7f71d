package readmodel

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and for replay verification.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]BookingRow
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]BookingRow)}
}

// Get returns the row for the given booking id, or ErrBookingRowNotFound.
func (s *MemoryStore) Get(ctx context.Context, bookingID string) (BookingRow, error) {
	if err := ctx.Err(); err != nil {
		return BookingRow{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[bookingID]
	if !ok {
		return BookingRow{}, ErrBookingRowNotFound
	}

	return row, nil
}

// Upsert inserts or replaces the row keyed by its booking id.
func (s *MemoryStore) Upsert(ctx context.Context, row BookingRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[row.BookingID] = row

	return nil
}

// Delete removes the row for the given booking id.
func (s *MemoryStore) Delete(ctx context.Context, bookingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, bookingID)

	return nil
}

// All returns every row ordered by booking id.
func (s *MemoryStore) All(ctx context.Context) ([]BookingRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]BookingRow, 0, len(s.rows))
	for _, row := range s.rows {
		all = append(all, row)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].BookingID < all[j].BookingID })

	return all, nil
}
