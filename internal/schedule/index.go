package schedule

import (
	"errors"
	"sync"
)

var (
	ErrSlotConflict = errors.New("slot already occupied")
	ErrNotOccupied  = errors.New("slot is not occupied")
)

type slotKey struct {
	hour  int
	court int
}

// Index is the in-memory occupancy view: date -> (hour, court) -> booking id.
// It is a derived cache over the booking store, rebuilt on startup, and is
// never the source of truth. Release removes entries, so canceled slots do
// not accumulate.
type Index struct {
	mu   sync.RWMutex
	days map[string]map[slotKey]string
}

func NewIndex() *Index {
	return &Index{days: make(map[string]map[slotKey]string)}
}

// IsFree reports whether the slot has no occupant.
func (ix *Index) IsFree(date string, hour, court int) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	day, ok := ix.days[date]
	if !ok {
		return true
	}
	_, occupied := day[slotKey{hour, court}]
	return !occupied
}

// Occupant returns the booking id holding the slot, if any.
func (ix *Index) Occupant(date string, hour, court int) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	day, ok := ix.days[date]
	if !ok {
		return "", false
	}
	id, occupied := day[slotKey{hour, court}]
	return id, occupied
}

// OccupantsForDate returns a snapshot of occupied courts per hour for one
// date. The copy is taken under a single read lock, so a caller never sees
// a half-applied write.
func (ix *Index) OccupantsForDate(date string) map[int][]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make(map[int][]int)
	for key := range ix.days[date] {
		out[key.hour] = append(out[key.hour], key.court)
	}
	return out
}

// Reserve marks the slot occupied by bookingID. Fails with ErrSlotConflict
// if any occupant is already recorded.
func (ix *Index) Reserve(date string, hour, court int, bookingID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	day, ok := ix.days[date]
	if !ok {
		day = make(map[slotKey]string)
		ix.days[date] = day
	}

	key := slotKey{hour, court}
	if _, occupied := day[key]; occupied {
		return ErrSlotConflict
	}
	day[key] = bookingID
	return nil
}

// Release clears the slot. Fails with ErrNotOccupied if it was free.
func (ix *Index) Release(date string, hour, court int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	day, ok := ix.days[date]
	if !ok {
		return ErrNotOccupied
	}

	key := slotKey{hour, court}
	if _, occupied := day[key]; !occupied {
		return ErrNotOccupied
	}
	delete(day, key)
	if len(day) == 0 {
		delete(ix.days, date)
	}
	return nil
}

// Reset drops all entries. Used before a rebuild from the store.
func (ix *Index) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.days = make(map[string]map[slotKey]string)
}
