package usecase

import (
	"sync"

	"github.com/cableworks/storefront/internal/domain"
)

// SelectionListener is notified with a snapshot of the members after every change
type SelectionListener func(members []domain.Product)

// ComparisonSelection is a capped, order-preserving set of products chosen for comparison.
// Members keep selection order. Adds at capacity and duplicate adds are silent no-ops;
// callers use CanAddMore and IsMember to disable the triggering control instead.
type ComparisonSelection struct {
	mutex     sync.RWMutex
	members   []domain.Product
	listeners map[int]SelectionListener
	nextID    int
}

// NewComparisonSelection creates an empty selection
func NewComparisonSelection() *ComparisonSelection {
	return &ComparisonSelection{
		members:   make([]domain.Product, 0, domain.MaxComparisonItems),
		listeners: make(map[int]SelectionListener),
	}
}

// Add appends the product unless the selection is full or already contains it.
// Returns true when the selection changed.
func (s *ComparisonSelection) Add(product domain.Product) bool {
	s.mutex.Lock()
	if len(s.members) >= domain.MaxComparisonItems || s.indexOf(product.ID) >= 0 {
		s.mutex.Unlock()
		return false
	}
	s.members = append(s.members, product)
	snapshot, listeners := s.snapshotLocked()
	s.mutex.Unlock()

	notify(listeners, snapshot)
	return true
}

// Remove drops the member with the given ID. Returns true when the selection changed.
func (s *ComparisonSelection) Remove(productID string) bool {
	s.mutex.Lock()
	idx := s.indexOf(productID)
	if idx < 0 {
		s.mutex.Unlock()
		return false
	}
	s.members = append(s.members[:idx], s.members[idx+1:]...)
	snapshot, listeners := s.snapshotLocked()
	s.mutex.Unlock()

	notify(listeners, snapshot)
	return true
}

// Toggle removes the product if it is a member, otherwise tries to add it.
// Returns true when the selection changed.
func (s *ComparisonSelection) Toggle(product domain.Product) bool {
	if s.IsMember(product.ID) {
		return s.Remove(product.ID)
	}
	return s.Add(product)
}

// Clear empties the selection
func (s *ComparisonSelection) Clear() {
	s.mutex.Lock()
	if len(s.members) == 0 {
		s.mutex.Unlock()
		return
	}
	s.members = s.members[:0]
	snapshot, listeners := s.snapshotLocked()
	s.mutex.Unlock()

	notify(listeners, snapshot)
}

// Refresh replaces member snapshots with newer catalog data, matched by ID.
// Order and membership are unchanged; unknown products are ignored.
func (s *ComparisonSelection) Refresh(products []domain.Product) {
	s.mutex.Lock()
	changed := false
	for _, p := range products {
		if idx := s.indexOf(p.ID); idx >= 0 {
			s.members[idx] = p
			changed = true
		}
	}
	if !changed {
		s.mutex.Unlock()
		return
	}
	snapshot, listeners := s.snapshotLocked()
	s.mutex.Unlock()

	notify(listeners, snapshot)
}

// IsMember reports whether the product is selected
func (s *ComparisonSelection) IsMember(productID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.indexOf(productID) >= 0
}

// CanAddMore reports whether another product fits
func (s *ComparisonSelection) CanAddMore() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.members) < domain.MaxComparisonItems
}

// CanCompare reports whether enough products are selected to show a matrix
func (s *ComparisonSelection) CanCompare() bool {
	return s.Len() >= domain.MinComparisonItems
}

// Len returns the number of members
func (s *ComparisonSelection) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.members)
}

// Members returns a copy of the members in selection order
func (s *ComparisonSelection) Members() []domain.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]domain.Product(nil), s.members...)
}

// IDs returns member IDs in selection order
func (s *ComparisonSelection) IDs() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	ids := make([]string, len(s.members))
	for i, m := range s.members {
		ids[i] = m.ID
	}
	return ids
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously after the mutation, outside the lock.
func (s *ComparisonSelection) Subscribe(listener SelectionListener) func() {
	s.mutex.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mutex.Unlock()

	return func() {
		s.mutex.Lock()
		delete(s.listeners, id)
		s.mutex.Unlock()
	}
}

// indexOf must be called with the mutex held
func (s *ComparisonSelection) indexOf(productID string) int {
	for i, m := range s.members {
		if m.ID == productID {
			return i
		}
	}
	return -1
}

// snapshotLocked copies members and listeners while the mutex is held
func (s *ComparisonSelection) snapshotLocked() ([]domain.Product, []SelectionListener) {
	snapshot := append([]domain.Product(nil), s.members...)
	listeners := make([]SelectionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	return snapshot, listeners
}

func notify(listeners []SelectionListener, members []domain.Product) {
	for _, l := range listeners {
		l(members)
	}
}
