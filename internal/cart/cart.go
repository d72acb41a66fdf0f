// Package cart holds per-session carts in memory. A session maps to one
// browsing session of the storefront (cookie-scoped); carts never touch
// the database. Unlike the single-threaded UI runtime this design comes
// from, HTTP handlers run concurrently, so every read-modify-write is
// guarded by one mutex to keep the invariants: a line's quantity is never
// observably zero or negative, and a line hitting zero is removed, never
// stored.
package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is what gets added to a cart: a priced menu entry.
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Line is an item plus its quantity. Quantity >= 1 for any line present.
type Line struct {
	Item
	Quantity int
}

type session struct {
	lines   []*Line // insertion order, preserved for display
	touched time.Time
}

func (s *session) find(id string) (int, *Line) {
	for i, l := range s.lines {
		if l.ID == id {
			return i, l
		}
	}
	return -1, nil
}

// Store owns all active carts.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*session),
		now:      time.Now,
	}
}

func (st *Store) session(sid uuid.UUID) *session {
	s, ok := st.sessions[sid]
	if !ok {
		s = &session{}
		st.sessions[sid] = s
	}
	s.touched = st.now()
	return s
}

// AddItem inserts a new line with quantity 1, or bumps the quantity of the
// existing line for the same item ID. Never creates a duplicate line.
func (st *Store) AddItem(sid uuid.UUID, item Item) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(sid)
	if _, l := s.find(item.ID); l != nil {
		l.Quantity++
		return
	}
	s.lines = append(s.lines, &Line{Item: item, Quantity: 1})
}

// UpdateQuantity sets a line's quantity exactly. A quantity <= 0 removes
// the line. An unknown ID is a no-op.
func (st *Store) UpdateQuantity(sid uuid.UUID, id string, quantity int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(sid)
	i, l := s.find(id)
	if l == nil {
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return
	}
	l.Quantity = quantity
}

// RemoveItem drops a line if present.
func (st *Store) RemoveItem(sid uuid.UUID, id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(sid)
	if i, l := s.find(id); l != nil {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// Clear empties the cart.
func (st *Store) Clear(sid uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.session(sid).lines = nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (st *Store) Lines(sid uuid.UUID) []Line {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(sid)
	out := make([]Line, len(s.lines))
	for i, l := range s.lines {
		out[i] = *l
	}
	return out
}

// Total returns Σ(price × quantity) over all lines.
func (st *Store) Total(sid uuid.UUID) decimal.Decimal {
	st.mu.Lock()
	defer st.mu.Unlock()

	total := decimal.Zero
	for _, l := range st.session(sid).lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Count returns Σ(quantity) over all lines: total item count, not line count.
func (st *Store) Count(sid uuid.UUID) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for _, l := range st.session(sid).lines {
		n += l.Quantity
	}
	return n
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed. Browser tabs disappear without a goodbye; something has to
// reap their carts.
func (st *Store) Sweep(maxIdle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-maxIdle)
	removed := 0
	for sid, s := range st.sessions {
		if s.touched.Before(cutoff) {
			delete(st.sessions, sid)
			removed++
		}
	}
	return removed
}
