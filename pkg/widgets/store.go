package widgets

import (
	goerrors "errors"
	"fmt"

	"github.com/go-ember/ember/pkg/errors"
)

// ErrNotFound is the sentinel wrapped by failed store lookups.
var ErrNotFound = goerrors.New("widget not found")

// Handle is a stable reference to a widget in a Store. Handles survive
// unrelated removals; a handle to a removed widget fails lookups instead of
// reaching freed state, because the slot generation no longer matches.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether the handle was never issued by a store.
func (h Handle) IsZero() bool { return h.generation == 0 }

type slot struct {
	widget     Widget
	generation uint32
	live       bool
}

// Store owns the handle-to-widget mapping containers reference children
// through. Slots are recycled with a bumped generation so stale handles
// fail closed.
type Store struct {
	slots []slot
	free  []uint32
	count int
}

// NewStore creates an empty widget store.
func NewStore() *Store {
	return &Store{}
}

// Add registers a widget and returns its handle.
func (s *Store) Add(w Widget) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = uint32(len(s.slots) - 1)
	}
	sl := &s.slots[idx]
	sl.widget = w
	sl.generation++
	sl.live = true
	s.count++
	return Handle{index: idx, generation: sl.generation}
}

// Get resolves a handle. A zero, stale or removed handle returns ErrNotFound
// wrapped in a store error; it never yields another widget's slot.
func (s *Store) Get(h Handle) (Widget, error) {
	if int(h.index) < len(s.slots) {
		sl := &s.slots[h.index]
		if sl.live && sl.generation == h.generation {
			return sl.widget, nil
		}
	}
	return nil, errors.Report(&errors.UIError{
		Op:   "store.Get",
		Kind: errors.KindStore,
		Err:  fmt.Errorf("handle {%d,%d}: %w", h.index, h.generation, ErrNotFound),
	})
}

// Remove destroys the widget behind h. Removing an already-removed or stale
// handle returns the same not-found error as Get.
func (s *Store) Remove(h Handle) error {
	if _, err := s.Get(h); err != nil {
		return err
	}
	sl := &s.slots[h.index]
	sl.widget = nil
	sl.live = false
	s.free = append(s.free, h.index)
	s.count--
	return nil
}

// Len returns the number of live widgets.
func (s *Store) Len() int { return s.count }
