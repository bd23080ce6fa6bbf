package observable

import (
	"sync"
)

// Slot is a single-value cell that notifies observers whenever its value changes.
// Observers either register callbacks via Subscribe or read the Changes channel, which
// always holds at most the latest unread value.
// Thread-safe for concurrent access.
type Slot[T comparable] struct {
	mu *sync.Mutex

	value   T
	nextID  uint64
	subs    []subscriber[T]
	changes chan T
}

type subscriber[T comparable] struct {
	id uint64
	fn func(T)
}

// Subscription is returned by Subscribe and removes the callback when Unsubscribe is called.
type Subscription struct {
	unsubscribe func()
	once        *sync.Once
}

// Unsubscribe stops the callback from receiving further values.
// Safe to call multiple times; subsequent calls are no-ops.
func (s Subscription) Unsubscribe() {
	if s.once == nil || s.unsubscribe == nil {
		return
	}
	s.once.Do(s.unsubscribe)
}

// NewSlot creates a Slot holding the initial value. The initial value is not delivered to
// observers; it is available through Get.
//
// Parameters:
//   - initial: the starting value
//
// Returns:
//   - *Slot[T]: the newly created slot
func NewSlot[T comparable](initial T) *Slot[T] {
	return &Slot[T]{
		mu:      &sync.Mutex{},
		value:   initial,
		changes: make(chan T, 1),
	}
}

// Get returns the current value.
//
// Returns:
//   - T: the current value
func (s *Slot[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and, if it differs from the current value, notifies observers.
// Callbacks run synchronously on the caller's goroutine after the slot's lock is released,
// in subscription order.
//
// Parameters:
//   - v: the new value
//
// Returns:
//   - bool: true if the value changed and observers were notified
func (s *Slot[T]) Set(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)

	// Non-blocking send - if the channel holds an unread value, replace it with the latest
	select {
	case s.changes <- v:
	default:
		select {
		case <-s.changes:
		default:
		}
		s.changes <- v
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
	return true
}

// Subscribe registers fn to be called with every new value.
//
// Parameters:
//   - fn: the callback; must not be nil
//
// Returns:
//   - Subscription: handle used to unregister the callback
func (s *Slot[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return Subscription{
		once: &sync.Once{},
		unsubscribe: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.subs {
				if s.subs[i].id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		},
	}
}

// Changes returns a channel that receives the latest changed value.
// Only one value is buffered; intermediate values are dropped if the reader falls behind.
//
// Returns:
//   - <-chan T: the change channel
func (s *Slot[T]) Changes() <-chan T {
	return s.changes
}
