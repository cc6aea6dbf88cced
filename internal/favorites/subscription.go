package favorites

import "sync"

// Subscription is the handle returned by Registry.Subscribe.
type Subscription struct {
	id       uint64
	fn       func([]Favorite)
	registry *Registry

	once   sync.Once
	mu     sync.Mutex
	closed bool
}

// Unsubscribe stops delivery. Calling it more than once is safe.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.registry.unsubscribe(s.id)
	})
}

func (s *Subscription) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}
