package theme

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/log"
)

// Service owns the theme preference.
type Service struct {
	store  kv.Store
	system SystemPreference

	mu sync.Mutex

	obsMu    sync.Mutex
	observed Mode

	subMu     sync.Mutex
	listeners []*Subscription
	nextSubID uint64
}

// NewService creates a Service. system may be nil.
func NewService(store kv.Store, system SystemPreference) *Service {
	return &Service{store: store, system: system}
}

// Current resolves the mode in effect.
func (s *Service) Current() Mode {
	if m, ok := s.Explicit(); ok {
		return m
	}
	return s.systemMode()
}

// Explicit returns the stored user choice. An unreadable store or a stored
// value other than light or dark counts as no choice.
func (s *Service) Explicit() (Mode, bool) {
	raw, ok, err := s.store.Get(kv.KeyTheme)
	if err != nil {
		log.ErrorErr(log.CatTheme, "reading theme", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	m := Mode(raw)
	if !m.Valid() {
		log.Warn(log.CatTheme, "ignoring stored theme", "value", raw)
		return "", false
	}
	return m, true
}

// Set persists m as the explicit choice and notifies subscribers. On a
// persist failure nothing is notified.
func (s *Service) Set(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid theme mode %q", m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(kv.KeyTheme, string(m)); err != nil {
		return fmt.Errorf("persisting theme: %w", err)
	}
	log.Info(log.CatTheme, "theme set", "mode", m)
	s.notify(m)
	return nil
}

// Toggle switches to the opposite of Current and persists it.
func (s *Service) Toggle() (Mode, error) {
	next := s.Current().Opposite()
	if err := s.Set(next); err != nil {
		return s.Current(), err
	}
	return next, nil
}

// Reset drops the explicit choice so the system preference applies again.
// Subscribers receive the resulting mode.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(kv.KeyTheme); err != nil {
		return fmt.Errorf("clearing theme: %w", err)
	}
	m := s.systemMode()
	log.Info(log.CatTheme, "theme follows system", "mode", m)
	s.notify(m)
	return nil
}

// SystemChanged records a new system preference, such as theme.system from
// config. It takes precedence over the SystemPreference given to
// NewService. Subscribers are notified only when there is no explicit
// choice.
func (s *Service) SystemChanged(m Mode) {
	if !m.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.obsMu.Lock()
	s.observed = m
	s.obsMu.Unlock()

	if explicit, ok := s.Explicit(); ok {
		log.Debug(log.CatTheme, "system change ignored, explicit choice set", "system", m, "explicit", explicit)
		return
	}
	log.Info(log.CatTheme, "system theme changed", "mode", m)
	s.notify(m)
}

// SystemCleared forgets the preference recorded by SystemChanged, so the
// SystemPreference given to NewService, or light, applies again.
// Subscribers are notified when the mode in effect changes.
func (s *Service) SystemCleared() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.obsMu.Lock()
	prev := s.observed
	s.observed = ""
	s.obsMu.Unlock()

	if !prev.Valid() {
		return
	}
	if _, ok := s.Explicit(); ok {
		log.Debug(log.CatTheme, "system preference cleared, explicit choice set")
		return
	}
	m := s.systemMode()
	log.Info(log.CatTheme, "system theme cleared", "mode", m)
	if m != prev {
		s.notify(m)
	}
}

// Subscribe registers fn for mode changes.
func (s *Service) Subscribe(fn func(Mode)) *Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	sub := &Subscription{id: s.nextSubID, fn: fn, service: s}
	s.listeners = append(s.listeners, sub)
	return sub
}

func (s *Service) systemMode() Mode {
	s.obsMu.Lock()
	observed := s.observed
	s.obsMu.Unlock()
	if observed.Valid() {
		return observed
	}
	if s.system != nil {
		if m, ok := s.system.Mode(); ok {
			return m
		}
	}
	return Light
}

func (s *Service) notify(m Mode) {
	s.subMu.Lock()
	listeners := make([]*Subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.subMu.Unlock()

	for _, sub := range listeners {
		if sub.closed.Load() {
			continue
		}
		sub.fn(m)
	}
}

func (s *Service) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Subscription is returned by Service.Subscribe.
type Subscription struct {
	id      uint64
	fn      func(Mode)
	service *Service
	once    sync.Once
	closed  atomic.Bool
}

// Unsubscribe stops delivery, including to a notification already under
// way. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.closed.Store(true)
		s.service.unsubscribe(s.id)
	})
}
