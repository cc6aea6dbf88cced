package favorites

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/posts"
)

// Registry owns the favorites collection. It holds no collection state
// between calls; every operation reads the store.
//
// Mutations are serialized, and listeners run while the mutation lock is
// held. A listener may read the registry or unsubscribe but must not
// mutate it.
type Registry struct {
	store            kv.Store
	key              string
	now              func() time.Time
	diag             Diagnostics
	notifyNoopRemove bool

	mu sync.Mutex

	subMu     sync.Mutex
	listeners []*Subscription
	nextSubID uint64
}

// New creates a registry over store.
func New(store kv.Store, opts ...Option) *Registry {
	r := &Registry{
		store:            store,
		key:              kv.KeyFavorites,
		now:              time.Now,
		diag:             logDiagnostics{},
		notifyNoopRemove: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the collection, newest first. A missing, unreadable or
// corrupt value yields an empty slice; failures go to Diagnostics.
func (r *Registry) List() []Favorite {
	return r.load("list")
}

// Contains reports whether id is in the collection.
func (r *Registry) Contains(id int) bool {
	return indexOf(r.load("contains"), id) >= 0
}

// Len returns the number of favorites.
func (r *Registry) Len() int {
	return len(r.load("len"))
}

// Add bookmarks post. It returns false without writing when a favorite with
// the same id already exists.
func (r *Registry) Add(post posts.Post) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load("add")
	if indexOf(current, post.ID) >= 0 {
		log.Debug(log.CatFavs, "already a favorite", "id", post.ID)
		return false, nil
	}

	fav := Favorite{
		ID:        post.ID,
		Title:     post.Title,
		Timestamp: r.now().UnixMilli(),
	}
	next := make([]Favorite, 0, len(current)+1)
	next = append(next, fav)
	next = append(next, current...)

	if err := r.commit("add", next); err != nil {
		return false, err
	}
	log.Info(log.CatFavs, "added favorite", "id", fav.ID, "title", fav.Title)
	return true, nil
}

// Remove deletes every favorite with id.
func (r *Registry) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load("remove")
	next := make([]Favorite, 0, len(current))
	for _, f := range current {
		if f.ID != id {
			next = append(next, f)
		}
	}

	if len(next) == len(current) && !r.notifyNoopRemove {
		log.Debug(log.CatFavs, "remove of absent id skipped", "id", id)
		return nil
	}

	if err := r.commit("remove", next); err != nil {
		return err
	}
	log.Info(log.CatFavs, "removed favorite", "id", id, "removed", len(current)-len(next))
	return nil
}

// Clear empties the collection.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.commit("clear", []Favorite{}); err != nil {
		return err
	}
	log.Info(log.CatFavs, "cleared favorites")
	return nil
}

// Subscribe registers listener. Listeners run synchronously in registration
// order after each successful mutation and receive their own copy of the
// collection.
func (r *Registry) Subscribe(listener func([]Favorite)) *Subscription {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	r.nextSubID++
	sub := &Subscription{id: r.nextSubID, fn: listener, registry: r}
	r.listeners = append(r.listeners, sub)
	return sub
}

func (r *Registry) unsubscribe(id uint64) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	for i, s := range r.listeners {
		if s.id == id {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

func (r *Registry) load(op string) []Favorite {
	raw, ok, err := r.store.Get(r.key)
	if err != nil {
		r.diag.Report(op, fmt.Errorf("reading %q: %w", r.key, err))
		return []Favorite{}
	}
	if !ok {
		return []Favorite{}
	}

	var favs []Favorite
	if err := json.Unmarshal([]byte(raw), &favs); err != nil {
		r.diag.Report(op, fmt.Errorf("decoding %q: %w", r.key, err))
		return []Favorite{}
	}
	if favs == nil {
		return []Favorite{}
	}
	return favs
}

// commit persists next and, only on success, notifies listeners.
func (r *Registry) commit(op string, next []Favorite) error {
	data, err := json.Marshal(next)
	if err != nil {
		perr := &PersistError{Op: op, Err: err}
		r.diag.Report(op, perr)
		return perr
	}
	if err := r.store.Set(r.key, string(data)); err != nil {
		perr := &PersistError{Op: op, Err: err}
		r.diag.Report(op, perr)
		return perr
	}
	r.notify(next)
	return nil
}

func (r *Registry) notify(favs []Favorite) {
	r.subMu.Lock()
	listeners := make([]*Subscription, len(r.listeners))
	copy(listeners, r.listeners)
	r.subMu.Unlock()

	for _, s := range listeners {
		if s.active() {
			s.fn(clone(favs))
		}
	}
}
