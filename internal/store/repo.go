// Package store caches backend entities per family and keeps the cached list
// consistent with the outcome of each API call.
package store

import (
	"context"
	"sync"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

// Entity is anything the backend identifies by a numeric id.
type Entity interface {
	Key() int64
}

type EventKind string

const (
	Fetched      EventKind = "fetched"
	Loaded       EventKind = "loaded"
	Created      EventKind = "created"
	Updated      EventKind = "updated"
	Deleted      EventKind = "deleted"
	MediaDeleted EventKind = "media-deleted"
	Done         EventKind = "done"
	Failed       EventKind = "failed"
)

// Event describes one settled store operation.
type Event struct {
	Store string
	Kind  EventKind
	Op    string
	ID    int64
	Err   error
}

type Listener func(Event)

// State is a point-in-time copy of a store for rendering.
type State[T Entity] struct {
	Items       []T
	Current     *T
	Loading     bool
	Error       string
	ServerError bool
	domain.Page
}

// Repo is the shared cache-and-call skeleton behind every concrete store.
//
// Network calls run outside the lock; only their outcome is applied under it.
// Concurrent mutations are not sequenced: whichever resolves last wins on any
// state they both touch.
type Repo[T Entity] struct {
	name string

	mu        sync.Mutex
	items     []T
	current   *T
	inflight  int
	err       string
	serverErr bool
	page      domain.Page
	listeners []Listener
}

func NewRepo[T Entity](name string) *Repo[T] {
	return &Repo[T]{name: name, items: []T{}}
}

func (r *Repo[T]) Name() string { return r.name }

// Subscribe registers l for every settled operation and returns a func that removes it.
func (r *Repo[T]) Subscribe(l Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
	idx := len(r.listeners) - 1
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < len(r.listeners) {
			r.listeners[idx] = nil
		}
	}
}

func (r *Repo[T]) emit(ev Event) {
	r.mu.Lock()
	ls := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()
	ev.Store = r.name
	for _, l := range ls {
		if l != nil {
			l(ev)
		}
	}
}

func (r *Repo[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := State[T]{
		Items:       r.copyItems(),
		Loading:     r.inflight > 0,
		Error:       r.err,
		ServerError: r.serverErr,
		Page:        r.page,
	}
	if r.current != nil {
		cur := *r.current
		s.Current = &cur
	}
	return s
}

func (r *Repo[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyItems()
}

// copyItems keeps an empty list non-nil; callers hold r.mu.
func (r *Repo[T]) copyItems() []T {
	if r.items == nil {
		return nil
	}
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Find looks id up in the cached list.
func (r *Repo[T]) Find(id int64) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Key() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the cached items keep accepts, in list order.
func (r *Repo[T]) Filter(keep func(T) bool) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []T{}
	for _, v := range r.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *Repo[T]) Current() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		var zero T
		return zero, false
	}
	return *r.current, true
}

func (r *Repo[T]) SetCurrent(v *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v == nil {
		r.current = nil
		return
	}
	cur := *v
	r.current = &cur
}

func (r *Repo[T]) ClearCurrent() { r.SetCurrent(nil) }

func (r *Repo[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Err returns the last recorded error message and whether it was a server/network failure.
func (r *Repo[T]) Err() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err, r.serverErr
}

func (r *Repo[T]) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err, r.serverErr = "", false
}

func (r *Repo[T]) Page() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// run is the one protocol every operation follows: mark loading, clear the
// error, call, apply on success or record on failure, release loading, and
// hand the error back to the caller.
func (r *Repo[T]) run(op string, call func() error, apply func() Event) error {
	r.mu.Lock()
	r.inflight++
	r.err, r.serverErr = "", false
	r.mu.Unlock()

	err := call()

	r.mu.Lock()
	r.inflight--
	if err != nil {
		// a cancelled call never reached the backend, so there is nothing to show
		if !api.IsCanceled(err) {
			r.err = err.Error()
			r.serverErr = api.IsServerError(err)
		}
		r.mu.Unlock()
		r.emit(Event{Kind: Failed, Op: op, Err: err})
		return err
	}
	ev := apply()
	r.mu.Unlock()
	ev.Op = op
	r.emit(ev)
	return nil
}

// Fetch replaces the cached list and pagination with what list returns.
func (r *Repo[T]) Fetch(ctx context.Context, list func(context.Context) ([]T, domain.Page, error)) error {
	var (
		rows []T
		page domain.Page
	)
	return r.run("fetch", func() (err error) {
		rows, page, err = list(ctx)
		return err
	}, func() Event {
		if rows == nil {
			rows = []T{}
		}
		r.items, r.page = rows, page
		return Event{Kind: Fetched}
	})
}

// Load sets the current item from get.
func (r *Repo[T]) Load(ctx context.Context, get func(context.Context) (T, error)) (T, error) {
	var v T
	err := r.run("load", func() (err error) {
		v, err = get(ctx)
		return err
	}, func() Event {
		cur := v
		r.current = &cur
		return Event{Kind: Loaded, ID: v.Key()}
	})
	return v, err
}

// Create puts the created item first and bumps the total count.
func (r *Repo[T]) Create(ctx context.Context, create func(context.Context) (T, error)) (T, error) {
	var v T
	err := r.run("create", func() (err error) {
		v, err = create(ctx)
		return err
	}, func() Event {
		r.items = append([]T{v}, r.items...)
		r.page.TotalCount++
		return Event{Kind: Created, ID: v.Key()}
	})
	return v, err
}

// Update swaps the item with id in place and refreshes current when it matches.
func (r *Repo[T]) Update(ctx context.Context, id int64, update func(context.Context) (T, error)) (T, error) {
	var v T
	err := r.run("update", func() (err error) {
		v, err = update(ctx)
		return err
	}, func() Event {
		r.replace(id, v)
		return Event{Kind: Updated, ID: id}
	})
	return v, err
}

// replace applies v at id's position; callers hold r.mu.
func (r *Repo[T]) replace(id int64, v T) {
	for i := range r.items {
		if r.items[i].Key() == id {
			r.items[i] = v
			break
		}
	}
	if r.current != nil && (*r.current).Key() == id {
		cur := v
		r.current = &cur
	}
}

// Delete drops id from the list and decrements the total count.
func (r *Repo[T]) Delete(ctx context.Context, id int64, del func(context.Context) error) error {
	return r.run("delete", func() error {
		return del(ctx)
	}, func() Event {
		r.remove(id)
		return Event{Kind: Deleted, ID: id}
	})
}

// remove drops id from items and current. The total count drops even when
// id sits on a page that is not cached. Callers hold r.mu.
func (r *Repo[T]) remove(id int64) {
	kept := r.items[:0:0]
	for _, v := range r.items {
		if v.Key() != id {
			kept = append(kept, v)
		}
	}
	r.items = kept
	if r.page.TotalCount > 0 {
		r.page.TotalCount--
	}
	if r.current != nil && (*r.current).Key() == id {
		r.current = nil
	}
}

// DeleteMedia strips mediaID from the parent's media in the list and in current.
func (r *Repo[T]) DeleteMedia(ctx context.Context, parentID, mediaID int64, del func(context.Context) error, strip func(T, int64) T) error {
	return r.run("delete-media", func() error {
		return del(ctx)
	}, func() Event {
		for i := range r.items {
			if r.items[i].Key() == parentID {
				r.items[i] = strip(r.items[i], mediaID)
			}
		}
		if r.current != nil && (*r.current).Key() == parentID {
			cur := strip(*r.current, mediaID)
			r.current = &cur
		}
		return Event{Kind: MediaDeleted, ID: parentID}
	})
}

// Do runs a tracked side action that does not touch the cached list.
func (r *Repo[T]) Do(ctx context.Context, op string, id int64, fn func(context.Context) error) error {
	return r.run(op, func() error {
		return fn(ctx)
	}, func() Event {
		return Event{Kind: Done, ID: id}
	})
}

// mutate applies fn to the cached state under the lock, outside of any call.
func (r *Repo[T]) mutate(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// Replace refreshes the cached copy of v without calling the backend, for
// results that arrive through another store's action.
func (r *Repo[T]) Replace(v T) {
	r.mutate(func() { r.replace(v.Key(), v) })
}
