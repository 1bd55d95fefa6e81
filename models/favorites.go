package models

import (
	"errors"
	"sort"
	"sync"
)

// ErrTogglePending is returned when an account's favorite state is already
// being written to the server.
var ErrTogglePending = errors.New("favorite update already in progress")

// FavoriteStatus tracks the server round-trip of one favorite toggle.
type FavoriteStatus int

const (
	FavoriteConfirmed FavoriteStatus = iota // visible state matches the server
	FavoritePending                         // write in flight, visible state is optimistic
	FavoriteFailed                          // last write failed, visible state was reverted
)

type favoriteEntry struct {
	confirmed bool // last state acknowledged by the server
	visible   bool // what the shopper sees
	status    FavoriteStatus
}

// Favorites mirrors the server-side favorites of one session. Toggles are
// optimistic: the visible state flips immediately, and is reverted to the
// confirmed state if the server rejects the write.
type Favorites struct {
	mu      sync.Mutex
	entries map[int64]*favoriteEntry
}

// NewFavorites returns an empty set.
func NewFavorites() *Favorites {
	return &Favorites{entries: make(map[int64]*favoriteEntry)}
}

// Reset replaces the set with ids loaded from the server.
func (f *Favorites) Reset(ids []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = make(map[int64]*favoriteEntry, len(ids))
	for _, id := range ids {
		f.entries[id] = &favoriteEntry{confirmed: true, visible: true}
	}
}

// Has reports the visible favorite state of id.
func (f *Favorites) Has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	return ok && e.visible
}

// Status reports the write status of id.
func (f *Favorites) Status(id int64) FavoriteStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.entries[id]; ok {
		return e.status
	}
	return FavoriteConfirmed
}

// Begin flips the visible state of id and marks it pending. It returns
// whether the server call should add (true) or remove (false) the favorite.
func (f *Favorites) Begin(id int64) (add bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	if !ok {
		e = &favoriteEntry{}
		f.entries[id] = e
	}
	if e.status == FavoritePending {
		return false, ErrTogglePending
	}

	e.visible = !e.visible
	e.status = FavoritePending
	return e.visible, nil
}

// Settle completes a toggle started with Begin. On success the optimistic
// state becomes confirmed; on failure it reverts to the confirmed state.
// The visible state after settling is returned.
func (f *Favorites) Settle(id int64, writeErr error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	if !ok {
		return false
	}

	if writeErr != nil {
		e.visible = e.confirmed
		e.status = FavoriteFailed
	} else {
		e.confirmed = e.visible
		e.status = FavoriteConfirmed
	}
	visible := e.visible

	if !e.visible && !e.confirmed && e.status == FavoriteConfirmed {
		delete(f.entries, id)
	}
	return visible
}

// IDs returns the visible favorites in ascending order.
func (f *Favorites) IDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.entries))
	for id, e := range f.entries {
		if e.visible {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ConfirmedIDs returns only the server-acknowledged favorites, ascending.
func (f *Favorites) ConfirmedIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.entries))
	for id, e := range f.entries {
		if e.confirmed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
