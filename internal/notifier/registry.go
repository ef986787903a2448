package notifier

import "sync"

// Registry is the process-wide map from firefighter username to that user's
// currently open push channel. It is the only state shared between the
// subscription transports and the dispatch path, so every operation must be
// safe under arbitrary concurrent use.
//
// One registry is constructed in main and handed to both sides; there is no
// package-level instance.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Channel
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*Channel),
	}
}

// Register installs ch as the active channel for username, replacing any
// previous entry. The superseded channel is not closed here: a reconnect (page
// refresh) can register before the old connection has signaled closure, and
// closing it from under the transport would re-enter its teardown path. The
// old channel closes itself and its Unregister call falls through the
// compare-then-remove guard below.
func (r *Registry) Register(username string, ch *Channel) {
	r.mu.Lock()
	r.channels[username] = ch
	r.mu.Unlock()
}

// Unregister removes the entry for username, but only if ch is still the
// active channel. The compare and the remove happen under one lock so a late
// disconnect from a superseded connection can never evict a newer live one.
func (r *Registry) Unregister(username string, ch *Channel) {
	r.mu.Lock()
	if cur, ok := r.channels[username]; ok && cur == ch {
		delete(r.channels, username)
	}
	r.mu.Unlock()
}

// Publish delivers msg to username's channel if one is open. It reports
// whether a delivery was attempted; a user with no open session is a silent
// no-op, not an error. The send happens outside the lock so a slow client
// never blocks registry access for other usernames.
func (r *Registry) Publish(username string, msg AlarmMessage) bool {
	r.mu.RLock()
	ch := r.channels[username]
	r.mu.RUnlock()

	if ch == nil {
		return false
	}

	ch.Send(msg)
	return true
}

// Active reports whether username currently has an open channel.
func (r *Registry) Active(username string) bool {
	r.mu.RLock()
	_, ok := r.channels[username]
	r.mu.RUnlock()
	return ok
}

// Len returns the number of open channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
