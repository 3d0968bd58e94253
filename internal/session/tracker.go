package session

import (
	"sync"

	"github.com/google/uuid"
)

// RequestID identifies one render request.
type RequestID = uuid.UUID

// Tracker remembers the most recently issued request. Results for any
// earlier request are stale and must be dropped by the caller.
type Tracker struct {
	mu     sync.Mutex
	latest RequestID
	done   bool
}

// NewTracker creates a tracker with no request in flight.
func NewTracker() *Tracker {
	return &Tracker{done: true}
}

// Begin issues a new request ID, superseding any in-flight request.
func (t *Tracker) Begin() RequestID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = uuid.New()
	t.done = false
	return t.latest
}

// Complete reports whether id is the latest request and marks it done.
// It returns false for superseded or already completed requests.
func (t *Tracker) Complete(id RequestID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || id != t.latest {
		return false
	}
	t.done = true
	return true
}

// Pending reports whether the latest request has not completed.
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.done
}
