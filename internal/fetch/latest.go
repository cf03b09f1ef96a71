// Package fetch tracks in-flight requests so that only the most recent one
// per key is allowed to update a view.
package fetch

import (
	"context"
	"sync"
)

// Ticket identifies one request started with Begin.
type Ticket struct {
	Key string
	Seq uint64
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Latest hands out tickets per key. Beginning a new request for a key
// cancels the previous one and makes its ticket stale. The zero value is
// ready to use.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	current map[string]inflight
}

// Begin starts a request for key and returns its context and ticket.
func (l *Latest) Begin(parent context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		l.current = make(map[string]inflight)
	}
	if prev, ok := l.current[key]; ok {
		prev.cancel()
	}
	l.seq++
	l.current[key] = inflight{seq: l.seq, cancel: cancel}
	return ctx, Ticket{Key: key, Seq: l.seq}
}

// IsCurrent reports whether t is the latest ticket of its key and has not ended.
func (l *Latest) IsCurrent(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.current[t.Key]
	return ok && cur.seq == t.Seq
}

// End releases t. It returns true when t was still current, i.e. its
// response may be applied.
func (l *Latest) End(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.current[t.Key]
	if !ok || cur.seq != t.Seq {
		return false
	}
	cur.cancel()
	delete(l.current, t.Key)
	return true
}

// Pending reports whether a request for key is in flight.
func (l *Latest) Pending(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.current[key]
	return ok
}
