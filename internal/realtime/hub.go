// Package realtime pushes fresh query results to subscribers whenever one
// of the collections a query reads from changes.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/Dias221467/health-o-mania/pkg/logger"
)

// Snapshot is one delivery of a query result.
type Snapshot struct {
	Topic string    `json:"topic"`
	Data  any       `json:"data,omitempty"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

// Query is a live query. Load is re-run after any change to Collections.
type Query struct {
	Topic       string
	Collections []string
	Load        func(ctx context.Context) (any, error)
}

type subscription struct {
	colls map[string]struct{}
	wake  chan struct{}
}

// Hub fans collection change signals out to live queries.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscription]struct{})}
}

// Notify signals that coll changed. It never blocks; signals arriving while
// a subscriber is still reloading collapse into one.
func (h *Hub) Notify(coll string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if _, ok := sub.colls[coll]; !ok {
			continue
		}
		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}
}

// Subscribers reports the number of live queries.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Subscribe emits the current result of q, then a new one after every
// relevant change, until ctx is done or the returned cancel is called.
// The channel is closed afterwards.
func (h *Hub) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, func()) {
	ctx, cancel := context.WithCancel(ctx)

	sub := &subscription{
		colls: make(map[string]struct{}, len(q.Collections)),
		wake:  make(chan struct{}, 1),
	}
	for _, c := range q.Collections {
		sub.colls[c] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	out := make(chan Snapshot)
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.subs, sub)
			h.mu.Unlock()
			close(out)
		}()

		for {
			snap := Snapshot{Topic: q.Topic, At: time.Now().UTC()}
			data, err := q.Load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Log.WithError(err).WithField("topic", q.Topic).Warn("Live query failed")
				snap.Error = err.Error()
			} else {
				snap.Data = data
			}

			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}

			select {
			case <-sub.wake:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel
}
