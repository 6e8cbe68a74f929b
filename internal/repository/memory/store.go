// Package memory implements the repository contracts in process memory.
//
// Transactions are serializable: the store lock is held for the whole
// closure, the state is snapshotted on entry and restored if the closure
// fails. Change notifications are delivered only after a successful commit.
package memory

import (
	"context"
	"sync"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type txKey struct{}

type state struct {
	users         map[string]models.User
	requests      map[string]models.FriendRequest
	tasks         map[string]models.Task
	foodLog       map[string]models.FoodLogEntry
	coaches       map[string]models.Coach
	classes       map[string]models.LiveClass
	notifications map[string]models.Notification
	xpEvents      map[string]models.XPEvent
}

func newState() state {
	return state{
		users:         map[string]models.User{},
		requests:      map[string]models.FriendRequest{},
		tasks:         map[string]models.Task{},
		foodLog:       map[string]models.FoodLogEntry{},
		coaches:       map[string]models.Coach{},
		classes:       map[string]models.LiveClass{},
		notifications: map[string]models.Notification{},
		xpEvents:      map[string]models.XPEvent{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		v.Friends = append([]string(nil), v.Friends...)
		c.users[k] = v
	}
	for k, v := range s.requests {
		v.Participants = append([]string(nil), v.Participants...)
		c.requests[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.foodLog {
		c.foodLog[k] = v
	}
	for k, v := range s.coaches {
		c.coaches[k] = v
	}
	for k, v := range s.classes {
		c.classes[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	for k, v := range s.xpEvents {
		c.xpEvents[k] = v
	}
	return c
}

// Store is an in-memory document store.
type Store struct {
	mu       sync.Mutex
	data     state
	touched  map[string]struct{}
	notifier repository.ChangeNotifier
}

// New returns an empty store. notifier may be nil.
func New(notifier repository.ChangeNotifier) *Store {
	return &Store{data: newState(), notifier: notifier}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Tx:            s,
		Users:         &userRepo{s},
		Requests:      &requestRepo{s},
		Tasks:         &taskRepo{s},
		FoodLog:       &foodLogRepo{s},
		Coaches:       &coachRepo{s},
		LiveClasses:   &liveClassRepo{s},
		Notifications: &notificationRepo{s},
		Activities:    &activityRepo{s},
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) == s
}

// WithTransaction implements repository.Transactor.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.data.clone()
	s.touched = map[string]struct{}{}

	err := fn(context.WithValue(ctx, txKey{}, s))

	touched := s.touched
	s.touched = nil
	if err != nil {
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	for coll := range touched {
		s.notify(coll)
	}
	return nil
}

// read locks the store unless ctx already holds it through a transaction.
func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// write is read plus a change notification for coll once the write is
// visible. Inside a transaction the notification waits for the commit.
func (s *Store) write(ctx context.Context, coll string) func() {
	if s.inTx(ctx) {
		s.touched[coll] = struct{}{}
		return func() {}
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.notify(coll)
	}
}

func (s *Store) notify(coll string) {
	if s.notifier != nil {
		s.notifier.Notify(coll)
	}
}
