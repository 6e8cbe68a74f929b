package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Dias221467/health-o-mania/internal/metrics"
	"github.com/Dias221467/health-o-mania/internal/realtime"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

// Live topics a client can subscribe to.
const (
	TopicProfile        = "profile"
	TopicFriends        = "friends"
	TopicFriendRequests = "friendRequests"
	TopicTasks          = "tasks"
	TopicFoodLog        = "foodLog"
	TopicLiveClasses    = "liveClasses"
	TopicLatestCoach    = "latestCoach"
	TopicMyCoach        = "myCoach"
)

// Topics lists every live topic.
var Topics = []string{
	TopicProfile, TopicFriends, TopicFriendRequests, TopicTasks,
	TopicFoodLog, TopicLiveClasses, TopicLatestCoach, TopicMyCoach,
}

// SyncService turns topics into live queries on the realtime hub.
type SyncService struct {
	hub     *realtime.Hub
	store   *repository.Store
	friends *FriendService
}

func NewSyncService(hub *realtime.Hub, store *repository.Store, friends *FriendService) *SyncService {
	return &SyncService{hub: hub, store: store, friends: friends}
}

// orNil maps a missing document to a nil snapshot instead of an error.
func orNil[T any](v *T, err error) (any, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Query builds the live query for topic as seen by userID.
func (s *SyncService) Query(userID, topic string) (realtime.Query, error) {
	q := realtime.Query{Topic: topic}
	switch topic {
	case TopicProfile:
		q.Collections = []string{repository.CollUsers}
		q.Load = func(ctx context.Context) (any, error) {
			return orNil(s.store.Users.GetByID(ctx, userID))
		}
	case TopicFriends:
		q.Collections = []string{repository.CollUsers}
		q.Load = func(ctx context.Context) (any, error) {
			return s.friends.ListFriends(ctx, userID)
		}
	case TopicFriendRequests:
		q.Collections = []string{repository.CollFriendRequests}
		q.Load = func(ctx context.Context) (any, error) {
			return s.store.Requests.ListIncoming(ctx, userID)
		}
	case TopicTasks:
		q.Collections = []string{repository.CollTasks}
		q.Load = func(ctx context.Context) (any, error) {
			return s.store.Tasks.List(ctx, userID)
		}
	case TopicFoodLog:
		q.Collections = []string{repository.CollFoodLog}
		q.Load = func(ctx context.Context) (any, error) {
			return s.store.FoodLog.List(ctx, userID)
		}
	case TopicLiveClasses:
		q.Collections = []string{repository.CollLiveClasses}
		q.Load = func(ctx context.Context) (any, error) {
			return s.store.LiveClasses.List(ctx)
		}
	case TopicLatestCoach:
		q.Collections = []string{repository.CollCoaches}
		q.Load = func(ctx context.Context) (any, error) {
			return orNil(s.store.Coaches.Latest(ctx))
		}
	case TopicMyCoach:
		q.Collections = []string{repository.CollCoaches}
		q.Load = func(ctx context.Context) (any, error) {
			return orNil(s.store.Coaches.GetByUserID(ctx, userID))
		}
	default:
		return q, fmt.Errorf("unknown topic %q", topic)
	}
	return q, nil
}

// Subscribe starts a live query for topic. The returned cancel must be
// called once the subscriber goes away.
func (s *SyncService) Subscribe(ctx context.Context, userID, topic string) (<-chan realtime.Snapshot, func(), error) {
	q, err := s.Query(userID, topic)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.Subscribe(ctx, q)
	metrics.LiveSubscriptions.Inc()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			cancel()
			metrics.LiveSubscriptions.Dec()
		})
	}, nil
}
