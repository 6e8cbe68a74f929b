package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/realtime"
	"github.com/Dias221467/health-o-mania/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextSnapshot(t *testing.T, ch <-chan realtime.Snapshot) realtime.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
	}
	return realtime.Snapshot{}
}

func TestSync_TasksTopicFollowsCommits(t *testing.T) {
	hub := realtime.NewHub()
	store := memory.New(hub).Repositories()
	seedUser(t, store, "alice", "Alice", "ALICE-111")
	notifications := NewNotificationService(store)
	sync := NewSyncService(hub, store, NewFriendService(store, store.Users, notifications))
	tasks := NewTaskService(store, notifications)
	ctx := context.Background()

	ch, cancel, err := sync.Subscribe(ctx, "alice", TopicTasks)
	require.NoError(t, err)
	defer cancel()

	first := nextSnapshot(t, ch)
	assert.Equal(t, TopicTasks, first.Topic)
	assert.Empty(t, first.Data)

	_, err = tasks.AddTask(ctx, "alice", models.TaskInput{Title: "Walk", Difficulty: models.DifficultyEasy})
	require.NoError(t, err)

	second := nextSnapshot(t, ch)
	list, ok := second.Data.([]models.Task)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Walk", list[0].Title)
}

func TestSync_MissingDocumentIsNil(t *testing.T) {
	hub := realtime.NewHub()
	store := memory.New(hub).Repositories()
	sync := NewSyncService(hub, store, NewFriendService(store, store.Users, NewNotificationService(store)))

	ch, cancel, err := sync.Subscribe(context.Background(), "alice", TopicMyCoach)
	require.NoError(t, err)
	defer cancel()

	snap := nextSnapshot(t, ch)
	assert.Nil(t, snap.Data)
	assert.Empty(t, snap.Error)
}

func TestSync_UnknownTopic(t *testing.T) {
	hub := realtime.NewHub()
	store := memory.New(hub).Repositories()
	sync := NewSyncService(hub, store, nil)

	_, _, err := sync.Subscribe(context.Background(), "alice", "secrets")
	assert.Error(t, err)

	for _, topic := range Topics {
		q, err := sync.Query("alice", topic)
		require.NoError(t, err, topic)
		assert.NotEmpty(t, q.Collections, topic)
	}
}
