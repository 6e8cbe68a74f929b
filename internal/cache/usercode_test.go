package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapKV struct {
	data map[string]string
	fail bool
}

func newMapKV() *mapKV { return &mapKV{data: map[string]string{}} }

func (m *mapKV) Get(_ context.Context, key string) (string, error) {
	if m.fail {
		return "", errors.New("connection refused")
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *mapKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	if m.fail {
		return errors.New("connection refused")
	}
	m.data[key] = value
	return nil
}

func (m *mapKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func seedUsers(t *testing.T) repository.Users {
	t.Helper()
	users := memory.New(nil).Repositories().Users
	require.NoError(t, users.Create(context.Background(), &models.User{ID: "u1", Email: "a@x", UserCode: "ANNA-123"}))
	return users
}

func TestCachedUsers_ReadThrough(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	users := NewCachedUsers(seedUsers(t), kv, time.Hour)

	u, err := users.GetByUserCode(ctx, "ANNA-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "u1", kv.data["usercode:ANNA-123"])

	u, err = users.GetByUserCode(ctx, "ANNA-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestCachedUsers_StaleEntryFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	kv.data["usercode:ANNA-123"] = "ghost"
	users := NewCachedUsers(seedUsers(t), kv, time.Hour)

	u, err := users.GetByUserCode(ctx, "ANNA-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "u1", kv.data["usercode:ANNA-123"])
}

func TestCachedUsers_MissingCodeAndDownCache(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	users := NewCachedUsers(seedUsers(t), kv, time.Hour)

	_, err := users.GetByUserCode(ctx, "NOPE-999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, kv.data)

	kv.fail = true
	u, err := users.GetByUserCode(ctx, "ANNA-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}
