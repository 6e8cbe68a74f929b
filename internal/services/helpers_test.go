package services

import (
	"context"
	"testing"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/internal/repository/memory"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	return memory.New(nil).Repositories()
}

func seedUser(t *testing.T, store *repository.Store, id, name, code string) *models.User {
	t.Helper()
	u := &models.User{
		ID:            id,
		Name:          name,
		Email:         id + "@example.com",
		UserCode:      code,
		Level:         models.InitialLevel,
		XPToNextLevel: models.InitialXPToNextLevel,
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func getUser(t *testing.T, store *repository.Store, id string) *models.User {
	t.Helper()
	u, err := store.Users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

// requireCode asserts err is an apperr with the given code and message.
func requireCode(t *testing.T, err error, code apperr.Code, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
