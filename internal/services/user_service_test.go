package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	jwtutil "github.com/Dias221467/health-o-mania/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestUserCodePrefix(t *testing.T) {
	tests := map[string]string{
		"Alice Smith":        "ALICE",
		"  bob  ":            "BOB",
		"Maximilianusandres": "MAXIMILIAN",
		"Zoë":                "ZO",
		"123":                "USER",
		"":                   "USER",
		"o'brien":            "OBRIEN",
	}
	for name, want := range tests {
		assert.Equal(t, want, UserCodePrefix(name), name)
	}
}

func newUserService(t *testing.T) (*UserService, *fakeMailer) {
	t.Helper()
	store := newStore(t)
	mailer := &fakeMailer{}
	return NewUserService(store.Users, mailer, testSecret, time.Hour), mailer
}

func TestRegisterAndLogin(t *testing.T) {
	svc, mailer := newUserService(t)
	ctx := context.Background()

	auth, err := svc.Register(ctx, models.RegisterInput{
		Name: "Alice Smith", Email: "Alice@Example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	u := auth.User
	assert.Regexp(t, regexp.MustCompile(`^ALICE-[1-9][0-9]{2}$`), u.UserCode)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.Progress{Level: 1, XP: 0, XPToNextLevel: 100}, u.Progress())
	assert.Empty(t, u.Friends)
	assert.NotEqual(t, "s3cret-pass", u.HashedPassword)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, u.UserCode)

	claims, err := jwtutil.ValidateToken(auth.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = svc.Register(ctx, models.RegisterInput{Name: "Other", Email: "alice@example.com", Password: "another-pass"})
	requireCode(t, err, apperr.AlreadyExists, "An account with this email already exists.")

	login, err := svc.Login(ctx, models.LoginInput{Email: "ALICE@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, login.User.ID)

	_, err = svc.Login(ctx, models.LoginInput{Email: "alice@example.com", Password: "wrong-pass"})
	requireCode(t, err, apperr.Unauthenticated, "Invalid email or password.")
	_, err = svc.Login(ctx, models.LoginInput{Email: "nobody@example.com", Password: "wrong-pass"})
	requireCode(t, err, apperr.Unauthenticated, "Invalid email or password.")
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterInput{Name: "A", Email: "not-an-email", Password: "long-enough"})
	requireCode(t, err, apperr.InvalidArgument, "A valid email address is required.")
	_, err = svc.Register(ctx, models.RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	requireCode(t, err, apperr.InvalidArgument, "Password must be at least 8 characters.")
}

func TestRegister_RetriesCodeCollisions(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	suffixes := []int{123, 123, 456}
	svc.codeSuffix = func() int {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}

	first, err := svc.Register(ctx, models.RegisterInput{Name: "Sam", Email: "sam1@example.com", Password: "password1"})
	require.NoError(t, err)
	second, err := svc.Register(ctx, models.RegisterInput{Name: "Sam", Email: "sam2@example.com", Password: "password2"})
	require.NoError(t, err)

	assert.Equal(t, "SAM-123", first.User.UserCode)
	assert.Equal(t, "SAM-456", second.User.UserCode)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	auth, err := svc.Register(ctx, models.RegisterInput{Name: "Alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, auth.User.ID, models.ProfileUpdate{})
	requireCode(t, err, apperr.InvalidArgument, "Nothing to update.")

	blank := "  "
	_, err = svc.UpdateProfile(ctx, auth.User.ID, models.ProfileUpdate{Name: &blank})
	requireCode(t, err, apperr.InvalidArgument, "Name is required.")

	name, photo := " Alice B ", "https://cdn.example.com/a.png"
	u, err := svc.UpdateProfile(ctx, auth.User.ID, models.ProfileUpdate{Name: &name, PhotoURL: &photo})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", u.Name)
	assert.Equal(t, photo, u.PhotoURL)
	assert.Equal(t, auth.User.UserCode, u.UserCode)

	_, err = svc.UpdateProfile(ctx, "ghost", models.ProfileUpdate{Name: &name})
	requireCode(t, err, apperr.NotFound, "")
}
