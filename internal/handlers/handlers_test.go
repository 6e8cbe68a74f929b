package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dias221467/health-o-mania/internal/ai"
	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/realtime"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/internal/repository/memory"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

type nopMailer struct{}

func (nopMailer) Send(string, string, string) error { return nil }

func newTestRouter(t *testing.T) (*mux.Router, *repository.Store) {
	t.Helper()
	hub := realtime.NewHub()
	store := memory.New(hub).Repositories()

	notifications := services.NewNotificationService(store)
	users := services.NewUserService(store.Users, nopMailer{}, testSecret, time.Hour)
	friends := services.NewFriendService(store, store.Users, notifications)

	h := Handlers{
		User:         NewUserHandler(users),
		Friend:       NewFriendHandler(friends),
		Task:         NewTaskHandler(services.NewTaskService(store, notifications)),
		FoodLog:      NewFoodLogHandler(services.NewFoodLogService(store)),
		Coach:        NewCoachHandler(services.NewCoachService(store, services.NewBannerStore(t.TempDir()), nopMailer{})),
		Plan:         NewPlanHandler(services.NewPlanService(ai.NewClient("", "", ""))),
		Notification: NewNotificationHandler(notifications),
		Scoreboard:   NewScoreboardHandler(services.NewScoreboardService(store)),
		Sync:         NewSyncHandler(services.NewSyncService(hub, store, friends), testSecret),
	}
	return NewRouter(h, testSecret, t.TempDir(), users), store
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func register(t *testing.T, h http.Handler, name, email string) models.AuthResponse {
	t.Helper()
	rec := do(t, h, "POST", "/users/register", "", models.RegisterInput{Name: name, Email: email, Password: "password123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.AuthResponse](t, rec)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestUserRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := register(t, router, "Alice", "alice@example.com")

	rec := do(t, router, "POST", "/users/login", "", models.LoginInput{Email: "alice@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "GET", "/users/me", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[models.User](t, rec)
	assert.Equal(t, alice.User.UserCode, me.UserCode)
	assert.NotContains(t, rec.Body.String(), "password")

	name := "Alice B"
	rec = do(t, router, "PATCH", "/users/me", alice.Token, models.ProfileUpdate{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice B", decode[models.User](t, rec).Name)

	rec = do(t, router, "GET", "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decode[errorBody](t, rec).Code)

	rec = do(t, router, "POST", "/users/register", "", models.RegisterInput{Name: "X", Email: "alice@example.com", Password: "password123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestManageFriendRequestRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := register(t, router, "Alice", "alice@example.com")
	bob := register(t, router, "Bob", "bob@example.com")

	rec := do(t, router, "POST", "/functions/manageFriendRequest", "", models.ManageFriendRequest{Action: "send", UserCode: bob.User.UserCode})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "You must be logged in to perform this action.", decode[errorBody](t, rec).Message)

	rec = do(t, router, "POST", "/functions/manageFriendRequest", alice.Token, models.ManageFriendRequest{Action: "send", UserCode: bob.User.UserCode})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[models.ActionResult](t, rec).Success)

	rec = do(t, router, "POST", "/functions/manageFriendRequest", alice.Token, models.ManageFriendRequest{Action: "send", UserCode: bob.User.UserCode})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, "GET", "/friends/requests", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	incoming := decode[[]models.FriendRequest](t, rec)
	require.Len(t, incoming, 1)

	rec = do(t, router, "POST", "/functions/manageFriendRequest", bob.Token, models.ManageFriendRequest{Action: "accept", RequestID: incoming[0].ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, "GET", "/friends", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends := decode[[]models.PublicUser](t, rec)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.User.ID, friends[0].ID)

	rec = do(t, router, "POST", "/functions/manageFriendRequest", bob.Token, models.ManageFriendRequest{Action: "poke"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManageFriendRequestAnonymousMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/functions/manageFriendRequest", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "unauthenticated", body.Code)
	assert.Equal(t, "You must be logged in to perform this action.", body.Message)
}

func TestTaskRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := register(t, router, "Alice", "alice@example.com")

	rec := do(t, router, "GET", "/tasks", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, router, "POST", "/tasks", alice.Token, models.TaskInput{Title: "Run", Difficulty: models.DifficultyHard})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[models.Task](t, rec)

	rec = do(t, router, "POST", "/tasks/"+task.ID+"/complete", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	done := decode[models.Completion](t, rec)
	assert.True(t, done.Applied)
	assert.Equal(t, task.BaseXP, done.XPGained)

	rec = do(t, router, "POST", "/tasks/"+task.ID+"/complete", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.Completion](t, rec).Applied)

	rec = do(t, router, "POST", "/tasks/missing/complete", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, "GET", "/scoreboard?days=3", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[scoreboardResponse](t, rec)
	require.Len(t, board.Leaderboard, 1)
	require.Len(t, board.Daily, 3)
	assert.Equal(t, task.BaseXP, board.Daily[2].XP)

	rec = do(t, router, "GET", "/notifications", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]models.Notification](t, rec))
}

func TestLiveClassUpload(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := register(t, router, "Alice", "alice@example.com")

	rec := do(t, router, "POST", "/coaches", alice.Token, models.CoachInput{FullName: "Alice A", Specialty: "Yoga"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"title":    "Sunrise Flow",
		"category": "Yoga",
		"duration": "45 min",
		"meetLink": "https://meet.example.com/abc",
		"startAt":  "2026-03-04T18:30:00Z",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("banner", "banner.png")
	require.NoError(t, err)
	part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/live-classes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	class := decode[models.LiveClass](t, rec)
	assert.Equal(t, "Mar 4, 2026 6:30 PM", class.Time)
	assert.True(t, strings.HasPrefix(class.Image, "/uploads/"))

	rec = do(t, router, "DELETE", "/coaches/me", alice.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, "GET", "/live-classes/"+class.ID, alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanRoutes_NotConfigured(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := register(t, router, "Alice", "alice@example.com")

	rec := do(t, router, "POST", "/plans/workout", alice.Token, models.WorkoutPlanInput{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, "POST", "/plans/workout", alice.Token, models.WorkoutPlanInput{GoalType: "Strength", Difficulty: "Beginner"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AI features are not configured.", decode[errorBody](t, rec).Message)
}

func TestSyncWebSocket(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()
	alice := register(t, router, "Alice", "alice@example.com")

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sync"

	_, resp, err := websocket.DefaultDialer.Dial(base+"?token="+alice.Token+"&topics=bogus", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(base+"?token="+alice.Token+"&topics=tasks", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snap struct {
		Topic string        `json:"topic"`
		Data  []models.Task `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "tasks", snap.Topic)
	assert.Empty(t, snap.Data)

	rec := do(t, router, "POST", "/tasks", alice.Token, models.TaskInput{Title: "Stretch", Difficulty: models.DifficultyEasy})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, conn.ReadJSON(&snap))
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "Stretch", snap.Data[0].Title)
}
