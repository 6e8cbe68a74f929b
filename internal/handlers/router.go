package handlers

import (
	"net/http"

	"github.com/Dias221467/health-o-mania/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler the router serves.
type Handlers struct {
	User         *UserHandler
	Friend       *FriendHandler
	Task         *TaskHandler
	FoodLog      *FoodLogHandler
	Coach        *CoachHandler
	Plan         *PlanHandler
	Notification *NotificationHandler
	Scoreboard   *ScoreboardHandler
	Sync         *SyncHandler
}

// NewRouter wires the routes. lastActive may be nil.
func NewRouter(h Handlers, jwtSecret, uploadDir string, lastActive middleware.LastActiveUpdater) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	auth := middleware.AuthMiddleware(jwtSecret)
	protected := func(prefix string) *mux.Router {
		sub := router.PathPrefix(prefix).Subrouter()
		sub.Use(auth)
		if lastActive != nil {
			sub.Use(middleware.UpdateLastActiveMiddleware(lastActive))
		}
		return sub
	}

	// User routes
	router.HandleFunc("/users/register", h.User.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", h.User.LoginUserHandler).Methods("POST")
	users := protected("/users")
	users.HandleFunc("/me", h.User.GetMeHandler).Methods("GET")
	users.HandleFunc("/me", h.User.UpdateMeHandler).Methods("PATCH")

	// Friend RPC; anonymous callers get its own unauthenticated message
	functions := router.PathPrefix("/functions").Subrouter()
	functions.Use(middleware.OptionalAuthMiddleware(jwtSecret))
	functions.HandleFunc("/manageFriendRequest", h.Friend.ManageFriendRequestHandler).Methods("POST")

	friends := protected("/friends")
	friends.HandleFunc("", h.Friend.GetFriendsHandler).Methods("GET")
	friends.HandleFunc("/requests", h.Friend.GetPendingRequestsHandler).Methods("GET")

	tasks := protected("/tasks")
	tasks.HandleFunc("", h.Task.GetTasksHandler).Methods("GET")
	tasks.HandleFunc("", h.Task.CreateTaskHandler).Methods("POST")
	tasks.HandleFunc("/{id}", h.Task.UpdateTaskHandler).Methods("PUT")
	tasks.HandleFunc("/{id}", h.Task.DeleteTaskHandler).Methods("DELETE")
	tasks.HandleFunc("/{id}/complete", h.Task.CompleteTaskHandler).Methods("POST")

	food := protected("/food-log")
	food.HandleFunc("", h.FoodLog.GetEntriesHandler).Methods("GET")
	food.HandleFunc("", h.FoodLog.AddEntryHandler).Methods("POST")
	food.HandleFunc("/{id}", h.FoodLog.DeleteEntryHandler).Methods("DELETE")

	coaches := protected("/coaches")
	coaches.HandleFunc("", h.Coach.RegisterCoachHandler).Methods("POST")
	coaches.HandleFunc("/me", h.Coach.GetMyCoachHandler).Methods("GET")
	coaches.HandleFunc("/me", h.Coach.RemoveCoachHandler).Methods("DELETE")
	coaches.HandleFunc("/latest", h.Coach.GetLatestCoachHandler).Methods("GET")

	classes := protected("/live-classes")
	classes.HandleFunc("", h.Coach.GetLiveClassesHandler).Methods("GET")
	classes.HandleFunc("", h.Coach.CreateLiveClassHandler).Methods("POST")
	classes.HandleFunc("/{id}", h.Coach.GetLiveClassHandler).Methods("GET")
	classes.HandleFunc("/{id}", h.Coach.DeleteLiveClassHandler).Methods("DELETE")

	// AI flows
	plans := protected("/plans")
	plans.HandleFunc("/workout", h.Plan.WorkoutPlanHandler).Methods("POST")
	plans.HandleFunc("/meal", h.Plan.MealPlanHandler).Methods("POST")
	protected("/food-scanner").HandleFunc("/scan", h.Plan.ScanFoodHandler).Methods("POST")
	protected("/chatbot").HandleFunc("", h.Plan.ChatHandler).Methods("POST")

	notifications := protected("/notifications")
	notifications.HandleFunc("", h.Notification.GetUserNotificationsHandler).Methods("GET")
	notifications.HandleFunc("/{id}/read", h.Notification.MarkAsReadHandler).Methods("PATCH")
	notifications.HandleFunc("/{id}", h.Notification.DeleteNotificationHandler).Methods("DELETE")

	protected("/scoreboard").HandleFunc("", h.Scoreboard.GetScoreboardHandler).Methods("GET")

	// Authenticated through ?token= inside the handler
	router.HandleFunc("/ws/sync", h.Sync.SyncWebSocketHandler).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return router
}
