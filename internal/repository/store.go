package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write would break a unique constraint.
	ErrDuplicate = errors.New("duplicate document")
)

// Collection names, also used as change-notification topics.
const (
	CollUsers          = "users"
	CollFriendRequests = "friend_requests"
	CollTasks          = "tasks"
	CollFoodLog        = "food_log"
	CollCoaches        = "coaches"
	CollLiveClasses    = "live_classes"
	CollNotifications  = "notifications"
	CollXPEvents       = "xp_events"
)

// Transactor runs fn atomically. Repository calls made with the context
// passed to fn take part in the transaction; fn may be executed more than
// once when the store retries on conflict. Calling WithTransaction with a
// context that is already transactional joins the outer transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Users interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserCode(ctx context.Context, code string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ListInactiveSince(ctx context.Context, cutoff time.Time) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) error
	SetProgress(ctx context.Context, id string, p models.Progress) error
	TouchLastActive(ctx context.Context, id string, at time.Time) error
	// AddFriend puts friendID into the user's friend set (set semantics).
	AddFriend(ctx context.Context, userID, friendID string) error
	// RemoveFriend takes friendID out of the user's friend set; absent ids are fine.
	RemoveFriend(ctx context.Context, userID, friendID string) error
}

type FriendRequests interface {
	// Create fails with ErrDuplicate if a request for the same pair exists.
	Create(ctx context.Context, req *models.FriendRequest) error
	GetByID(ctx context.Context, id string) (*models.FriendRequest, error)
	// FindBetween returns the request whose participants contain both ids,
	// in either direction.
	FindBetween(ctx context.Context, a, b string) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error)
	Delete(ctx context.Context, id string) error
}

type Tasks interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, userID, taskID string) (*models.Task, error)
	List(ctx context.Context, userID string) ([]models.Task, error)
	UpdateDetails(ctx context.Context, userID, taskID string, in models.TaskInput, baseXP int) error
	MarkCompleted(ctx context.Context, userID, taskID string, at time.Time) error
	Delete(ctx context.Context, userID, taskID string) error
}

type FoodLog interface {
	Create(ctx context.Context, entry *models.FoodLogEntry) error
	List(ctx context.Context, userID string) ([]models.FoodLogEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

type Coaches interface {
	Create(ctx context.Context, coach *models.Coach) error
	GetByID(ctx context.Context, id string) (*models.Coach, error)
	GetByUserID(ctx context.Context, userID string) (*models.Coach, error)
	Latest(ctx context.Context) (*models.Coach, error)
	Delete(ctx context.Context, id string) error
}

type LiveClasses interface {
	Create(ctx context.Context, class *models.LiveClass) error
	GetByID(ctx context.Context, id string) (*models.LiveClass, error)
	List(ctx context.Context) ([]models.LiveClass, error)
	Delete(ctx context.Context, id string) error
	// DeleteByCoach removes every class of the coach and reports how many.
	DeleteByCoach(ctx context.Context, coachID string) (int64, error)
}

type Notifications interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string, now time.Time) ([]models.Notification, error)
	LatestByType(ctx context.Context, userID, notifType string) (*models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Activities interface {
	Record(ctx context.Context, event *models.XPEvent) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.XPEvent, error)
}

// Store bundles every repository of one backend.
type Store struct {
	Tx            Transactor
	Users         Users
	Requests      FriendRequests
	Tasks         Tasks
	FoodLog       FoodLog
	Coaches       Coaches
	LiveClasses   LiveClasses
	Notifications Notifications
	Activities    Activities
}
