package models

import (
	"time"
)

// Notification types.
const (
	NotifyFriendRequest  = "friend_request"
	NotifyFriendAccepted = "friend_accepted"
	NotifyTaskCompleted  = "task_completed"
	NotifyLevelUp        = "level_up"
	NotifyInactive       = "user_inactive"
	NotifyClassReminder  = "class_reminder"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 7 * 24 * time.Hour

type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	TargetID  string    `bson:"target_id,omitempty" json:"targetId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"` // removed by the cleanup job
}
