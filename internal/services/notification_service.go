package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sirupsen/logrus"
)

// InactivityWindow is how long a user may stay away before being reminded,
// and the minimum gap between two reminders.
const InactivityWindow = 3 * 24 * time.Hour

type NotificationService struct {
	repo     repository.Notifications
	userRepo repository.Users
	now      func() time.Time
}

func NewNotificationService(store *repository.Store) *NotificationService {
	return &NotificationService{
		repo:     store.Notifications,
		userRepo: store.Users,
		now:      time.Now,
	}
}

// Notify stores a notification for a user. Failures are logged and
// swallowed: a notification never fails the action that caused it.
func (s *NotificationService) Notify(ctx context.Context, userID, notifType, title, message, targetID string) {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		TargetID: targetID,
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"type":    notifType,
		}).Warn("Failed to create notification")
	}
}

// List returns the user's unexpired notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListForUser(ctx, userID, s.now().UTC())
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return notFound(s.repo.MarkRead(ctx, userID, id), "Notification not found.")
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return notFound(s.repo.Delete(ctx, userID, id), "Notification not found.")
}

// DeleteExpired removes every notification past its expiry; run by cron.
func (s *NotificationService) DeleteExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Log.WithField("deleted", n).Info("Expired notifications removed")
	}
	return n, nil
}

// CheckInactiveUsers reminds users who have not been active for
// InactivityWindow, at most once per window. It reports how many
// reminders were sent.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) (int, error) {
	now := s.now().UTC()
	users, err := s.userRepo.ListInactiveSince(ctx, now.Add(-InactivityWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	sent := 0
	for _, user := range users {
		// Check if they already got a recent inactivity notification
		existing, err := s.repo.LatestByType(ctx, user.ID, models.NotifyInactive)
		if err == nil && now.Sub(existing.CreatedAt) < InactivityWindow {
			continue
		}

		s.Notify(ctx, user.ID, models.NotifyInactive,
			"We miss you!",
			"You haven't been active for a few days. Come back and complete a task to keep leveling up!",
			"",
		)
		sent++
	}
	return sent, nil
}
