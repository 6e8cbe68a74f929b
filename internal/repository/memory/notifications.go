package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	defer r.s.write(ctx, repository.CollNotifications)()

	if n.ID == "" {
		n.ID = repository.NewID()
	}
	n.CreatedAt = time.Now().UTC()
	n.ExpiresAt = n.CreatedAt.Add(models.NotificationTTL)
	r.s.data.notifications[n.ID] = *n
	return nil
}

func newestFirst(ns []models.Notification) {
	sort.Slice(ns, func(i, j int) bool {
		return ns[i].CreatedAt.After(ns[j].CreatedAt)
	})
}

func (r *notificationRepo) ListForUser(ctx context.Context, userID string, now time.Time) ([]models.Notification, error) {
	defer r.s.read(ctx)()

	list := []models.Notification{}
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && n.ExpiresAt.After(now) {
			list = append(list, n)
		}
	}
	newestFirst(list)
	return list, nil
}

func (r *notificationRepo) LatestByType(ctx context.Context, userID, notifType string) (*models.Notification, error) {
	defer r.s.read(ctx)()

	var list []models.Notification
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && n.Type == notifType {
			list = append(list, n)
		}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	newestFirst(list)
	return &list[0], nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	defer r.s.write(ctx, repository.CollNotifications)()

	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	n.Read = true
	r.s.data.notifications[id] = n
	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, userID, id string) error {
	defer r.s.write(ctx, repository.CollNotifications)()

	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	delete(r.s.data.notifications, id)
	return nil
}

func (r *notificationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	defer r.s.write(ctx, repository.CollNotifications)()

	var removed int64
	for id, n := range r.s.data.notifications {
		if !n.ExpiresAt.After(now) {
			delete(r.s.data.notifications, id)
			removed++
		}
	}
	return removed, nil
}
