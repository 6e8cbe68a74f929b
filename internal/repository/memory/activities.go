package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type activityRepo struct{ s *Store }

func (r *activityRepo) Record(ctx context.Context, event *models.XPEvent) error {
	defer r.s.write(ctx, repository.CollXPEvents)()

	if event.ID == "" {
		event.ID = repository.NewID()
	}
	r.s.data.xpEvents[event.ID] = *event
	return nil
}

func (r *activityRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]models.XPEvent, error) {
	defer r.s.read(ctx)()

	events := []models.XPEvent{}
	for _, e := range r.s.data.xpEvents {
		if e.UserID == userID && !e.Timestamp.Before(since) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}
