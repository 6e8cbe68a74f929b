package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type liveClassRepo struct{ s *Store }

func (r *liveClassRepo) Create(ctx context.Context, class *models.LiveClass) error {
	defer r.s.write(ctx, repository.CollLiveClasses)()

	if class.ID == "" {
		class.ID = repository.NewID()
	}
	class.CreatedAt = time.Now().UTC()
	r.s.data.classes[class.ID] = *class
	return nil
}

func (r *liveClassRepo) GetByID(ctx context.Context, id string) (*models.LiveClass, error) {
	defer r.s.read(ctx)()

	c, ok := r.s.data.classes[id]
	if !ok {
		return nil, fmt.Errorf("live class: %w", repository.ErrNotFound)
	}
	return &c, nil
}

func (r *liveClassRepo) List(ctx context.Context) ([]models.LiveClass, error) {
	defer r.s.read(ctx)()

	classes := []models.LiveClass{}
	for _, c := range r.s.data.classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].StartAt.After(classes[j].StartAt)
	})
	return classes, nil
}

func (r *liveClassRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx, repository.CollLiveClasses)()

	if _, ok := r.s.data.classes[id]; !ok {
		return fmt.Errorf("live class: %w", repository.ErrNotFound)
	}
	delete(r.s.data.classes, id)
	return nil
}

func (r *liveClassRepo) DeleteByCoach(ctx context.Context, coachID string) (int64, error) {
	defer r.s.write(ctx, repository.CollLiveClasses)()

	var n int64
	for id, c := range r.s.data.classes {
		if c.CoachDocID == coachID {
			delete(r.s.data.classes, id)
			n++
		}
	}
	return n, nil
}
