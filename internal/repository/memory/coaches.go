package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type coachRepo struct{ s *Store }

func (r *coachRepo) Create(ctx context.Context, coach *models.Coach) error {
	defer r.s.write(ctx, repository.CollCoaches)()

	for _, c := range r.s.data.coaches {
		if c.UserID == coach.UserID {
			return fmt.Errorf("coach: %w", repository.ErrDuplicate)
		}
	}
	if coach.ID == "" {
		coach.ID = repository.NewID()
	}
	coach.CreatedAt = time.Now().UTC()
	r.s.data.coaches[coach.ID] = *coach
	return nil
}

func (r *coachRepo) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	defer r.s.read(ctx)()

	c, ok := r.s.data.coaches[id]
	if !ok {
		return nil, fmt.Errorf("coach: %w", repository.ErrNotFound)
	}
	return &c, nil
}

func (r *coachRepo) GetByUserID(ctx context.Context, userID string) (*models.Coach, error) {
	defer r.s.read(ctx)()

	for _, c := range r.s.data.coaches {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("coach: %w", repository.ErrNotFound)
}

func (r *coachRepo) Latest(ctx context.Context) (*models.Coach, error) {
	defer r.s.read(ctx)()

	coaches := make([]models.Coach, 0, len(r.s.data.coaches))
	for _, c := range r.s.data.coaches {
		coaches = append(coaches, c)
	}
	if len(coaches) == 0 {
		return nil, fmt.Errorf("coach: %w", repository.ErrNotFound)
	}
	sort.Slice(coaches, func(i, j int) bool {
		if coaches[i].CreatedAt.Equal(coaches[j].CreatedAt) {
			return coaches[i].ID > coaches[j].ID
		}
		return coaches[i].CreatedAt.After(coaches[j].CreatedAt)
	})
	return &coaches[0], nil
}

func (r *coachRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx, repository.CollCoaches)()

	if _, ok := r.s.data.coaches[id]; !ok {
		return fmt.Errorf("coach: %w", repository.ErrNotFound)
	}
	delete(r.s.data.coaches, id)
	return nil
}
