package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type foodLogRepo struct{ s *Store }

func (r *foodLogRepo) Create(ctx context.Context, entry *models.FoodLogEntry) error {
	defer r.s.write(ctx, repository.CollFoodLog)()

	if entry.ID == "" {
		entry.ID = repository.NewID()
	}
	entry.ScannedAt = time.Now().UTC()
	r.s.data.foodLog[entry.ID] = *entry
	return nil
}

func (r *foodLogRepo) List(ctx context.Context, userID string) ([]models.FoodLogEntry, error) {
	defer r.s.read(ctx)()

	entries := []models.FoodLogEntry{}
	for _, e := range r.s.data.foodLog {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ScannedAt.After(entries[j].ScannedAt)
	})
	return entries, nil
}

func (r *foodLogRepo) Delete(ctx context.Context, userID, entryID string) error {
	defer r.s.write(ctx, repository.CollFoodLog)()

	e, ok := r.s.data.foodLog[entryID]
	if !ok || e.UserID != userID {
		return fmt.Errorf("food log entry: %w", repository.ErrNotFound)
	}
	delete(r.s.data.foodLog, entryID)
	return nil
}
