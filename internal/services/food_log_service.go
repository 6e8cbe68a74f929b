package services

import (
	"context"
	"strings"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type FoodLogService struct {
	repo repository.FoodLog
}

func NewFoodLogService(store *repository.Store) *FoodLogService {
	return &FoodLogService{repo: store.FoodLog}
}

// AddEntry logs a meal; scannedAt is set by the store.
func (s *FoodLogService) AddEntry(ctx context.Context, userID string, in models.FoodLogInput) (*models.FoodLogEntry, error) {
	in.FoodName = strings.TrimSpace(in.FoodName)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	entry := &models.FoodLogEntry{
		UserID:   userID,
		FoodName: in.FoodName,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carb:     in.Carb,
		Fat:      in.Fat,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FoodLogService) ListEntries(ctx context.Context, userID string) ([]models.FoodLogEntry, error) {
	return s.repo.List(ctx, userID)
}

func (s *FoodLogService) RemoveEntry(ctx context.Context, userID, entryID string) error {
	return notFound(s.repo.Delete(ctx, userID, entryID), "Food log entry not found.")
}
