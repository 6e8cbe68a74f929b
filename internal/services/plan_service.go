package services

import (
	"context"

	"github.com/Dias221467/health-o-mania/internal/models"
)

// Generator is the hosted model behind the AI features.
type Generator interface {
	GenerateWorkoutPlan(ctx context.Context, in models.WorkoutPlanInput) (*models.WorkoutPlan, error)
	GenerateMealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error)
	ScanFood(ctx context.Context, in models.ScanFoodInput) (*models.FoodScan, error)
	Chat(ctx context.Context, in models.ChatInput) (*models.ChatReply, error)
}

// PlanService validates AI requests before they reach the model.
type PlanService struct {
	gen Generator
}

func NewPlanService(gen Generator) *PlanService {
	return &PlanService{gen: gen}
}

func (s *PlanService) WorkoutPlan(ctx context.Context, in models.WorkoutPlanInput) (*models.WorkoutPlan, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.gen.GenerateWorkoutPlan(ctx, in)
}

func (s *PlanService) MealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.gen.GenerateMealPlan(ctx, in)
}

func (s *PlanService) ScanFood(ctx context.Context, in models.ScanFoodInput) (*models.FoodScan, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.gen.ScanFood(ctx, in)
}

func (s *PlanService) Chat(ctx context.Context, in models.ChatInput) (*models.ChatReply, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.gen.Chat(ctx, in)
}
