package services

import (
	"context"
	"testing"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	calls int
}

func (g *stubGenerator) GenerateWorkoutPlan(context.Context, models.WorkoutPlanInput) (*models.WorkoutPlan, error) {
	g.calls++
	return &models.WorkoutPlan{WorkoutPlan: "plan"}, nil
}

func (g *stubGenerator) GenerateMealPlan(context.Context, models.MealPlanInput) (*models.MealPlan, error) {
	g.calls++
	return &models.MealPlan{MealPlan: "meals"}, nil
}

func (g *stubGenerator) ScanFood(context.Context, models.ScanFoodInput) (*models.FoodScan, error) {
	g.calls++
	return &models.FoodScan{FoodName: "Apple"}, nil
}

func (g *stubGenerator) Chat(context.Context, models.ChatInput) (*models.ChatReply, error) {
	g.calls++
	return &models.ChatReply{Message: "hi"}, nil
}

func TestPlanService_ValidatesBeforeCallingModel(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewPlanService(gen)
	ctx := context.Background()

	_, err := svc.WorkoutPlan(ctx, models.WorkoutPlanInput{Difficulty: "Beginner"})
	requireCode(t, err, apperr.InvalidArgument, "GoalType is required.")
	_, err = svc.ScanFood(ctx, models.ScanFoodInput{PhotoDataURI: "http://example.com/a.png"})
	requireCode(t, err, apperr.InvalidArgument, "PhotoDataURI must be a data URI.")
	_, err = svc.Chat(ctx, models.ChatInput{Message: "hi", History: []models.ChatTurn{{Role: "system", Content: "x"}}})
	requireCode(t, err, apperr.InvalidArgument, "")
	assert.Zero(t, gen.calls)

	plan, err := svc.WorkoutPlan(ctx, models.WorkoutPlanInput{GoalType: "Strength", Difficulty: "Beginner"})
	require.NoError(t, err)
	assert.Equal(t, "plan", plan.WorkoutPlan)
	_, err = svc.MealPlan(ctx, models.MealPlanInput{DietPref: "Vegan", GoalType: "Cut"})
	require.NoError(t, err)
	_, err = svc.ScanFood(ctx, models.ScanFoodInput{PhotoDataURI: "data:image/png;base64,iVBORw0KGgo="})
	require.NoError(t, err)
	assert.Equal(t, 3, gen.calls)
}
