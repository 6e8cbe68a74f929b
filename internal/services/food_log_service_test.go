package services

import (
	"context"
	"testing"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodLog(t *testing.T) {
	svc := NewFoodLogService(newStore(t))
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, "alice", models.FoodLogInput{FoodName: "  "})
	requireCode(t, err, apperr.InvalidArgument, "FoodName is required.")
	_, err = svc.AddEntry(ctx, "alice", models.FoodLogInput{FoodName: "Toast", Calories: -1})
	requireCode(t, err, apperr.InvalidArgument, "Calories must not be negative.")

	entry, err := svc.AddEntry(ctx, "alice", models.FoodLogInput{FoodName: " Apple ", Calories: 95, Carb: 25})
	require.NoError(t, err)
	assert.Equal(t, "Apple", entry.FoodName)
	assert.False(t, entry.ScannedAt.IsZero())

	list, err := svc.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	others, err := svc.ListEntries(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, others)

	requireCode(t, svc.RemoveEntry(ctx, "bob", entry.ID), apperr.NotFound, "Food log entry not found.")
	require.NoError(t, svc.RemoveEntry(ctx, "alice", entry.ID))
	requireCode(t, svc.RemoveEntry(ctx, "alice", entry.ID), apperr.NotFound, "Food log entry not found.")
}
