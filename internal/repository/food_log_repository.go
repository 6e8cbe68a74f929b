package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FoodLogRepository struct {
	collection *mongo.Collection
}

func NewFoodLogRepository(db *mongo.Database) *FoodLogRepository {
	return &FoodLogRepository{
		collection: db.Collection(CollFoodLog),
	}
}

func (r *FoodLogRepository) Create(ctx context.Context, entry *models.FoodLogEntry) error {
	if entry.ID == "" {
		entry.ID = NewID()
	}
	entry.ScannedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to log food: %w", err)
	}
	return nil
}

// List returns the user's entries newest first.
func (r *FoodLogRepository) List(ctx context.Context, userID string) ([]models.FoodLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scanned_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch food log: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.FoodLogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode food log: %w", err)
	}
	return entries, nil
}

func (r *FoodLogRepository) Delete(ctx context.Context, userID, entryID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": entryID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete food log entry: %w", err)
	}
	return deleted(res, "food log entry")
}
