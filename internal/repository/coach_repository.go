package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CoachRepository struct {
	collection *mongo.Collection
}

func NewCoachRepository(db *mongo.Database) *CoachRepository {
	return &CoachRepository{
		collection: db.Collection(CollCoaches),
	}
}

// Create stores a coach profile; user_id is unique.
func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	if coach.ID == "" {
		coach.ID = NewID()
	}
	coach.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, coach); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("coach: %w", ErrDuplicate)
		}
		logger.Log.WithError(err).Error("Failed to insert coach")
		return fmt.Errorf("failed to create coach: %w", err)
	}
	return nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	var coach models.Coach
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coach); err != nil {
		return nil, findErr(err, "coach")
	}
	return &coach, nil
}

func (r *CoachRepository) GetByUserID(ctx context.Context, userID string) (*models.Coach, error) {
	var coach models.Coach
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&coach); err != nil {
		return nil, findErr(err, "coach")
	}
	return &coach, nil
}

// Latest returns the most recently registered coach.
func (r *CoachRepository) Latest(ctx context.Context) (*models.Coach, error) {
	var coach models.Coach
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&coach); err != nil {
		return nil, findErr(err, "coach")
	}
	return &coach, nil
}

func (r *CoachRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coach: %w", err)
	}
	return deleted(res, "coach")
}
