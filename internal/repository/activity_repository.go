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

// ActivityRepository is the append-only XP ledger.
type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection(CollXPEvents),
	}
}

// Record appends an XP event
func (r *ActivityRepository) Record(ctx context.Context, event *models.XPEvent) error {
	if event.ID == "" {
		event.ID = NewID()
	}
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		logger.Log.WithError(err).Error("Failed to insert xp event")
		return fmt.Errorf("failed to insert xp event: %w", err)
	}
	return nil
}

// ListSince fetches the user's XP events at or after since, oldest first
func (r *ActivityRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]models.XPEvent, error) {
	filter := bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch xp events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.XPEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode xp events: %w", err)
	}
	return events, nil
}
