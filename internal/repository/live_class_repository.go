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

type LiveClassRepository struct {
	collection *mongo.Collection
}

func NewLiveClassRepository(db *mongo.Database) *LiveClassRepository {
	return &LiveClassRepository{
		collection: db.Collection(CollLiveClasses),
	}
}

func (r *LiveClassRepository) Create(ctx context.Context, class *models.LiveClass) error {
	if class.ID == "" {
		class.ID = NewID()
	}
	class.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, class); err != nil {
		return fmt.Errorf("failed to create live class: %w", err)
	}
	return nil
}

func (r *LiveClassRepository) GetByID(ctx context.Context, id string) (*models.LiveClass, error) {
	var class models.LiveClass
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&class); err != nil {
		return nil, findErr(err, "live class")
	}
	return &class, nil
}

// List returns every class, latest start first.
func (r *LiveClassRepository) List(ctx context.Context) ([]models.LiveClass, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live classes: %w", err)
	}
	defer cursor.Close(ctx)

	classes := []models.LiveClass{}
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode live classes: %w", err)
	}
	return classes, nil
}

func (r *LiveClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete live class: %w", err)
	}
	return deleted(res, "live class")
}

func (r *LiveClassRepository) DeleteByCoach(ctx context.Context, coachID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"coach_doc_id": coachID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete classes of coach %s: %w", coachID, err)
	}
	return res.DeletedCount, nil
}
