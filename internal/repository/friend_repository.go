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

type FriendRepository struct {
	collection *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection(CollFriendRequests),
	}
}

// Create stores a pending request. The unique index on pair_key rejects a
// second request for the same pair whichever direction it goes.
func (r *FriendRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	if req.ID == "" {
		req.ID = NewID()
	}
	req.Participants = []string{req.From, req.To}
	req.PairKey = models.PairKey(req.From, req.To)
	req.Status = models.RequestPending
	req.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("friend request: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to send friend request: %w", err)
	}
	return nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		return nil, findErr(err, "friend request")
	}
	return &request, nil
}

func (r *FriendRepository) FindBetween(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	filter := bson.M{"participants": bson.M{"$all": []string{a, b}}}
	if err := r.collection.FindOne(ctx, filter).Decode(&request); err != nil {
		return nil, findErr(err, "friend request")
	}
	return &request, nil
}

func (r *FriendRepository) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	filter := bson.M{"to": userID, "status": models.RequestPending}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.FriendRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %w", err)
	}
	return requests, nil
}

func (r *FriendRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	return deleted(res, "friend request")
}
