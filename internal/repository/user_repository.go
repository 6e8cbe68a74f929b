package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(CollUsers),
	}
}

// Create inserts a new user. Email and user code are unique.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = NewID()
	}
	if user.Friends == nil {
		user.Friends = []string{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user: %w", ErrDuplicate)
		}
		logger.Log.WithError(err).Error("Failed to insert user into database")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Log.WithField("userID", user.ID).Info("User inserted successfully")
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, findErr(err, "user")
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, findErr(err, "user")
	}
	return &user, nil
}

// GetByUserCode resolves a shareable user code.
func (r *UserRepository) GetByUserCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"user_code": code}).Decode(&user); err != nil {
		return nil, findErr(err, "user")
	}
	return &user, nil
}

// GetByIDs fetches user details for a list of ids (mainly for friends).
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// ListInactiveSince returns users whose last activity is before cutoff.
func (r *UserRepository) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"last_active_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inactive users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateProfile sets the editable profile fields that are present.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.PhotoURL != nil {
		set["photo_url"] = *update.PhotoURL
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"userID": id,
			"error":  err,
		}).Error("Failed to update user")
		return fmt.Errorf("failed to update user: %w", err)
	}
	return matched(res, "user")
}

// SetProgress writes level, xp and xp_to_next_level.
func (r *UserRepository) SetProgress(ctx context.Context, id string, p models.Progress) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"level":            p.Level,
		"xp":               p.XP,
		"xp_to_next_level": p.XPToNextLevel,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return matched(res, "user")
}

func (r *UserRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_active_at": at}})
	if err != nil {
		return fmt.Errorf("failed to update last activity: %w", err)
	}
	return nil
}

func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}}, // avoid duplicates
	)
	if err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return matched(res, "user")
}

func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID string) error {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend from user %s: %w", userID, err)
	}
	return matched(res, "user")
}
