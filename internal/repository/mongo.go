package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoStore wires every MongoDB repository on db.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Tx:            NewMongoTransactor(db.Client()),
		Users:         NewUserRepository(db),
		Requests:      NewFriendRepository(db),
		Tasks:         NewTaskRepository(db),
		FoodLog:       NewFoodLogRepository(db),
		Coaches:       NewCoachRepository(db),
		LiveClasses:   NewLiveClassRepository(db),
		Notifications: NewNotificationRepository(db),
		Activities:    NewActivityRepository(db),
	}
}

// NewID returns a fresh document id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func findErr(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

func matched(res *mongo.UpdateResult, what string) error {
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func deleted(res *mongo.DeleteResult, what string) error {
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
