package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/config"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens the MongoDB connection and verifies it with a ping.
// Transactions and change streams need a replica set deployment.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	logger.Log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return client.Database(cfg.MongoDB), nil
}

// Indexes lists the indexes every collection needs. The unique ones back
// the invariants the repositories rely on.
func Indexes() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		repository.CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_code", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "last_active_at", Value: 1}}},
		},
		repository.CollFriendRequests: {
			{Keys: bson.D{{Key: "pair_key", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "to", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		repository.CollTasks: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		repository.CollFoodLog: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "scanned_at", Value: -1}}},
		},
		repository.CollCoaches: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		repository.CollLiveClasses: {
			{Keys: bson.D{{Key: "coach_doc_id", Value: 1}}},
			{Keys: bson.D{{Key: "start_at", Value: -1}}},
		},
		repository.CollNotifications: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		repository.CollXPEvents: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the indexes from Indexes. It is safe to run on
// every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %v", coll, err)
		}
	}
	logger.Log.Info("MongoDB indexes ensured")
	return nil
}
