package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/health-o-mania/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeNotifier receives the name of every collection that changed.
type ChangeNotifier interface {
	Notify(collection string)
}

type changeEvent struct {
	NS struct {
		Coll string `bson:"coll"`
	} `bson:"ns"`
}

// WatchChanges tails the database change stream and forwards the affected
// collection of every committed write to n until ctx is cancelled.
// Change streams need a replica set, the same requirement as transactions.
func WatchChanges(ctx context.Context, db *mongo.Database, n ChangeNotifier) error {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"ns": 1}}},
	}
	stream, err := db.Watch(ctx, pipeline, options.ChangeStream())
	if err != nil {
		return fmt.Errorf("failed to open change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			logger.Log.WithError(err).Warn("Failed to decode change event")
			continue
		}
		if ev.NS.Coll != "" {
			n.Notify(ev.NS.Coll)
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("change stream stopped: %w", err)
	}
	return nil
}
