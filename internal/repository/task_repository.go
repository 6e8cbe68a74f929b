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

// TaskRepository stores the per-user task list. Every query is scoped by
// user_id, which stands in for the users/{id}/tasks sub-collection.
type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection(CollTasks),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = NewID()
	}
	task.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		logger.Log.WithError(err).Error("Failed to insert task")
		return fmt.Errorf("failed to create task: %w", err)
	}

	logger.Log.WithField("task_id", task.ID).Info("Task created successfully")
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": taskID, "user_id": userID}).Decode(&task)
	if err != nil {
		return nil, findErr(err, "task")
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch tasks")
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateDetails(ctx context.Context, userID, taskID string, in models.TaskInput, baseXP int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": taskID, "user_id": userID},
		bson.M{"$set": bson.M{
			"title":       in.Title,
			"description": in.Description,
			"difficulty":  in.Difficulty,
			"base_xp":     baseXP,
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", taskID).Error("Failed to update task")
		return fmt.Errorf("failed to update task: %w", err)
	}
	return matched(res, "task")
}

func (r *TaskRepository) MarkCompleted(ctx context.Context, userID, taskID string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": taskID, "user_id": userID},
		bson.M{"$set": bson.M{"status": models.TaskCompleted, "completed_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return matched(res, "task")
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": taskID, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", taskID).Error("Failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted(res, "task")
}
