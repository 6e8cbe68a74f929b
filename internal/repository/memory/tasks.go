package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type taskRepo struct{ s *Store }

func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	defer r.s.write(ctx, repository.CollTasks)()

	if task.ID == "" {
		task.ID = repository.NewID()
	}
	task.CreatedAt = time.Now().UTC()
	r.s.data.tasks[task.ID] = *task
	return nil
}

// owned looks up a task that belongs to userID. Callers hold the lock.
func (r *taskRepo) owned(userID, taskID string) (models.Task, error) {
	t, ok := r.s.data.tasks[taskID]
	if !ok || t.UserID != userID {
		return models.Task{}, fmt.Errorf("task: %w", repository.ErrNotFound)
	}
	return t, nil
}

func (r *taskRepo) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	defer r.s.read(ctx)()

	t, err := r.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, userID string) ([]models.Task, error) {
	defer r.s.read(ctx)()

	tasks := []models.Task{}
	for _, t := range r.s.data.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepo) UpdateDetails(ctx context.Context, userID, taskID string, in models.TaskInput, baseXP int) error {
	defer r.s.write(ctx, repository.CollTasks)()

	t, err := r.owned(userID, taskID)
	if err != nil {
		return err
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Difficulty = in.Difficulty
	t.BaseXP = baseXP
	r.s.data.tasks[taskID] = t
	return nil
}

func (r *taskRepo) MarkCompleted(ctx context.Context, userID, taskID string, at time.Time) error {
	defer r.s.write(ctx, repository.CollTasks)()

	t, err := r.owned(userID, taskID)
	if err != nil {
		return err
	}
	t.Status = models.TaskCompleted
	t.CompletedAt = &at
	r.s.data.tasks[taskID] = t
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, userID, taskID string) error {
	defer r.s.write(ctx, repository.CollTasks)()

	if _, err := r.owned(userID, taskID); err != nil {
		return err
	}
	delete(r.s.data.tasks, taskID)
	return nil
}
