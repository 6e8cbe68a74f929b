package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/metrics"
	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
)

// TaskService manages a user's tasks and grants XP when one is completed.
type TaskService struct {
	tx                  repository.Transactor
	repo                repository.Tasks
	userRepo            repository.Users
	activityRepo        repository.Activities
	NotificationService *NotificationService
	now                 func() time.Time
}

func NewTaskService(store *repository.Store, notificationService *NotificationService) *TaskService {
	return &TaskService{
		tx:                  store.Tx,
		repo:                store.Tasks,
		userRepo:            store.Users,
		activityRepo:        store.Activities,
		NotificationService: notificationService,
		now:                 time.Now,
	}
}

func baseXP(d models.Difficulty) (int, error) {
	xp, ok := d.BaseXP()
	if !ok {
		return 0, apperr.New(apperr.InvalidArgument, "Difficulty must be one of: Easy, Medium, Hard.")
	}
	return xp, nil
}

// AddTask creates a pending task; its base XP is fixed from the difficulty.
func (s *TaskService) AddTask(ctx context.Context, userID string, in models.TaskInput) (*models.Task, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	xp, err := baseXP(in.Difficulty)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		BaseXP:      xp,
		Status:      models.TaskPending,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Service failed to create task")
		return nil, err
	}
	return task, nil
}

// UpdateTask edits title, description and difficulty. The base XP follows
// the new difficulty; the status is left alone.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, in models.TaskInput) (*models.Task, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	xp, err := baseXP(in.Difficulty)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDetails(ctx, userID, taskID, in, xp); err != nil {
		logger.Log.WithField("task_id", taskID).WithError(err).Warn("Failed to update task")
		return nil, notFound(err, "Task not found.")
	}
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err, "Task not found.")
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return notFound(err, "Task not found.")
	}
	logger.Log.WithField("task_id", taskID).Info("Task deleted")
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.repo.List(ctx, userID)
}

// CompleteTask moves a pending task to completed and applies its XP to the
// owner, in one transaction. Completing a task that is not pending changes
// nothing and reports Applied=false.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID string) (*models.Completion, error) {
	var result *models.Completion
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		result = &models.Completion{TaskID: taskID}

		task, err := s.repo.GetByID(ctx, userID, taskID)
		if err != nil {
			return notFound(err, "Task not found.")
		}
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return notFound(err, "Your user profile could not be found.")
		}
		result.Before = user.Progress()
		result.After = result.Before
		if task.Status != models.TaskPending {
			return nil
		}

		after, levels := ApplyXP(result.Before, task.BaseXP)
		now := s.now().UTC()

		if err := s.userRepo.SetProgress(ctx, userID, after); err != nil {
			return err
		}
		if err := s.repo.MarkCompleted(ctx, userID, taskID, now); err != nil {
			return err
		}
		if err := s.activityRepo.Record(ctx, &models.XPEvent{
			UserID:    userID,
			TaskID:    taskID,
			XPGained:  task.BaseXP,
			Level:     after.Level,
			Timestamp: now,
		}); err != nil {
			return err
		}

		*result = models.Completion{
			TaskID:   taskID,
			Applied:  true,
			XPGained: task.BaseXP,
			LevelsUp: levels,
			Before:   result.Before,
			After:    after,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Applied {
		return result, nil
	}

	metrics.TasksCompleted.Inc()
	metrics.XPAwarded.Add(float64(result.XPGained))
	metrics.LevelUps.Add(float64(result.LevelsUp))
	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID,
		"task_id": taskID,
		"xp":      result.XPGained,
		"level":   result.After.Level,
	}).Info("Task completed")

	if result.LevelsUp > 0 {
		s.NotificationService.Notify(ctx, userID, models.NotifyLevelUp,
			"Level Up!",
			fmt.Sprintf("You reached level %d! Keep it up!", result.After.Level),
			taskID,
		)
	} else {
		s.NotificationService.Notify(ctx, userID, models.NotifyTaskCompleted,
			"Task Completed!",
			fmt.Sprintf("You earned %d XP.", result.XPGained),
			taskID,
		)
	}
	return result, nil
}
