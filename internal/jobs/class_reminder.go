package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/logger"
)

// ReminderWindow is how far ahead ClassReminder looks. It matches the
// cron period so each class is announced once.
const ReminderWindow = time.Hour

type ClassReminder struct {
	Classes             repository.LiveClasses
	NotificationService *services.NotificationService
	now                 func() time.Time
}

// NewClassReminder creates a new instance of ClassReminder
func NewClassReminder(classes repository.LiveClasses, notifService *services.NotificationService) *ClassReminder {
	return &ClassReminder{
		Classes:             classes,
		NotificationService: notifService,
		now:                 time.Now,
	}
}

// RunScan tells instructors about their classes starting within the next
// ReminderWindow and reports how many reminders went out.
func (d *ClassReminder) RunScan(ctx context.Context) (int, error) {
	classes, err := d.Classes.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch live classes: %v", err)
	}

	now := d.now().UTC()
	until := now.Add(ReminderWindow)

	sent := 0
	for _, class := range classes {
		if !class.StartAt.After(now) || class.StartAt.After(until) {
			continue
		}
		d.NotificationService.Notify(
			ctx,
			class.InstructorID,
			models.NotifyClassReminder,
			"Class Starting Soon",
			fmt.Sprintf("Your class \"%s\" starts at %s.", class.Title, class.Time),
			class.ID,
		)
		sent++
	}

	logger.Log.WithField("sent", sent).Info("Live class reminder scan completed")
	return sent, nil
}
