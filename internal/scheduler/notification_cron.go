package scheduler

import (
	"context"

	"github.com/Dias221467/health-o-mania/internal/jobs"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StartNotificationCronJobs schedules the periodic notification work and
// returns the running scheduler so the caller can stop it.
func StartNotificationCronJobs(notificationService *services.NotificationService, reminder *jobs.ClassReminder) (*cron.Cron, error) {
	c := cron.New()

	// Inactive user reminders
	if _, err := c.AddFunc("0 0 * * *", func() {
		if _, err := notificationService.CheckInactiveUsers(context.Background()); err != nil {
			logger.Log.WithError(err).Error("CheckInactiveUsers failed")
		}
	}); err != nil {
		return nil, err
	}

	// Expired notification cleanup
	if _, err := c.AddFunc("@hourly", func() {
		if _, err := notificationService.DeleteExpired(context.Background()); err != nil {
			logger.Log.WithError(err).Error("DeleteExpired failed")
		}
	}); err != nil {
		return nil, err
	}

	// Live classes starting within the hour
	if _, err := c.AddFunc("@hourly", func() {
		if _, err := reminder.RunScan(context.Background()); err != nil {
			logger.Log.WithError(err).Error("Class reminder scan failed")
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.WithField("jobs", len(c.Entries())).Info("Notification cron jobs started")
	return c, nil
}
