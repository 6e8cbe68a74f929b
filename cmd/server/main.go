package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/health-o-mania/internal/ai"
	"github.com/Dias221467/health-o-mania/internal/cache"
	"github.com/Dias221467/health-o-mania/internal/config"
	"github.com/Dias221467/health-o-mania/internal/database"
	"github.com/Dias221467/health-o-mania/internal/handlers"
	"github.com/Dias221467/health-o-mania/internal/jobs"
	"github.com/Dias221467/health-o-mania/internal/realtime"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/internal/repository/memory"
	"github.com/Dias221467/health-o-mania/internal/scheduler"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/email"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()

	// --- Store ---
	var store *repository.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		store = memory.New(hub).Repositories()
	default:
		db, err := database.ConnectDB(cfg)
		if err != nil {
			logger.Log.Fatalf("Database connection error: %v", err)
		}
		defer db.Client().Disconnect(context.Background())

		if err := database.EnsureIndexes(ctx, db); err != nil {
			logger.Log.Fatalf("Index setup error: %v", err)
		}
		store = repository.NewMongoStore(db)

		go func() {
			if err := repository.WatchChanges(ctx, db, hub); err != nil {
				logger.Log.WithError(err).Error("Live updates stopped")
			}
		}()
	}

	// User-code lookups go through Redis when it is configured
	friendUsers := store.Users
	if cfg.RedisAddr != "" {
		rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, user-code cache disabled")
		} else {
			defer rdb.Close()
			friendUsers = cache.NewCachedUsers(store.Users, cache.NewRedisKV(rdb), cfg.UserCodeCacheTTL)
		}
	}

	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SMTPSender,
		Password: cfg.SMTPPassword,
	})
	if !mailer.Enabled() {
		logger.Log.Warn("SMTP_HOST not set, emails disabled")
	}

	// --- Services ---
	notificationService := services.NewNotificationService(store)
	userService := services.NewUserService(store.Users, mailer, cfg.JWTSecret, cfg.TokenExpiry)
	friendService := services.NewFriendService(store, friendUsers, notificationService)
	taskService := services.NewTaskService(store, notificationService)
	foodLogService := services.NewFoodLogService(store)
	coachService := services.NewCoachService(store, services.NewBannerStore(cfg.UploadDir), mailer)
	planService := services.NewPlanService(ai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL))
	scoreboardService := services.NewScoreboardService(store)
	syncService := services.NewSyncService(hub, store, friendService)

	// --- Cron ---
	reminder := jobs.NewClassReminder(store.LiveClasses, notificationService)
	crons, err := scheduler.StartNotificationCronJobs(notificationService, reminder)
	if err != nil {
		logger.Log.Fatalf("Cron setup error: %v", err)
	}
	defer crons.Stop()

	// --- Handlers ---
	router := handlers.NewRouter(handlers.Handlers{
		User:         handlers.NewUserHandler(userService),
		Friend:       handlers.NewFriendHandler(friendService),
		Task:         handlers.NewTaskHandler(taskService),
		FoodLog:      handlers.NewFoodLogHandler(foodLogService),
		Coach:        handlers.NewCoachHandler(coachService),
		Plan:         handlers.NewPlanHandler(planService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Scoreboard:   handlers.NewScoreboardHandler(scoreboardService),
		Sync:         handlers.NewSyncHandler(syncService, cfg.JWTSecret),
	}, cfg.JWTSecret, cfg.UploadDir, userService)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}
