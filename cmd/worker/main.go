package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/config"
	"github.com/learnledger/backend/internal/logger"
	"github.com/learnledger/backend/internal/notifications"
	"github.com/learnledger/backend/internal/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LearnLedger Worker")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	courseRepo := repositories.NewCachedCourseRepository(
		repositories.NewCourseRepository(db),
		rdb,
		cfg.Catalog.CacheTTL,
		logger.Logger,
	)

	// Create Asynq server
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Queues: map[string]int{
			notifications.QueueDefault: 1,
		},
	})

	handler := notifications.NewHandler(userRepo, notifications.NewSMTPMailer(cfg.SMTP), courseRepo, logger.Logger)

	// Register task handlers
	mux := asynq.NewServeMux()
	handler.Register(mux)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	// Start catalog refresh schedule
	scheduler, err := notifications.NewRefreshScheduler(cfg.Catalog.RefreshSchedule, asynqClient, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start()

	// Warm the cache once on startup
	notifications.EnqueueCatalogRefresh(ctx, asynqClient, logger.Logger)

	logger.Logger.Info("Worker started", zap.String("refresh_schedule", cfg.Catalog.RefreshSchedule))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	<-scheduler.Stop().Done()
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
