package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tempus/core/cache"
	"tempus/core/config"
	"tempus/core/database"
	"tempus/core/jobs"
	"tempus/core/logger"
	"tempus/core/middleware"
	"tempus/core/storage"
	"tempus/modules/availability"
	"tempus/modules/event"
	"tempus/modules/freebusy"
	"tempus/modules/notification"
	"tempus/modules/report"
	"tempus/modules/scheduling"
	"tempus/modules/sharing"
	"tempus/modules/team"
	"tempus/modules/user"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the HTTP server and the background worker, wires every module,
// and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return err
	}

	busyCache, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// The cache is best-effort; a nil cache is a permanent miss.
		logger.Warn("Redis unavailable, free/busy caching disabled", "error", err)
		busyCache = nil
	}
	jobsClient := jobs.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	e := echo.New()
	e.HideBanner = true
	mw := middleware.New(cfg)
	e.Use(echoMiddleware.Recover())
	e.Use(mw.RequestID())

	userSvc := user.Init(e, db, mw)
	team.Init(e, db, mw)
	policySvc := sharing.Init(e, db, mw)
	_, eventRepo := event.Init(e, db, mw, userSvc, jobsClient)

	cacheTTL := time.Duration(cfg.Scheduling.FreeBusyCacheTTLSecs) * time.Second
	fbSvc := freebusy.Init(e, mw, eventRepo, policySvc, busyCache, cacheTTL)
	availSvc := availability.Init(e, mw, userSvc, fbSvc, cfg.Scheduling.UnknownPenaltyPct)
	scheduling.Init(e, mw, availSvc, eventRepo, cfg.Scheduling)
	notifSvc := notification.Init(e, db, mw)

	if cfg.S3.Bucket != "" {
		store := storage.NewS3Store(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		report.Init(e, mw, availSvc, store)
	} else {
		logger.Warn("S3 bucket not configured, report generation disabled")
	}

	worker := jobs.NewServer(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeFreeBusyInvalidate, func(ctx context.Context, task *asynq.Task) error {
		var payload jobs.FreeBusyInvalidatePayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", jobs.TypeFreeBusyInvalidate, err)
		}
		fbSvc.InvalidateUsers(ctx, payload.UserIDs)
		return nil
	})
	mux.HandleFunc(jobs.TypeEventChangedNotify, notifSvc.HandleEventChangedNotify)

	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Background worker stopped", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()
	logger.Info("Server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	worker.Shutdown()
	if err := jobsClient.Close(); err != nil {
		logger.Warn("Jobs client close", "error", err)
	}
	if err := busyCache.Close(); err != nil {
		logger.Warn("Cache close", "error", err)
	}
	return e.Shutdown(ctx)
}
