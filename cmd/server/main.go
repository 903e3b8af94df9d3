package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/config"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/handler"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/router"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/jobs"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/repository"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/database"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/jwt"
	applogger "github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/logger"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/observability"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/redis"
)

func main() {
	// 1. config: .env is optional and only fills unset variables
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging and error reporting
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	flushSentry, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.Sentry.Release)
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer flushSentry()

	loc, err := cfg.Tracking.Location()
	if err != nil {
		logger.Fatal("load tracking timezone", zap.Error(err))
	}

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("tracking_tz", loc.String()),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis is optional: without it tokens are not revocable, uploads are
	// not rate limited and every replica sweeps
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	// 5. wiring: repository -> service -> handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, loc, logger)
	var revoker handler.Revoker
	if rdb != nil {
		revoker = rdb
	}
	h := handler.NewHandler(svc, jwtMgr, revoker)
	engine := router.Setup(cfg, h, jwtMgr, rdb, db, logger)

	// 6. overdue sweep
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var sweep *jobs.OverdueSweep
	if cfg.Tracking.SweepEnabled {
		var locker jobs.Locker
		if rdb != nil {
			locker = rdb
		}
		sweep = jobs.NewOverdueSweep(svc.Tracking, locker, &cfg.Tracking, loc, logger, observability.CaptureErr)
		if _, err := sweep.RunOnce(ctx); err != nil {
			logger.Warn("startup sweep failed", zap.Error(err))
		}
		if err := sweep.Start(ctx); err != nil {
			logger.Fatal("schedule overdue sweep", zap.Error(err))
		}
	}

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	stop()
	if sweep != nil {
		_ = sweep.Stop()
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("stopped")
}
