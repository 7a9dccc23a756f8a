package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/groomer-scheduler/internal/db"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/guard"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/notify"
	infraRepo "github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/groomer-scheduler/internal/jobs"
	"github.com/BruksfildServices01/groomer-scheduler/internal/logger"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groomer-scheduler/internal/routes"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/reminder"
	"github.com/BruksfildServices01/groomer-scheduler/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	db, err := dbpkg.Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}
	if err := dbpkg.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	created, err := dbpkg.SeedOwner(db, cfg.OwnerEmail, cfg.OwnerPassword, cfg.OwnerName)
	if err != nil {
		zlog.Fatal("failed to seed owner", zap.Error(err))
	}
	if created {
		zlog.Info("owner account created", zap.String("email", cfg.OwnerEmail))
	}

	// ======================================================
	// INFRA
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), zlog.Named("audit"))

	var sender notify.Sender
	if cfg.NotifyFunctionURL != "" {
		sender = notify.NewFunctionClient(cfg.NotifyFunctionURL, cfg.NotifyFunctionKey)
	} else {
		zlog.Info("notifications disabled: NOTIFY_FUNCTION_URL empty, messages are only logged")
	}
	notifyDispatcher := notify.NewDispatcher(sender, zlog.Named("notify"))

	var store domain.FileStore = storage.DisabledStore{}
	if cfg.StorageEnabled() {
		s3cfg := storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		}
		store = storage.NewS3Store(storage.NewS3Client(s3cfg), s3cfg)
	} else {
		zlog.Warn("object storage disabled: S3_BUCKET empty, uploads will fail")
	}

	var locker middleware.SubmitLocker
	if cfg.RedisAddr != "" {
		rdb := guard.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unreachable, submit guard fails open", zap.Error(err))
		}
		cancel()

		locker = guard.NewSubmitGuard(rdb, cfg.SubmitGuardTTL)
	}

	validators.RegisterGin()

	// ======================================================
	// JOBS
	// ======================================================
	digest := jobs.NewReminderDigest(
		reminder.NewListDuePets(infraRepo.NewPetGormRepository(db), cfg.Timezone),
		zlog.Named("jobs"),
	)
	scheduler, err := jobs.Schedule(cfg.ReminderDigestCron, cfg.Timezone, digest)
	if err != nil {
		zlog.Fatal("invalid REMINDER_DIGEST_CRON", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Start()
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      zlog,
		Audit:    auditDispatcher,
		Notifier: notifyDispatcher,
		Store:    store,
		Locker:   locker,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	// drena audit e notificações pendentes
	auditDispatcher.Close()
	notifyDispatcher.Close()
}
