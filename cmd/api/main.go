package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/audit"
	"github.com/R4F43R/barbapp/internal/config"
	dbpkg "github.com/R4F43R/barbapp/internal/db"
	"github.com/R4F43R/barbapp/internal/events"
	"github.com/R4F43R/barbapp/internal/infra/lock"
	"github.com/R4F43R/barbapp/internal/infra/repository"
	"github.com/R4F43R/barbapp/internal/infra/storage"
	"github.com/R4F43R/barbapp/internal/logger"
	"github.com/R4F43R/barbapp/internal/routes"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := cfg.Schedule().Hours.Validate(); err != nil {
		zlog.Fatal("invalid business hours",
			zap.String("open", cfg.BusinessOpen),
			zap.String("close", cfg.BusinessClose),
			zap.Error(err),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	locks := newLocker(ctx, cfg, zlog)
	infra := routes.Infra{
		Events: newPublisher(cfg, zlog),
		Images: newImageResolver(cfg),
	}

	var auditSink audit.Sink = audit.NewLogSink(zlog)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		infra.Appointments = repository.NewAppointmentMemoryRepository(locks)
		infra.Catalog = repository.NewCatalogMemoryRepository(
			repository.DefaultServices(),
			repository.DefaultBarbers(),
		)

	default:
		db, err := dbpkg.NewDB(cfg, zlog)
		if err != nil {
			zlog.Fatal("database", zap.Error(err))
		}

		catalog := repository.NewCatalogGormRepository(db)
		if err := catalog.Seed(ctx); err != nil {
			zlog.Fatal("seed catalog", zap.Error(err))
		}

		infra.DB = db
		infra.Catalog = catalog
		infra.Appointments = repository.NewAppointmentGormRepository(db, locks)
		auditSink = audit.NewGormSink(db)
	}

	infra.Audit = audit.NewDispatcher(auditSink, zlog.Named("audit"))

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(ctx, r, infra, cfg, zlog)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("store", cfg.StoreDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	if err := infra.Audit.Close(shutdownCtx); err != nil {
		zlog.Warn("audit drain", zap.Error(err))
	}
	if err := infra.Events.Close(); err != nil {
		zlog.Warn("events close", zap.Error(err))
	}
}

// newLocker uses redis when REDIS_ADDR is set so several instances share the
// per-barber lock; otherwise locks are process-local.
func newLocker(ctx context.Context, cfg *config.Config, zlog *zap.Logger) lock.Locker {
	if cfg.RedisAddr == "" {
		return lock.NewLocalLocker()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	locker := lock.NewRedisLocker(rdb, cfg.LockTTL, zlog.Named("lock"))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := locker.Ping(pingCtx); err != nil {
		zlog.Fatal("redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return locker
}

func newPublisher(cfg *config.Config, zlog *zap.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		zlog.Fatal("rabbitmq", zap.Error(err))
	}
	return pub
}

func newImageResolver(cfg *config.Config) storage.ImageResolver {
	if cfg.StaffImageBucket == "" {
		return storage.PassthroughResolver{}
	}
	return storage.NewS3ImageResolver(storage.S3Config{
		Bucket:          cfg.StaffImageBucket,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Expires:         cfg.ImageURLTTL,
	})
}
