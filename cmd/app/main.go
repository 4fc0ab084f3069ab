package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apiHttp "github.com/silver-jubilee/backend/internal/api/http"
	"github.com/silver-jubilee/backend/internal/cache"
	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/db"
	"github.com/silver-jubilee/backend/internal/idp"
	"github.com/silver-jubilee/backend/internal/imagestore"
	"github.com/silver-jubilee/backend/internal/queue/asynqserver"
	queueClient "github.com/silver-jubilee/backend/internal/queue/client"
	"github.com/silver-jubilee/backend/internal/ratelimit"
	"github.com/silver-jubilee/backend/internal/repository"
	"github.com/silver-jubilee/backend/internal/server"
	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/internal/worker"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/email/smtp"
	"github.com/silver-jubilee/backend/pkg/hash"
	"github.com/silver-jubilee/backend/pkg/logger"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env)
	defer appLogger.Sync() //nolint:errcheck

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	if err := db.Migrate(dbMySQL); err != nil {
		appLogger.Error("schema migration failed", zap.Error(err))
		os.Exit(1)
	}

	hasher := hash.NewBcryptHasher(0)

	userTokens, err := auth.NewManager(cfg.Auth.UserJWT.SigningKey, cfg.Auth.UserJWT.TokenTTL, auth.RoleUser)
	if err != nil {
		appLogger.Error("user token manager creation err", zap.Error(err))
		return
	}

	adminTokens, err := auth.NewManager(cfg.Auth.AdminJWT.SigningKey, cfg.Auth.AdminJWT.TokenTTL, auth.RoleAdmin)
	if err != nil {
		appLogger.Error("admin token manager creation err", zap.Error(err))
		return
	}

	identityVerifier, err := idp.NewGoogleVerifier(context.Background(), cfg.Google.ClientID)
	if err != nil {
		appLogger.Error("google verifier creation failed", zap.Error(err))
		return
	}

	imageStore, err := imagestore.NewCloudinaryStore(cfg.ImageStore.CloudinaryURL)
	if err != nil {
		appLogger.Error("cloudinary store creation failed", zap.Error(err))
		return
	}

	if cfg.Email.Enabled && cfg.Cache.Redis.Address == "" {
		appLogger.Error("EMAIL_ENABLED requires REDIS_ADDR")
		return
	}

	var loginLimiter *ratelimit.LoginLimiter
	if cfg.Cache.Redis.Address != "" {
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			appLogger.Error("redis connect problem", zap.Error(err))
			os.Exit(1)
		}
		defer redisClient.Close() //nolint:errcheck
		appLogger.Info("redis connection done")

		loginLimiter = ratelimit.NewLoginLimiter(redisClient, cfg.Limiter.LoginAttempts, cfg.Limiter.LoginWindow)
	}

	// Status-decision notifications ride the asynq queue; without Redis the
	// admin endpoints still work, they just notify nobody.
	var notifier service.StatusNotifier
	if cfg.Email.Enabled {
		emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			appLogger.Error("smtp sender creation failed", zap.Error(err))
			return
		}

		workers := worker.NewWorkers(worker.Deps{
			EmailProvider: emailSender,
			Config:        cfg,
		})

		asynqSrv, mux := asynqserver.New(cfg.Cache, workers)
		if err := asynqSrv.Start(mux); err != nil {
			appLogger.Error("asynq server start failed", zap.Error(err))
			return
		}
		defer asynqSrv.Shutdown()

		enqueuer := queueClient.NewEnqueuer(asynqserver.RedisOptions(cfg.Cache))
		defer enqueuer.Close() //nolint:errcheck
		notifier = enqueuer
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:           cfg,
		Hasher:           hasher,
		UserTokens:       userTokens,
		AdminTokens:      adminTokens,
		IdentityVerifier: identityVerifier,
		ImageStore:       imageStore,
		Notifier:         notifier,
		Repos:            repos,
	})
	handlers := apiHttp.NewHandlers(services, userTokens, adminTokens, cfg, loginLimiter)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
