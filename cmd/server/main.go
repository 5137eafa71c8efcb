package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Amorphous121/jobboard/internal/config"
	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/handler"
	"github.com/Amorphous121/jobboard/internal/mailer"
	"github.com/Amorphous121/jobboard/internal/middleware"
	"github.com/Amorphous121/jobboard/internal/repository"
	"github.com/Amorphous121/jobboard/internal/repository/memory"
	"github.com/Amorphous121/jobboard/internal/repository/mongodb"
	"github.com/Amorphous121/jobboard/internal/service"
	"github.com/Amorphous121/jobboard/internal/storage"
	"github.com/Amorphous121/jobboard/pkg/jwt"
)

// store bundles the repositories of the selected backend
type store struct {
	users  service.UserRepository
	jobs   service.JobRepository
	pinger database.Pinger
	close  func() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database connection
	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer func() { _ = st.close() }()

	slog.Info("connected to database", slog.String("driver", cfg.Database.Driver))

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		Expiration:     cfg.JWT.ExpiresIn,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uploader, err := openUploader(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize object storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	var mail mailer.Sender = mailer.Log{}
	if cfg.Mail.Enabled {
		mail = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     st.users,
		TokenService: tokenService,
		Mailer:       mail,
	})

	jobService := service.NewJobService(service.JobServiceConfig{
		JobRepo:        st.jobs,
		Uploader:       uploader,
		KeyPrefix:      cfg.Storage.KeyPrefix,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})

	// Initialize rate limiter; register and login get a tighter budget
	authPolicy := middleware.Policy{Limit: cfg.Server.AuthRateLimit, Per: time.Minute}
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Default: middleware.Policy{Limit: cfg.Server.RateLimit, Per: time.Minute, Burst: cfg.Server.RateBurst},
		Paths: map[string]middleware.Policy{
			"/api/v1/register": authPolicy,
			"/api/v1/login":    authPolicy,
		},
	})
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go rateLimiter.Run(sweepCtx, 5*time.Minute)

	mux := handler.Routes(handler.RoutesConfig{
		Auth:        handler.NewAuthHandler(authService),
		Jobs:        handler.NewJobHandler(jobService),
		Health:      handler.NewHealthHandler(st.pinger),
		RequireAuth: middleware.Auth(authService),
	})

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("storage", cfg.Storage.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	// Let in-flight welcome mails finish
	authService.Wait()

	slog.Info("server exited")
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &store{
			users:  memory.NewUserRepository(),
			jobs:   memory.NewJobRepository(),
			pinger: memory.Pinger{},
			close:  func() error { return nil },
		}, nil

	case config.DriverSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Surreal.Host,
			Port:      cfg.Surreal.Port,
			User:      cfg.Surreal.User,
			Password:  cfg.Surreal.Password,
			Namespace: cfg.Surreal.Namespace,
			Database:  cfg.Surreal.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		return &store{
			users:  repository.NewUserRepository(db),
			jobs:   repository.NewJobRepository(db),
			pinger: db,
			close:  db.Close,
		}, nil

	case config.DriverMongo:
		db := database.NewMongo(database.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		return &store{
			users:  mongodb.NewUserRepository(db),
			jobs:   mongodb.NewJobRepository(db),
			pinger: db,
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// openUploader returns nil when storage is disabled; uploads then fail with 500
func openUploader(ctx context.Context, cfg config.StorageConfig) (storage.Uploader, error) {
	sc := storage.Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		UseSSL:          cfg.UseSSL,
	}

	switch cfg.Driver {
	case config.StorageS3:
		return storage.NewS3(ctx, sc)
	case config.StorageMinio:
		return storage.NewMinIO(ctx, sc)
	}
	return nil, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
