// @title EventHub API
// @version 1.0
// @description Event management backend: events, search, RSVPs, likes, comments, reviews and follows.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	_ "eventhub/docs"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/cache"
	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/notify"
	deliveryhttp "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/domain"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/search"
	"eventhub/internal/services"
)

const (
	memoryCacheCleanup = 5 * time.Minute
	shutdownTimeout    = 10 * time.Second
	inlineSendTimeout  = 30 * time.Second
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := db.PingContext(ctx)
		cancel()
		if err != nil {
			logger.Error("db ping failed", "err", err)
			os.Exit(1)
		}
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	engagementRepo := postgres.NewEngagementRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// Search cache
	resultCache, closeCache := newResultCache(cfg, logger)
	defer closeCache()
	searcher := search.NewSearcher(eventRepo, resultCache, cfg.SearchCacheTTL, logger)

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Notifications
	dispatcher, closeDispatcher, err := newDispatcher(cfg, emailService, logger)
	if err != nil {
		logger.Error("notification dispatcher init failed", "err", err)
		os.Exit(1)
	}
	defer closeDispatcher()

	// Services
	jwt := auth.NewJWT(cfg.JWTSecret)
	eventService := services.NewEventService(eventRepo, userRepo, searcher, dispatcher, logger, cfg.RequestTimeout)
	engagementService := services.NewEngagementService(eventRepo, engagementRepo, commentRepo, reviewRepo, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), jwt, cfg.JWTExpiry, emailService, logger)
	catalogService := services.NewCatalogService(catalogRepo)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Events:             controllers.NewEventController(logger, eventService),
		Engagement:         controllers.NewEngagementController(logger, engagementService),
		Users:              controllers.NewUserController(logger, userService),
		Catalog:            controllers.NewCatalogController(logger, catalogService),
		Verifier:           jwt,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "cache", cfg.CacheBackend, "notify", cfg.NotifyBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server crashed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

// newResultCache picks the search cache backend. "none" disables caching.
func newResultCache(cfg *config.Config, logger *slog.Logger) (domain.ResultCache, func()) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rdb, err := cache.NewRedisClient(cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("redis cache disabled", "err", err)
			return nil, func() {}
		}
		return cache.NewRedisCache(rdb), func() { _ = rdb.Close() }
	case config.CacheBackendNone:
		return nil, func() {}
	default:
		if cfg.CacheBackend != config.CacheBackendMemory {
			logger.Warn("unknown CACHE_BACKEND, using memory", "backend", cfg.CacheBackend)
		}
		return cache.NewMemoryCache(memoryCacheCleanup), func() {}
	}
}

// newDispatcher picks how follower notifications leave the request path.
func newDispatcher(cfg *config.Config, emailService domain.EmailService, logger *slog.Logger) (domain.NotificationDispatcher, func(), error) {
	if cfg.NotifyBackend == config.NotifyBackendRabbitMQ {
		conn, ch, err := notify.Dial(cfg.RabbitMQURL, logger)
		if err != nil {
			return nil, nil, err
		}
		pub, err := notify.NewPublisher(ch, cfg.NotifyQueue, logger)
		if err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, nil, err
		}
		return pub, func() {
			_ = ch.Close()
			_ = conn.Close()
		}, nil
	}

	inline := notify.NewInline(emailService, logger, inlineSendTimeout)
	return inline, inline.Wait, nil
}
