package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/Nshuti7/wholesome-ug-bn/api/swagger"
	"github.com/Nshuti7/wholesome-ug-bn/internal/handler"
	"github.com/Nshuti7/wholesome-ug-bn/internal/middleware"
	"github.com/Nshuti7/wholesome-ug-bn/internal/repository"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/config"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/database"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/jobs"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/logger"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/mailer"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/uploader"
)

// @title Wholesome Uganda API
// @version 1.0.0
// @description Backend for the Wholesome Uganda website and admin panel
// @BasePath /
// @schemes http https

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// The session store degrades to an in-process cache when Redis is
	// unreachable, so a failed connection here is not fatal.
	sessionStore := buildSessionStore(ctx, cfg, logr)
	defer sessionStore.Close()

	validate := validator.New()

	mailPool := jobs.NewPool("mail", jobs.PoolConfig{
		Workers:    cfg.Mailer.Workers,
		MaxRetries: cfg.Mailer.MaxRetries,
		RetryDelay: cfg.Mailer.RetryDelay,
	}, logr)
	mailPool.Start(ctx)
	defer mailPool.Stop()

	otpSender := mailer.NewOTPSender(mailer.New(cfg.SMTP, logr), mailPool)
	images := uploader.NewCloudinary(cfg.Cloudinary, logr)

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	heroRepo := repository.NewHeroRepository(db)
	contactRepo := repository.NewContactRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	sessions := service.NewSessionService(sessionStore, logr, service.SessionConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.AccessExpiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
		CookieDomain:  cfg.JWT.CookieDomain,
		SecureCookies: cfg.Env == config.EnvProduction,
	})
	otp := service.NewOTPService(sessionStore, otpSender, logr)
	auth := service.NewAuthService(userRepo, sessions, otp, images, validate, logr)

	blogs := service.NewBlogService(blogRepo, images, validate, logr)
	gallery := service.NewGalleryService(galleryRepo, images, validate, logr)
	services := service.NewServicesService(serviceRepo, images, validate, logr)
	team := service.NewTeamService(teamRepo, images, validate, logr)
	heroes := service.NewHeroService(heroRepo, images, validate, logr)
	contacts := service.NewContactService(contactRepo, validate, logr)
	newsletter := service.NewNewsletterService(newsletterRepo, validate, logr)
	dashboard := service.NewDashboardService(dashboardRepo, contactRepo, newsletterRepo, logr)
	metrics := service.NewMetricsService()

	go watchStoreStatus(ctx, sessionStore, metrics)

	limiter := middleware.NewRateLimiter(sessionStore, logr, cfg.RateLimit.Enabled)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(auth, sessions, cfg.Env != config.EnvProduction),
		Blog:       handler.NewBlogHandler(blogs),
		Gallery:    handler.NewGalleryHandler(gallery),
		Services:   handler.NewServicesHandler(services),
		Team:       handler.NewTeamHandler(team),
		Hero:       handler.NewHeroHandler(heroes),
		Contact:    handler.NewContactHandler(contacts),
		Newsletter: handler.NewNewsletterHandler(newsletter),
		Dashboard:  handler.NewDashboardHandler(dashboard),
		Health:     handler.NewHealthHandler(db, sessionStore),
	}

	router := handler.NewRouter(cfg, logr, handlers, sessions, limiter, metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// buildSessionStore wires Redis behind the failover wrapper. The wrapper
// starts disconnected and serves from memory until the first successful
// ping, so an unreachable Redis at boot is not fatal.
func buildSessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) *store.FailoverStore {
	client, err := store.NewRedisClient(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("invalid redis configuration", "error", err)
	}

	fallback := store.NewMemoryStore(cfg.Redis.FallbackMaxKeys)
	failover := store.NewFailoverStore(store.NewRedisStore(client), fallback, cfg.Redis.PingInterval, logr)
	failover.Start(ctx)
	return failover
}

// watchStoreStatus mirrors the failover store state into the metrics
// gauges every few seconds.
func watchStoreStatus(ctx context.Context, failover *store.FailoverStore, metrics *service.MetricsService) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.ObserveStoreStatus(failover.Status())
		}
	}
}
