package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/middleware"
	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/config"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/logger"
	corsmiddleware "github.com/Nshuti7/wholesome-ug-bn/pkg/middleware/cors"
	reqidmiddleware "github.com/Nshuti7/wholesome-ug-bn/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Blog       *BlogHandler
	Gallery    *GalleryHandler
	Services   *ServicesHandler
	Team       *TeamHandler
	Hero       *HeroHandler
	Contact    *ContactHandler
	Newsletter *NewsletterHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler
}

// NewRouter builds the gin engine with all routes, middleware and rate
// limit policies wired in.
func NewRouter(cfg *config.Config, logr *zap.Logger, handlers Handlers, sessions *service.SessionService, limiter *middleware.RateLimiter, metrics *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", handlers.Health.Health)
	r.GET("/ready", handlers.Health.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(limiter.Limit(middleware.GeneralRateLimit))

	authRequired := middleware.Auth(sessions)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)

	auth := api.Group("/auth")
	{
		auth.POST("/login", limiter.Limit(middleware.AuthRateLimit), handlers.Auth.Login)
		auth.POST("/refresh-token", handlers.Auth.Refresh)
		auth.POST("/forgot-password", limiter.Limit(middleware.StrictRateLimit), handlers.Auth.ForgotPassword)
		auth.POST("/verify-otp", limiter.Limit(middleware.StrictRateLimit), handlers.Auth.VerifyOTP)
		auth.POST("/reset-password", limiter.Limit(middleware.StrictRateLimit), handlers.Auth.ResetPassword)

		auth.POST("/logout", authRequired, handlers.Auth.Logout)
		auth.POST("/logout-all", authRequired, handlers.Auth.LogoutAll)
		auth.GET("/me", authRequired, handlers.Auth.Profile)
		auth.PATCH("/profile", authRequired, handlers.Auth.UpdateProfile)
		auth.POST("/change-password", authRequired, handlers.Auth.ChangePassword)
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", handlers.Blog.List)
		blogs.GET("/:slug", handlers.Blog.GetBySlug)

		blogs.GET("/admin", authRequired, adminOnly, handlers.Blog.ListAdmin)
		blogs.POST("", authRequired, adminOnly, handlers.Blog.Create)
		blogs.PATCH("/:id", authRequired, adminOnly, handlers.Blog.Update)
		blogs.DELETE("/:id", authRequired, adminOnly, handlers.Blog.Delete)
	}

	gallery := api.Group("/gallery")
	{
		gallery.GET("", handlers.Gallery.List)

		gallery.GET("/admin", authRequired, adminOnly, handlers.Gallery.ListAdmin)
		gallery.POST("", authRequired, adminOnly, handlers.Gallery.Create)
		gallery.PATCH("/:id", authRequired, adminOnly, handlers.Gallery.Update)
		gallery.DELETE("/:id", authRequired, adminOnly, handlers.Gallery.Delete)
	}

	services := api.Group("/services")
	{
		services.GET("", handlers.Services.List)
		services.GET("/:id", handlers.Services.Get)

		services.GET("/admin", authRequired, adminOnly, handlers.Services.ListAdmin)
		services.POST("", authRequired, adminOnly, handlers.Services.Create)
		services.PATCH("/:id", authRequired, adminOnly, handlers.Services.Update)
		services.DELETE("/:id", authRequired, adminOnly, handlers.Services.Delete)
	}

	team := api.Group("/team")
	{
		team.GET("", handlers.Team.List)

		team.GET("/admin", authRequired, adminOnly, handlers.Team.ListAdmin)
		team.POST("", authRequired, adminOnly, handlers.Team.Create)
		team.PATCH("/:id", authRequired, adminOnly, handlers.Team.Update)
		team.DELETE("/:id", authRequired, adminOnly, handlers.Team.Delete)
	}

	heroes := api.Group("/heroes")
	{
		heroes.GET("", handlers.Hero.List)

		heroes.GET("/admin", authRequired, adminOnly, handlers.Hero.ListAdmin)
		heroes.POST("", authRequired, adminOnly, handlers.Hero.Create)
		heroes.PATCH("/:id", authRequired, adminOnly, handlers.Hero.Update)
		heroes.DELETE("/:id", authRequired, adminOnly, handlers.Hero.Delete)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", limiter.Limit(middleware.FormSubmissionRateLimit), handlers.Contact.Submit)

		contact.GET("", authRequired, adminOnly, handlers.Contact.List)
		contact.GET("/:id", authRequired, adminOnly, handlers.Contact.Get)
		contact.PATCH("/:id", authRequired, adminOnly, handlers.Contact.Update)
		contact.DELETE("/:id", authRequired, adminOnly, handlers.Contact.Delete)
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", limiter.Limit(middleware.FormSubmissionRateLimit), handlers.Newsletter.Subscribe)
		newsletter.POST("/unsubscribe", limiter.Limit(middleware.FormSubmissionRateLimit), handlers.Newsletter.Unsubscribe)

		newsletter.GET("", authRequired, adminOnly, handlers.Newsletter.List)
		newsletter.DELETE("/:id", authRequired, adminOnly, handlers.Newsletter.Delete)
	}

	dashboard := api.Group("/dashboard", authRequired, adminOnly)
	{
		dashboard.GET("/stats", handlers.Dashboard.Stats)
		dashboard.GET("/export/contacts", handlers.Dashboard.ExportContacts)
		dashboard.GET("/export/subscribers", handlers.Dashboard.ExportSubscribers)
	}

	return r
}
