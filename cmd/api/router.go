package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupBlogRoutes(v1, c)
		setupSettingsRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupStatsRoutes(v1, c)
		setupSubscriberRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC BLOG ROUTES
// ========================================
// Reader-facing, unauthenticated. Addressing is resolved per request;
// engagement pings and subscriptions are keyed by tenant ID.
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		blogs.GET("/resolve", c.TenantHandler.Resolve)
		blogs.GET("/:tenantId/posts", c.PostHandler.ListPublished)
		blogs.GET("/:tenantId/posts/:slug", c.PostHandler.GetPublished)
		blogs.POST("/:tenantId/subscribe", c.SubscriberHandler.Subscribe)
		blogs.POST("/:tenantId/unsubscribe", c.SubscriberHandler.Unsubscribe)
		blogs.POST("/posts/:id/view", c.StatsHandler.RecordView)
		blogs.POST("/posts/:id/share", c.StatsHandler.RecordShare)
	}
}

// ========================================
// SETTINGS ROUTES
// ========================================
func setupSettingsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	settings := v1.Group("/settings")
	settings.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		settings.GET("", c.TenantHandler.GetSettings)
		settings.PUT("", c.TenantHandler.UpdateSettings)
		settings.POST("/domain", c.TenantHandler.ConnectDomain)
		settings.POST("/domain/activate", c.TenantHandler.ActivateDomain)
		settings.DELETE("/domain", c.TenantHandler.DisconnectDomain)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	posts.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		posts.POST("", c.PostHandler.Create)
		posts.GET("", c.PostHandler.List)
		posts.GET("/:id", c.PostHandler.Get)
		posts.PUT("/:id", c.PostHandler.Update)
		posts.DELETE("/:id", c.PostHandler.Delete)
		posts.POST("/:id/publish", c.PostHandler.Publish)
		posts.POST("/:id/unpublish", c.PostHandler.Unpublish)
		posts.POST("/:id/cover", c.PostHandler.UploadCover)
	}
}

// ========================================
// STATS ROUTES
// ========================================
func setupStatsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	stats := v1.Group("/stats")
	stats.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		stats.GET("", c.StatsHandler.GetTenantStats)
	}
}

// ========================================
// SUBSCRIBER ROUTES
// ========================================
func setupSubscriberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	subscribers := v1.Group("/subscribers")
	subscribers.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		subscribers.GET("", c.SubscriberHandler.ListSubscribers)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check cache
		cacheStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
