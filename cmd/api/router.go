package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", c.HealthHandler.Check)

		setupPublicRoutes(v1, c)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.GET("/me", c.UserHandler.Me)

			setupAdminPostRoutes(admin, c)
			setupAdminCategoryRoutes(admin, c)
			setupAdminTagRoutes(admin, c)
			setupAdminSettingRoutes(admin, c)
			setupUploadRoutes(admin, c)
			setupMaintenanceRoutes(admin, c)
		}
	}

	return router
}

// ========== PUBLIC ROUTES ==========
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListPublished)
		posts.GET("/:slug", c.PostHandler.GetBySlug)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:slug", c.CategoryHandler.GetBySlug)
	}

	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/:slug", c.TagHandler.GetBySlug)
	}

	v1.GET("/settings", c.SettingHandler.Get)
}

// ========== ADMIN: POSTS ==========
func setupAdminPostRoutes(admin *gin.RouterGroup, c *container.Container) {
	posts := admin.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListAll)
		posts.GET("/check-slug", c.PostHandler.CheckSlug)
		posts.GET("/:id", c.PostHandler.GetByID)
		posts.POST("", c.PostHandler.Create)
		posts.PATCH("/:id", c.PostHandler.Update)
		posts.DELETE("/:id", c.PostHandler.Delete)
	}
}

// ========== ADMIN: CATEGORIES ==========
func setupAdminCategoryRoutes(admin *gin.RouterGroup, c *container.Container) {
	categories := admin.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.GetByID)
		categories.POST("", c.CategoryHandler.Create)
		categories.PATCH("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========== ADMIN: TAGS ==========
func setupAdminTagRoutes(admin *gin.RouterGroup, c *container.Container) {
	tags := admin.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/:id", c.TagHandler.GetByID)
		tags.POST("", c.TagHandler.Create)
		tags.PATCH("/:id", c.TagHandler.Update)
		tags.DELETE("/:id", c.TagHandler.Delete)
	}
}

// ========== ADMIN: SETTINGS ==========
func setupAdminSettingRoutes(admin *gin.RouterGroup, c *container.Container) {
	admin.PATCH("/settings", c.SettingHandler.Update)
}

// ========== ADMIN: UPLOADS ==========
func setupUploadRoutes(admin *gin.RouterGroup, c *container.Container) {
	if c.UploadHandler == nil {
		admin.POST("/uploads/presign", func(ctx *gin.Context) {
			response.ErrorWithCode(ctx, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Object storage is not configured", nil)
		})
		return
	}
	admin.POST("/uploads/presign", c.UploadHandler.Presign)
}

// ========== ADMIN: MAINTENANCE ==========
func setupMaintenanceRoutes(admin *gin.RouterGroup, c *container.Container) {
	admin.POST("/maintenance/reconcile-counts", c.MaintenanceHandler.ReconcileCounts)
}
