package app

import (
	"context"
	"edunity_backend/docs"
	"edunity_backend/internal/config"
	"edunity_backend/internal/middleware"
	"edunity_backend/internal/model"
	"edunity_backend/pkg/i18n"
	"edunity_backend/pkg/monitoring"
	"edunity_backend/pkg/security"
	"edunity_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(middleware.LocaleMiddleware(i18n.Default))
	router.Use(security.RateLimiter(ctx, cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudyRoutes(authGroup, c)
		a.registerNoteRoutes(authGroup, c)
	}
}

func (a *App) registerStudyRoutes(group *gin.RouterGroup, c *controllers) {
	study := group.Group("/study/courses")
	{
		study.GET("", c.study.ListCourses)
		study.GET("/:courseId", c.study.ResolveStudyState)
		study.POST("/:courseId/advance", c.study.AdvanceContent)
		study.GET("/:courseId/content", c.study.GetContentTree)
		study.POST("/:courseId/catalog/refresh", middleware.RoleMiddleware(model.Instructor), c.study.RefreshCatalog)
	}
}

func (a *App) registerNoteRoutes(group *gin.RouterGroup, c *controllers) {
	notes := group.Group("/notes")
	{
		notes.GET("/course/:courseId", c.note.ListByCourse)
		notes.POST("", c.note.CreateNote)
		notes.GET("/:id", c.note.GetNote)
		notes.PUT("/:id", c.note.UpdateNote)
		notes.DELETE("/:id", c.note.DeleteNote)
	}
}
