package app

import (
	"linguist_ai_backend/docs"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/middleware"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(cfg),
		middleware.SessionMiddleware(a.services.auth),
		middleware.ActivityMiddleware(repos.user),
	)
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/subscription", c.user.UpdateSubscription)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		authGroup.GET("/lessons", c.lesson.List)
		authGroup.POST("/lessons", c.lesson.Create)
		authGroup.GET("/lessons/:id", c.lesson.Get)
		authGroup.POST("/lessons/:id/video", c.lesson.UploadVideo)

		authGroup.GET("/progress/activity", c.progress.RecentActivity)
		authGroup.POST("/progress/activity", c.progress.RecordActivity)

		ai := authGroup.Group("/ai")
		{
			ai.POST("/lesson", c.ai.GenerateLesson)
			ai.POST("/grammar", c.ai.GrammarFeedback)
			ai.POST("/vocabulary", c.ai.Vocabulary)
			ai.POST("/vocabulary/image", c.ai.WordImage)
			ai.POST("/scenario", c.ai.Scenario)
			ai.POST("/interview", c.ai.Interview)
			ai.POST("/speak", c.ai.Speak)
		}

		authGroup.GET("/live/voice", c.live.Voice)

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/snapshot", c.admin.Snapshot)
			admin.POST("/reset", c.admin.Reset)
		}
	}
}
