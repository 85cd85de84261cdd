package app

import (
	"quizgen_backend/docs"
	"quizgen_backend/internal/config"
	"quizgen_backend/internal/middleware"
	"quizgen_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.PUT("/users/password", c.user.ChangePassword)

		authGroup.POST("/documents", c.document.Upload)
		authGroup.GET("/documents", c.document.List)
		authGroup.DELETE("/documents/:id", c.document.Delete)

		authGroup.POST("/quizzes/generate", c.quiz.Generate)
		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.DELETE("/quizzes/:id", c.quiz.Delete)
		authGroup.POST("/quizzes/:id/submit", c.quiz.Submit)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
		authGroup.GET("/quizzes/:id/attempts/:attemptId", c.quiz.GetAttempt)
	}
}
