package app

import (
	"learnquest_backend/docs"
	"learnquest_backend/internal/config"
	"learnquest_backend/internal/middleware"
	"learnquest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authorized.GET("/profile", c.auth.GetProfile)
		authorized.PUT("/profile", c.auth.UpdateProfile)
		authorized.POST("/profile/avatar", c.auth.UploadAvatar)

		authorized.GET("/dashboard", c.dashboard.GetDashboard)
		authorized.GET("/leaderboard", c.leaderboard.GetLeaderboard)

		progress := authorized.Group("/progress")
		{
			progress.GET("", c.progress.GetOverview)
			progress.GET("/badges", c.progress.GetBadges)
			progress.GET("/missions", c.progress.GetMissions)
			progress.POST("/checkin", c.progress.Checkin)
		}

		quizzes := authorized.Group("/quizzes")
		{
			quizzes.POST("", c.quiz.GenerateQuiz)
			quizzes.GET("", c.quiz.ListQuizzes)
			quizzes.GET("/:id", c.quiz.GetQuiz)
			quizzes.POST("/:id/submit", c.quiz.SubmitQuiz)
		}

		decks := authorized.Group("/decks")
		{
			decks.POST("", c.flashcard.CreateDeck)
			decks.GET("", c.flashcard.ListDecks)
			decks.GET("/:id", c.flashcard.GetDeck)
			decks.DELETE("/:id", c.flashcard.DeleteDeck)
			decks.POST("/:id/cards", c.flashcard.CreateCard)
			decks.POST("/:id/generate", c.flashcard.GenerateCards)
			decks.POST("/:id/cards/:cardId/review", c.flashcard.ReviewCard)
		}

		doubts := authorized.Group("/doubts")
		{
			doubts.POST("", c.doubt.CreateSession)
			doubts.GET("", c.doubt.ListSessions)
			doubts.POST("/upload", c.doubt.UploadImage)
			doubts.GET("/:id", c.doubt.GetSession)
			doubts.DELETE("/:id", c.doubt.DeleteSession)
			doubts.POST("/:id/ask", c.doubt.Ask)
			doubts.POST("/:id/ask/stream", c.doubt.AskStream)
			doubts.POST("/:id/steps", c.doubt.SubmitStep)
			doubts.GET("/:id/steps", c.doubt.ListSteps)
		}

		plans := authorized.Group("/plans")
		{
			plans.POST("", c.plan.CreatePlan)
			plans.GET("", c.plan.ListPlans)
			plans.GET("/:id", c.plan.GetPlan)
			plans.DELETE("/:id", c.plan.DeletePlan)
		}
	}
}
