package app

import (
	"signclass_backend/docs"
	"signclass_backend/internal/config"
	"signclass_backend/internal/middleware"
	"signclass_backend/internal/model"
	"signclass_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerCommonRoutes covers endpoints any authenticated role may call.
func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.PUT("/profile/password", c.user.ChangePassword)

	rg.GET("/classes", c.class.ListClasses)
	rg.GET("/classes/:id", c.class.GetClass)
	rg.GET("/classes/:id/lessons", c.lesson.ListLessons)
	rg.GET("/classes/:id/challenges", c.challenge.ListChallenges)
	rg.GET("/classes/:id/metrics", c.metrics.GetClassMetrics)
	rg.GET("/classes/:id/leaderboard", c.metrics.GetLeaderboard)

	rg.GET("/lessons/:id/activities", c.lesson.ListActivities)
	rg.GET("/activities/:id/evaluations", c.evaluation.ListEvaluations)
	rg.GET("/evaluations/:id", c.evaluation.GetEvaluation)

	rg.POST("/media/videos", c.media.UploadVideo)
	rg.POST("/media/images", c.media.UploadImage)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/classes/join", c.class.JoinClass)
		student.POST("/classes/:id/leave", c.class.LeaveClass)
		student.GET("/classes/:id/progress", c.lesson.GetClassProgress)
		student.PUT("/lessons/:id/progress", c.lesson.MarkProgress)

		student.POST("/evaluations/:id/submit", c.evaluation.SubmitEvaluation)
		student.GET("/evaluations/:id/my-responses", c.evaluation.MyResponses)

		student.POST("/challenges/:id/submit", c.challenge.SubmitChallenge)
		student.GET("/challenges/:id/my-responses", c.challenge.MyChallengeResponses)

		student.GET("/students/me/overview", c.metrics.GetStudentOverview)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/classes", c.class.CreateClass)
		teacher.PUT("/classes/:id", c.class.UpdateClass)
		teacher.DELETE("/classes/:id", c.class.DeleteClass)
		teacher.GET("/classes/:id/students", c.class.GetRoster)
		teacher.DELETE("/classes/:id/students/:studentId", c.class.RemoveStudent)

		teacher.POST("/lessons", c.lesson.CreateLesson)
		teacher.PUT("/lessons/:id", c.lesson.UpdateLesson)
		teacher.DELETE("/lessons/:id", c.lesson.DeleteLesson)

		teacher.POST("/activities", c.lesson.CreateActivity)
		teacher.PUT("/activities/:id", c.lesson.UpdateActivity)
		teacher.DELETE("/activities/:id", c.lesson.DeleteActivity)

		teacher.GET("/evaluations", c.evaluation.MyEvaluations)
		teacher.POST("/evaluations", c.evaluation.CreateEvaluation)
		teacher.PUT("/evaluations/:id", c.evaluation.UpdateEvaluation)
		teacher.DELETE("/evaluations/:id", c.evaluation.DeleteEvaluation)
		teacher.GET("/evaluations/:id/responses", c.evaluation.ListResponses)
		teacher.GET("/evaluations/responses/:responseId", c.evaluation.GetResponse)

		teacher.POST("/challenges", c.challenge.CreateChallenge)
		teacher.PUT("/challenges/:id", c.challenge.UpdateChallenge)
		teacher.DELETE("/challenges/:id", c.challenge.DeleteChallenge)
		teacher.GET("/challenges/:id/responses", c.challenge.ListChallengeResponses)
		teacher.GET("/challenges/pending-reviews", c.challenge.PendingReviews)
		teacher.PUT("/challenges/responses/:responseId/review", c.challenge.ReviewResponse)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.GET("/metrics", c.metrics.GetPlatformMetrics)
	}
}
