package http

import (
	"time"

	"MentorLink/internal/delivery/http/controllers"
	"MentorLink/internal/models"
	"MentorLink/internal/service"
	"MentorLink/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.Auth)
	identityController := controllers.NewIdentityHandler(l, u.Identity)
	catalogController := controllers.NewCatalogHandler(l, u.Catalog)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.Enrollments)
	authoringController := controllers.NewAuthoringHandler(l, u.Authoring)
	announcementController := controllers.NewAnnouncementHandler(l, u.Announcements)
	assistantController := controllers.NewAssistantHandler(l, u.Assistant)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authController.AuthMiddleware, identityController.Me)
		v1.GET("/me/profile", authController.AuthMiddleware, identityController.Profile)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
			auth.POST("/password", authController.AuthMiddleware, authController.ChangePassword)
		}

		v1.GET("/announcements", announcementController.List)

		courses := v1.Group("/courses")
		{
			courses.GET("", catalogController.ListCourses)
			courses.GET("/search", catalogController.SearchCourses)
			courses.GET("/:slug", catalogController.CourseBySlug)
			courses.GET("/lessons/:lesson_id/quiz", catalogController.QuizForLesson)
			courses.GET("/modules/:module_id/quiz", catalogController.QuizForModule)
		}

		student := v1.Group("/enrollments", authController.AuthMiddleware, controllers.RequireRoles(models.StudentRole))
		{
			student.POST("", enrollmentController.Enroll)
			student.GET("", enrollmentController.MyEnrollments)
			student.GET("/:enrollment_id/progress", enrollmentController.Progress)
			student.PUT("/:enrollment_id/lessons/:lesson_id/complete", enrollmentController.CompleteLesson)
			student.DELETE("/:enrollment_id/lessons/:lesson_id/complete", enrollmentController.UncompleteLesson)
			student.POST("/:enrollment_id/lessons/:lesson_id/watch-time", enrollmentController.RecordWatchTime)
			student.POST("/:enrollment_id/recalculate", enrollmentController.Recalculate)
			student.DELETE("/:enrollment_id", enrollmentController.Drop)
		}

		mentor := v1.Group("/authoring", authController.AuthMiddleware, controllers.RequireRoles(models.MentorRole, models.AdminRole))
		{
			mentor.GET("/courses", authoringController.MyCourses)
			mentor.POST("/courses", authoringController.CreateCourse)
			mentor.PUT("/courses/:course_id", authoringController.UpdateCourse)
			mentor.DELETE("/courses/:course_id", authoringController.DeleteCourse)
			mentor.PATCH("/courses/:course_id/publish", authoringController.PublishCourse)
			mentor.PATCH("/courses/:course_id/unpublish", authoringController.UnpublishCourse)
			mentor.PUT("/courses/:course_id/thumbnail", authoringController.UploadThumbnail)
			mentor.POST("/courses/:course_id/modules", authoringController.CreateModule)
			mentor.PUT("/modules/:module_id", authoringController.UpdateModule)
			mentor.DELETE("/modules/:module_id", authoringController.DeleteModule)
			mentor.POST("/modules/:module_id/lessons", authoringController.CreateLesson)
			mentor.PUT("/lessons/:lesson_id", authoringController.UpdateLesson)
			mentor.DELETE("/lessons/:lesson_id", authoringController.DeleteLesson)
		}

		announcements := v1.Group("/announcements", authController.AuthMiddleware, controllers.RequireRoles(models.MentorRole, models.AdminRole))
		{
			announcements.POST("", announcementController.Create)
			announcements.DELETE("/:announcement_id", announcementController.Deactivate)
		}

		assistant := v1.Group("/assistant", authController.AuthMiddleware)
		{
			assistant.POST("/chat", assistantController.Chat)
		}
	}
	return r
}
