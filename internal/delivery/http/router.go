package http

import (
	"time"

	"EduPortal/internal/config"
	"EduPortal/internal/delivery/http/controllers"
	"EduPortal/internal/delivery/http/pages"
	"EduPortal/internal/service"
	"EduPortal/internal/service/serialize"
	"EduPortal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, cfg *config.Config, u service.Collection, serializer *serialize.Serializer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsConfig))
	r.Use(controllers.LoggingMiddleware(l))

	pageSize := cfg.API.PageSize

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.AuthService, serializer)
	termsController := controllers.NewTermsHandler(l, u.GlossaryService)
	coursesController := controllers.NewCoursesHandler(l, u.CatalogService, pageSize)
	postsController := controllers.NewPostsHandler(l, u.BlogService, pageSize)
	usersController := controllers.NewUsersHandler(l, u.UserService, pageSize)
	enrollmentsController := controllers.NewEnrollmentsHandler(l, u.EnrollmentService)

	api := r.Group("/api")
	{
		api.GET("/status/", statusController.Status)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register/", authController.Register)
			authGroup.POST("/login/", authController.Login)
			authGroup.POST("/logout/", authController.OptionalAuthMiddleware, authController.Logout)
		}

		terms := api.Group("/terms")
		{
			terms.GET("/", termsController.List)
			terms.GET("/search/", termsController.Search)
			terms.GET("/:id/", termsController.Retrieve)

			terms.POST("/", authController.AuthMiddleware, termsController.Create)
			terms.PUT("/:id/", authController.AuthMiddleware, termsController.Update)
			terms.DELETE("/:id/", authController.AuthMiddleware, termsController.Delete)
		}

		courses := api.Group("/courses")
		{
			courses.GET("/", coursesController.List)
			courses.GET("/categories/", coursesController.Categories)
			courses.GET("/:slug/", coursesController.Retrieve)
			courses.POST("/:slug/enroll/", authController.AuthMiddleware, enrollmentsController.Enroll)
		}

		api.GET("/enrollments/", authController.AuthMiddleware, enrollmentsController.List)

		posts := api.Group("/posts")
		{
			posts.GET("/", postsController.List)
			posts.GET("/:slug/", postsController.Retrieve)
		}

		users := api.Group("/users", authController.AuthMiddleware)
		{
			users.GET("/", usersController.List)
			users.GET("/me/", usersController.Me)
			users.GET("/:id/", usersController.Retrieve)
			users.PUT("/:id/", usersController.Update)
			users.DELETE("/:id/", usersController.Delete)
			users.PUT("/:id/avatar/", usersController.UploadAvatar)
		}
	}

	pagesHandler := pages.NewPagesHandler(
		l,
		u.AuthService, u.CatalogService, u.GlossaryService, u.BlogService, u.EnrollmentService,
		cfg.Auth.SessionTTL,
	)
	r.SetHTMLTemplate(pages.Templates())

	site := r.Group("/", pagesHandler.SessionMiddleware)
	{
		site.GET("/", pagesHandler.Index)
		site.GET("/glossary/", pagesHandler.Glossary)
		site.GET("/contact/", pagesHandler.ContactForm)
		site.POST("/contact/", pagesHandler.Contact)
		site.GET("/courses/", pagesHandler.Courses)
		site.GET("/course/:slug/", pagesHandler.CourseDetail)
		site.GET("/login/", pagesHandler.LoginForm)
		site.POST("/login/", pagesHandler.Login)
		site.GET("/register/", pagesHandler.RegisterForm)
		site.POST("/register/", pagesHandler.Register)
		site.GET("/logout/", pagesHandler.Logout)
		site.GET("/profile/", pagesHandler.RequireLogin, pagesHandler.Profile)
	}

	return r
}
