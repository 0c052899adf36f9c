package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campuscrm/admitdesk/internal/app/controllers"
	"github.com/campuscrm/admitdesk/internal/middleware"
)

// SetupRouter configures all application routes. Role checks live in the
// services, not here: every route behind JWTAuth is reachable by any
// authenticated staff member and the services decide per action.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", authController.Me)
			users.PUT("/me/password", accountController.ChangeOwnPassword)

			users.GET("", accountController.List)
			users.POST("", accountController.Create)
			users.DELETE("/:id", accountController.Delete)
			users.PUT("/:id/password", accountController.ResetPassword)
			users.PUT("/:id/role", accountController.ChangeRole)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.POST("/bulk", studentController.BulkIngest)
			students.PUT("/:id", studentController.Update)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/stats", studentController.Stats)
		}
	}
}
