package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/controllers"
	"github.com/newsroom/api-go/middleware"
	"github.com/newsroom/api-go/workflow"
)

func SetupAuthRoutes(api *gin.RouterGroup, authController *controllers.AuthController) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		authed := auth.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/me", authController.Me)

			// registration approval queue
			pending := authed.Group("/pending", middleware.RequireRoles(workflow.RoleAdmin))
			{
				pending.GET("", authController.GetPendingRegistrations)
				pending.PUT("/:userId", authController.UpdateRegistrationStatus)
			}
		}
	}
}
