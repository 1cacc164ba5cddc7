package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/controllers"
	"github.com/newsroom/api-go/middleware"
	"github.com/newsroom/api-go/workflow"
)

func SetupReporterRoutes(api *gin.RouterGroup, reporterController *controllers.ReporterController) {
	reporter := api.Group("/reporter", middleware.AuthMiddleware(), middleware.RequireRoles(workflow.RoleReporter))

	posts := reporter.Group("/posts")
	{
		posts.GET("", reporterController.GetMyPosts)
		posts.POST("", reporterController.CreatePost)
		posts.GET("/history", reporterController.GetHistory)
		posts.PUT("/:id", reporterController.EditPost)
		posts.PUT("/:id/submit", reporterController.SubmitPost)
		posts.DELETE("/:id", reporterController.DeletePost)
		posts.POST("/:id/images", reporterController.UploadImages)
	}
}
