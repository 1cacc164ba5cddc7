package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/controllers"
	"github.com/newsroom/api-go/middleware"
	"github.com/newsroom/api-go/workflow"
)

func SetupEditorRoutes(api *gin.RouterGroup, editorController *controllers.EditorController) {
	editor := api.Group("/editor", middleware.AuthMiddleware(), middleware.RequireRoles(workflow.RoleEditor))

	posts := editor.Group("/posts")
	{
		posts.GET("", editorController.GetReviewQueue)
		posts.POST("", editorController.CreatePost)
		posts.GET("/history", editorController.GetHistory)
		posts.PUT("/:id", editorController.EditPost)
		posts.PUT("/:id/status", editorController.UpdateStatus)
		posts.POST("/:id/images", editorController.UploadImages)
	}
}
