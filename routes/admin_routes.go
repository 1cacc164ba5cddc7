package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/controllers"
	"github.com/newsroom/api-go/middleware"
	"github.com/newsroom/api-go/workflow"
)

func SetupAdminRoutes(api *gin.RouterGroup, adminController *controllers.AdminController) {
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRoles(workflow.RoleAdmin))

	admin.GET("/stats", adminController.GetStats)

	admin.GET("/posts", adminController.GetPosts)
	admin.PUT("/posts/:id", adminController.UpdatePost)
	admin.PUT("/posts/:id/status", adminController.UpdatePostStatus)
	admin.POST("/posts/:id/images", adminController.UploadImages)
	admin.DELETE("/posts/:id", adminController.DeletePost)

	admin.GET("/users", adminController.GetUsers)
	admin.PUT("/users/:id", adminController.UpdateUser)

	admin.GET("/categories", adminController.GetCategories)
	admin.POST("/categories", adminController.CreateCategory)
	admin.PUT("/categories/:id", adminController.UpdateCategory)
	admin.DELETE("/categories/:id", adminController.DeleteCategory)
}
