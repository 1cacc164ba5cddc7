package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/controllers"
)

func SetupPublicRoutes(api *gin.RouterGroup, newsController *controllers.NewsController) {
	public := api.Group("/public")

	posts := public.Group("/posts")
	{
		posts.GET("", newsController.GetLatest)
		posts.GET("/breaking", newsController.GetBreaking)
		posts.GET("/trending", newsController.GetTrending)
		posts.GET("/search", newsController.Search)
		posts.GET("/category/:category", newsController.GetByCategory)
		posts.GET("/:id", newsController.GetPost)
	}

	categories := public.Group("/categories")
	{
		categories.GET("", newsController.GetCategories)
		categories.GET("/:slug", newsController.GetCategoryBySlug)
	}
}
