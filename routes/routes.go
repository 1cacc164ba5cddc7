package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsroom/api-go/controllers"
	"github.com/newsroom/api-go/storage"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, images storage.Uploader) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	reporterController := controllers.NewReporterController(db, images)
	editorController := controllers.NewEditorController(db, images)
	adminController := controllers.NewAdminController(db, images)
	newsController := controllers.NewNewsController(db)

	api := r.Group("/api")

	SetupAuthRoutes(api, authController)
	SetupPublicRoutes(api, newsController)
	SetupReporterRoutes(api, reporterController)
	SetupEditorRoutes(api, editorController)
	SetupAdminRoutes(api, adminController)
}
