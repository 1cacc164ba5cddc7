package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/newsroom/api-go/models"
	"github.com/newsroom/api-go/storage"
	"github.com/newsroom/api-go/utils"
	"github.com/newsroom/api-go/workflow"
)

type ReporterController struct {
	DB     *gorm.DB
	Images storage.Uploader
}

type PostContentRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func NewReporterController(db *gorm.DB, images storage.Uploader) *ReporterController {
	return &ReporterController{DB: db, Images: images}
}

func (rc *ReporterController) GetMyPosts(c *gin.Context) {
	user := utils.GetUser(c)

	var posts []models.Post
	if err := rc.DB.Where("author_id = ?", user.UserID).Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (rc *ReporterController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var req struct {
		Title       string     `json:"title" binding:"required"`
		Content     string     `json:"content" binding:"required"`
		Category    string     `json:"category"`
		Tags        []string   `json:"tags"`
		Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high"`
		ScheduledAt *time.Time `json:"scheduled_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	post := models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        pq.StringArray(req.Tags),
		Priority:    req.Priority,
		ScheduledAt: req.ScheduledAt,
		AuthorID:    user.UserID,
		Status:      workflow.InitialStatus(user.Role),
	}
	if post.Category == "" {
		post.Category = "General"
	}
	if post.Priority == "" {
		post.Priority = models.PriorityNormal
	}

	if err := rc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (rc *ReporterController) EditPost(c *gin.Context) {
	user := utils.GetUser(c)

	var req PostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var post models.Post
	if err := rc.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	actor := workflow.Actor{Role: user.Role, IsOwner: post.AuthorID == user.UserID}
	if err := workflow.CanEditContent(actor, post.Status); err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	// Content edits never touch status or feedback.
	updates := contentUpdates(req)
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
		return
	}

	if err := rc.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (rc *ReporterController) SubmitPost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := rc.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	actor := workflow.Actor{Role: user.Role, IsOwner: post.AuthorID == user.UserID}
	change, err := workflow.Submit(actor, post.Status)
	if err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := applyChange(rc.DB, &post, change); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to submit post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (rc *ReporterController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := rc.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	actor := workflow.Actor{Role: user.Role, IsOwner: post.AuthorID == user.UserID}
	if err := workflow.CanDelete(actor, post.Status); err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := rc.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
}

func (rc *ReporterController) UploadImages(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := rc.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	if post.AuthorID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not allowed to modify this post"})
		return
	}

	attachImages(c, rc.DB, rc.Images, &post)
}

func (rc *ReporterController) GetHistory(c *gin.Context) {
	rc.GetMyPosts(c)
}

// contentUpdates builds the column set for a content-only edit. Empty
// fields mean "leave unchanged".
func contentUpdates(req PostContentRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = req.ScheduledAt
	}
	return updates
}

// applyChange commits a workflow decision as one atomic record update so
// status and feedback always move together.
func applyChange(db *gorm.DB, post *models.Post, change workflow.Change) error {
	return db.Model(post).Updates(map[string]interface{}{
		"status":   change.Status,
		"feedback": change.Feedback,
	}).Error
}

// attachImages uploads the multipart batch to the image host and appends
// the returned URLs. Nothing else on the post is touchable through the
// upload endpoints.
func attachImages(c *gin.Context, db *gorm.DB, images storage.Uploader, post *models.Post) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No images uploaded"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No images uploaded"})
		return
	}

	urls, err := images.UploadAll(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("image upload failed for post %d: %v", post.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Image upload failed"})
		return
	}

	updated := append(post.Images, urls...)
	if err := db.Model(post).Update("images", updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// workflowErrorStatus maps workflow decision errors onto the HTTP
// taxonomy: missing feedback and bad statuses are validation problems,
// ownership and role denials are authorization problems.
func workflowErrorStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrInvalidStatus), errors.Is(err, workflow.ErrFeedbackRequired):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotOwner), errors.Is(err, workflow.ErrNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
