package controllers

import (
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

type EditorController struct {
	DB     *gorm.DB
	Images storage.Uploader
}

type StatusUpdateRequest struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

func NewEditorController(db *gorm.DB, images storage.Uploader) *EditorController {
	return &EditorController{DB: db, Images: images}
}

// GetReviewQueue lists the posts awaiting an editorial decision: fresh
// submissions plus earlier rejections that may be re-reviewed.
func (ec *EditorController) GetReviewQueue(c *gin.Context) {
	var posts []models.Post
	err := ec.DB.
		Where("status IN ?", []workflow.Status{workflow.StatusSubmitted, workflow.StatusRejected}).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// CreatePost publishes directly: editor content is trusted and bypasses
// the review loop.
func (ec *EditorController) CreatePost(c *gin.Context) {
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

	if err := ec.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (ec *EditorController) EditPost(c *gin.Context) {
	user := utils.GetUser(c)

	var req PostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var post models.Post
	if err := ec.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	actor := workflow.Actor{Role: user.Role, IsOwner: post.AuthorID == user.UserID}
	if err := workflow.CanEditContent(actor, post.Status); err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	updates := contentUpdates(req)
	if len(updates) > 0 {
		if err := ec.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// UpdateStatus applies an approve/reject decision through the workflow
// table. Nothing is written when the decision is denied.
func (ec *EditorController) UpdateStatus(c *gin.Context) {
	user := utils.GetUser(c)

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var post models.Post
	if err := ec.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	actor := workflow.Actor{Role: user.Role, IsOwner: post.AuthorID == user.UserID}
	change, err := workflow.Review(actor, post.Status, workflow.Status(req.Status), req.Feedback)
	if err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := applyChange(ec.DB, &post, change); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (ec *EditorController) UploadImages(c *gin.Context) {
	var post models.Post
	if err := ec.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	attachImages(c, ec.DB, ec.Images, &post)
}

// GetHistory returns every post in the system regardless of status.
func (ec *EditorController) GetHistory(c *gin.Context) {
	var posts []models.Post
	if err := ec.DB.Preload("Author").Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch post history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}
