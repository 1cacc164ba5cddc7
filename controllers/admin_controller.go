package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/newsroom/api-go/models"
	"github.com/newsroom/api-go/storage"
	"github.com/newsroom/api-go/utils"
	"github.com/newsroom/api-go/workflow"
)

type AdminController struct {
	DB     *gorm.DB
	Images storage.Uploader
}

func NewAdminController(db *gorm.DB, images storage.Uploader) *AdminController {
	return &AdminController{DB: db, Images: images}
}

func (ac *AdminController) GetStats(c *gin.Context) {
	userCounts := map[string]int64{}
	for _, status := range []string{models.UserStatusPending, models.UserStatusApproved, models.UserStatusRejected} {
		var n int64
		ac.DB.Model(&models.User{}).Where("status = ?", status).Count(&n)
		userCounts[status] = n
	}
	var totalUsers int64
	ac.DB.Model(&models.User{}).Count(&totalUsers)
	userCounts["total"] = totalUsers

	postCounts := map[string]int64{}
	for _, status := range []workflow.Status{workflow.StatusDraft, workflow.StatusSubmitted, workflow.StatusApproved, workflow.StatusRejected} {
		var n int64
		ac.DB.Model(&models.Post{}).Where("status = ?", status).Count(&n)
		postCounts[string(status)] = n
	}
	var totalPosts int64
	ac.DB.Model(&models.Post{}).Count(&totalPosts)
	postCounts["total"] = totalPosts

	var totalCategories, activeCategories int64
	ac.DB.Model(&models.Category{}).Count(&totalCategories)
	ac.DB.Model(&models.Category{}).Where("is_active = ?", true).Count(&activeCategories)

	c.JSON(http.StatusOK, gin.H{
		"users": userCounts,
		"posts": postCounts,
		"categories": gin.H{
			"total":  totalCategories,
			"active": activeCategories,
		},
	})
}

func (ac *AdminController) GetPosts(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 20)

	query := ac.DB.Model(&models.Post{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category ILIKE ?", "%"+category+"%")
	}
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"title ILIKE ? OR content ILIKE ? OR category ILIKE ? OR array_to_string(tags, ' ') ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch posts"})
		return
	}

	var posts []models.Post
	err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    posts,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    limit,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// UpdatePost is the admin override path: any field may be overwritten and
// status moves skip the stepwise table. The feedback invariant still
// applies to whatever status the post ends up in.
func (ac *AdminController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var req struct {
		PostContentRequest
		Images   []string `json:"images"`
		Status   string   `json:"status"`
		Feedback string   `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var post models.Post
	if err := ac.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	updates := contentUpdates(req.PostContentRequest)
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}

	if req.Status != "" {
		change, err := workflow.Override(workflow.Actor{Role: user.Role}, workflow.Status(req.Status), req.Feedback)
		if err != nil {
			c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		updates["status"] = change.Status
		updates["feedback"] = change.Feedback
	} else if req.Feedback != "" && post.Status == workflow.StatusRejected {
		updates["feedback"] = req.Feedback
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (ac *AdminController) UpdatePostStatus(c *gin.Context) {
	user := utils.GetUser(c)

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var post models.Post
	if err := ac.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	change, err := workflow.Override(workflow.Actor{Role: user.Role}, workflow.Status(req.Status), req.Feedback)
	if err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := applyChange(ac.DB, &post, change); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (ac *AdminController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := ac.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	if err := workflow.CanDelete(workflow.Actor{Role: user.Role}, post.Status); err != nil {
		c.JSON(workflowErrorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := ac.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}

func (ac *AdminController) UploadImages(c *gin.Context) {
	var post models.Post
	if err := ac.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	attachImages(c, ac.DB, ac.Images, &post)
}

func (ac *AdminController) GetUsers(c *gin.Context) {
	query := ac.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	var req struct {
		Role   string `json:"role" binding:"omitempty,oneof=admin editor reporter"`
		Status string `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	updates := make(map[string]interface{})
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (ac *AdminController) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := ac.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (ac *AdminController) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	slug := utils.Slugify(req.Name)

	var existing models.Category
	if err := ac.DB.Where("name = ? OR slug = ?", req.Name, slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Category already exists"})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := ac.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

func (ac *AdminController) UpdateCategory(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var category models.Category
	if err := ac.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Category not found"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
		updates["slug"] = utils.Slugify(req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&category).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update category"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

func (ac *AdminController) DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := ac.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Category not found"})
		return
	}

	if err := ac.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
