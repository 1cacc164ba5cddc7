package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsroom/api-go/models"
	"github.com/newsroom/api-go/workflow"
)

// NewsController serves the unauthenticated reader endpoints. Only
// approved posts are ever visible here, and never their feedback.
type NewsController struct {
	DB *gorm.DB
}

func NewNewsController(db *gorm.DB) *NewsController {
	return &NewsController{DB: db}
}

func (nc *NewsController) approved() *gorm.DB {
	return nc.DB.Model(&models.Post{}).Where("status = ?", workflow.StatusApproved)
}

func toPublic(posts []models.Post) []models.PublicPost {
	public := make([]models.PublicPost, 0, len(posts))
	for _, post := range posts {
		public = append(public, post.Public())
	}
	return public
}

func (nc *NewsController) GetLatest(c *gin.Context) {
	var posts []models.Post
	if err := nc.approved().Order("created_at DESC").Limit(20).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest posts"})
		return
	}

	c.JSON(http.StatusOK, toPublic(posts))
}

func (nc *NewsController) GetPost(c *gin.Context) {
	var post models.Post
	err := nc.DB.Where("id = ? AND status = ?", c.Param("id"), workflow.StatusApproved).First(&post).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// reads feed the trending ranking
	nc.DB.Model(&post).UpdateColumn("views", gorm.Expr("views + ?", 1))
	post.Views++

	c.JSON(http.StatusOK, post.Public())
}

func (nc *NewsController) GetByCategory(c *gin.Context) {
	var posts []models.Post
	err := nc.approved().
		Where("category ILIKE ?", "%"+c.Param("category")+"%").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category posts"})
		return
	}

	c.JSON(http.StatusOK, toPublic(posts))
}

func (nc *NewsController) Search(c *gin.Context) {
	q := c.Query("q")
	category := c.Query("category")
	from := c.Query("from")
	to := c.Query("to")

	// an unconstrained search returns nothing, not the whole archive
	if q == "" && category == "" && from == "" && to == "" {
		c.JSON(http.StatusOK, []models.PublicPost{})
		return
	}

	query := nc.approved()
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"title ILIKE ? OR content ILIKE ? OR category ILIKE ? OR array_to_string(tags, ' ') ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if category != "" {
		query = query.Where("category ILIKE ?", "%"+category+"%")
	}
	if from != "" {
		if fromTime, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", fromTime)
		}
	}
	if to != "" {
		if toTime, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at <= ?", toTime)
		}
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Limit(40).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, toPublic(posts))
}

func (nc *NewsController) GetBreaking(c *gin.Context) {
	var posts []models.Post
	err := nc.approved().
		Order("priority = 'high' DESC").
		Order("created_at DESC").
		Limit(8).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch breaking posts"})
		return
	}

	c.JSON(http.StatusOK, toPublic(posts))
}

func (nc *NewsController) GetTrending(c *gin.Context) {
	var posts []models.Post
	err := nc.approved().
		Order("views DESC").
		Order("created_at DESC").
		Limit(10).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending posts"})
		return
	}

	c.JSON(http.StatusOK, toPublic(posts))
}

func (nc *NewsController) GetCategories(c *gin.Context) {
	var categories []models.Category
	err := nc.DB.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (nc *NewsController) GetCategoryBySlug(c *gin.Context) {
	var category models.Category
	err := nc.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&category).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}
