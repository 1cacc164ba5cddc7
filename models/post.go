package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/newsroom/api-go/workflow"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type Post struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	Title       string          `gorm:"not null" json:"title"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	Category    string          `gorm:"type:varchar(100);default:'General'" json:"category"`
	Tags        pq.StringArray  `gorm:"type:text[]" json:"tags"`
	Images      pq.StringArray  `gorm:"type:text[]" json:"images"`
	Priority    string          `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	ScheduledAt *time.Time      `json:"scheduled_at"`
	Feedback    string          `gorm:"type:text;default:''" json:"feedback"`
	Status      workflow.Status `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Views       int64           `gorm:"not null;default:0" json:"views"`
	AuthorID    uint            `gorm:"not null;index" json:"author_id"` // immutable after creation
	Author      User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// PublicPost is the reader-facing shape of a Post. Rejection feedback is an
// internal editorial note and never leaves the dashboards.
type PublicPost struct {
	ID          uint           `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Category    string         `json:"category"`
	Tags        pq.StringArray `json:"tags"`
	Images      pq.StringArray `json:"images"`
	Priority    string         `json:"priority"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
	Views       int64          `json:"views"`
	AuthorID    uint           `json:"author_id"`
}

// Public strips the editorial-only fields from a post.
func (p Post) Public() PublicPost {
	return PublicPost{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Title:       p.Title,
		Content:     p.Content,
		Category:    p.Category,
		Tags:        p.Tags,
		Images:      p.Images,
		Priority:    p.Priority,
		ScheduledAt: p.ScheduledAt,
		Views:       p.Views,
		AuthorID:    p.AuthorID,
	}
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityNormal || p == PriorityHigh
}
