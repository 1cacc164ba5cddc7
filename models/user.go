package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/newsroom/api-go/workflow"
)

// Account approval states. A user that is not approved cannot log in even
// with correct credentials.
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

func ValidUserStatus(s string) bool {
	return s == UserStatusPending || s == UserStatusApproved || s == UserStatusRejected
}

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role      workflow.Role  `gorm:"type:varchar(20);not null;default:'reporter'" json:"role"`
	Status    string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Posts     []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
