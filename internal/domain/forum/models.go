package forum

import (
	"time"

	"resolux-app/internal/domain/users"
)

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `json:"-"`
}

func (Category) TableName() string { return "forum_categories" }

type Thread struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CategoryID uint       `gorm:"not null;index" json:"category_id"`
	Category   Category   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title      string     `gorm:"not null" json:"title"`
	Content    *string    `json:"content"`
	IsPinned   bool       `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked   bool       `gorm:"not null;default:false" json:"is_locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Thread) TableName() string { return "forum_threads" }

type Post struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	ThreadID uint       `gorm:"not null;index" json:"thread_id"`
	Thread   Thread     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	User     users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Content  string     `gorm:"not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string { return "forum_posts" }
