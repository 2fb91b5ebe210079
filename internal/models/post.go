package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;size:128;not null" json:"slug"`
	Title     string    `gorm:"uniqueIndex;size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Tags      []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	Comments  []Comment `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Not a database column, filled by list queries
	CommentCount int `gorm:"-" json:"comment_count"`
}
