package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video. The binary asset lives in the external
// VOD service; VodVideoID is the hosting reference.
type Video struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VodVideoID  string `gorm:"not null" json:"vod_video_id"`
	Cover       string `json:"cover"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user"`
	// Persisted engagement counters. Maintained by the reaction and comment
	// services; re-derivable from the reactions and comments tables.
	LikesCount    int64 `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount int64 `gorm:"not null;default:0" json:"dislikes_count"`
	CommentsCount int64 `gorm:"not null;default:0" json:"comments_count"`
	// Viewer-relative annotations, never persisted.
	IsLiked      bool           `gorm:"-" json:"is_liked"`
	IsDisliked   bool           `gorm:"-" json:"is_disliked"`
	IsSubscribed bool           `gorm:"-" json:"is_subscribed"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
