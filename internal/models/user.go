// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Every user doubles as a channel that
// other users can subscribe to.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"unique;not null" json:"username"`
	Email              string         `gorm:"unique;not null" json:"email"`
	Password           string         `gorm:"not null" json:"-"`
	Avatar             string         `json:"avatar"`
	Cover              string         `json:"cover"`
	ChannelDescription string         `json:"channel_description"`
	// SubscribersCount is denormalized; maintained by the subscription
	// service and re-derivable from the subscriptions table.
	SubscribersCount int64          `gorm:"not null;default:0" json:"subscribers_count"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Videos           []Video        `gorm:"foreignKey:UserID" json:"videos,omitempty"`
}

// ChannelProjection is the public view of a user as a channel. It never
// carries the password hash and annotates the viewer's subscription state.
type ChannelProjection struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Avatar             string `json:"avatar"`
	Cover              string `json:"cover"`
	ChannelDescription string `json:"channel_description"`
	SubscribersCount   int64  `json:"subscribers_count"`
	IsSubscribed       bool   `json:"is_subscribed"`
}

// ChannelSummary is the compact channel form used in subscription listings.
type ChannelSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Channel returns the public projection of the user for the given viewer state.
func (u *User) Channel(isSubscribed bool) ChannelProjection {
	return ChannelProjection{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		Avatar:             u.Avatar,
		Cover:              u.Cover,
		ChannelDescription: u.ChannelDescription,
		SubscribersCount:   u.SubscribersCount,
		IsSubscribed:       isSubscribed,
	}
}

// Summary returns the compact channel form of the user.
func (u *User) Summary() ChannelSummary {
	return ChannelSummary{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
