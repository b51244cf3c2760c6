package models

import (
	"time"
)

// Reaction polarity values. A reaction row always carries exactly one.
const (
	PolarityLike    int8 = 1
	PolarityDislike int8 = -1
)

// ValidPolarity reports whether p is one of the two allowed polarities.
func ValidPolarity(p int8) bool {
	return p == PolarityLike || p == PolarityDislike
}

// Reaction represents a user's like or dislike on a video. A user has at
// most one reaction per video; the three viewer states (none, liked,
// disliked) are row-absent, polarity +1 and polarity -1.
type Reaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_video" json:"user_id"`
	VideoID  uint `gorm:"not null;uniqueIndex:idx_user_video" json:"video_id"`
	Polarity int8 `gorm:"not null" json:"polarity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

// ReactionState is the viewer-relative reaction state of a video.
type ReactionState int8

const (
	ReactionNone ReactionState = iota
	ReactionLiked
	ReactionDisliked
)

// StateForPolarity maps a stored polarity to its viewer state.
func StateForPolarity(p int8) ReactionState {
	switch p {
	case PolarityLike:
		return ReactionLiked
	case PolarityDislike:
		return ReactionDisliked
	default:
		return ReactionNone
	}
}
