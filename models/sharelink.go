package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Share link target types.
const (
	LinkProposal = "proposal"
	LinkContract = "contract"
)

// ShareLink grants unauthenticated read access to a document via an opaque
// token, optionally time-bounded.
type ShareLink struct {
	Token     string     `json:"token" gorm:"primaryKey"`
	Type      string     `json:"type" gorm:"not null"`
	TargetID  uint       `json:"target_id" gorm:"index;not null"`
	UserID    string     `json:"-" gorm:"index;not null"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (link *ShareLink) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if link.Token == "" {
		link.Token = uuid.NewString()
	}
	return
}

// Expired reports whether the link has an expiry in the past.
func (link *ShareLink) Expired() bool {
	return link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt)
}
