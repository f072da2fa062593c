package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers gate access to premium analytics and coaching.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// User represents a tracker account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null" json:"username"`
	Email        string         `gorm:"size:255" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Signature    string         `gorm:"size:255" json:"signature"`
	PathSlug     string         `gorm:"size:32;default:balanced" json:"path_slug"`
	Tier         string         `gorm:"size:16;default:free" json:"tier"`
	PremiumUntil *time.Time     `json:"premium_until"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Entries      []DailyEntry   `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// IsPremium reports whether the user currently holds an active premium subscription.
func (u *User) IsPremium() bool {
	if u.Tier != TierPremium {
		return false
	}
	if u.PremiumUntil != nil && u.PremiumUntil.Before(time.Now()) {
		return false
	}
	return true
}
