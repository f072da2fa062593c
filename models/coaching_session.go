package models

import "time"

// CoachingSession is a best-effort log of one LLM coaching exchange. Writes
// here are allowed to fail without failing the user-facing response.
type CoachingSession struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	Question       string    `gorm:"size:2048" json:"question"`
	MotivationTier string    `gorm:"size:32" json:"motivation_tier"`
	Insights       string    `gorm:"type:text" json:"insights"`
	Recommendation string    `gorm:"size:2048" json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}
