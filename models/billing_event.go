package models

import "time"

// BillingEvent records processed billing-provider webhook deliveries. The
// unique event id makes replayed deliveries no-ops; the payload digest lets
// a replayed id be checked against the body it was first seen with.
type BillingEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       string    `gorm:"size:64;uniqueIndex;not null" json:"event_id"`
	EventType     string    `gorm:"size:64;not null" json:"event_type"`
	UserID        uint      `gorm:"index" json:"user_id"`
	PayloadDigest string    `gorm:"size:64" json:"payload_digest"`
	CreatedAt     time.Time `json:"created_at"`
}
