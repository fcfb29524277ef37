package models

import "time"

// SyncFailure is the divergence audit trail: one row per mirror write
// that could not be applied, with enough context to replay it by hand.
type SyncFailure struct {
	ID        uint   `gorm:"primaryKey"`
	Entity    string `gorm:"size:32;index"`
	Op        string `gorm:"size:32"`
	Key       string `gorm:"size:191;index"`
	Message   string `gorm:"size:1024"`
	CreatedAt time.Time
}
