package models

import "time"

// Patient is the authoritative relational record. The auto-increment
// ID is the identity the mirrored document is keyed by.
type Patient struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:191;not null;index"`
	Age       int    `gorm:"not null"`
	Condition string `gorm:"size:255"`
	AddedBy   string `gorm:"size:191;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
