package models

import "time"

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleDoctor, RolePatient, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:patient;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
