package dto

import "time"

type CreatePatientRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Condition string `json:"condition"`
}

// UpdatePatientRequest carries a partial update; nil fields are left
// untouched.
type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	Condition *string `json:"condition"`
}

type PatientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Condition string    `json:"condition"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
	// Mirrored reports whether the secondary-store write succeeded;
	// MirrorError carries the reason when it did not. Informational
	// only: the primary write already committed.
	Mirrored    bool   `json:"mirrored"`
	MirrorError string `json:"mirror_error,omitempty"`
}
