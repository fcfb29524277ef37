package controllers

import (
	"net/http"

	"medisync/app/mirror"
	"medisync/app/repo"
	"medisync/app/services"
)

// AdminController exposes the mirrored snapshots and the divergence
// audit trail for operators diagnosing drift between the stores.
type AdminController struct {
	Users    *services.UserService
	Mirror   *mirror.Store
	Failures *repo.SyncFailureRepository
}

func NewAdminController(users *services.UserService, m *mirror.Store, failures *repo.SyncFailureRepository) *AdminController {
	return &AdminController{Users: users, Mirror: m, Failures: failures}
}

// MirrorUsers lists the users as the document store sees them.
func (c *AdminController) MirrorUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	users := c.Mirror.AllUsers(r.Context())
	if users == nil {
		users = []mirror.UserRecord{}
	}
	writeJSON(w, http.StatusOK, users)
}

// MirrorPatients lists the patients as the document store sees them,
// newest first.
func (c *AdminController) MirrorPatients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	patients := c.Mirror.AllPatients(r.Context())
	if patients == nil {
		patients = []mirror.PatientRecord{}
	}
	writeJSON(w, http.StatusOK, patients)
}

// SyncFailures lists the most recent mirror write failures.
func (c *AdminController) SyncFailures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	failures, err := c.Failures.Latest(100)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, failures)
}

// ListUsers lists relational users (the authoritative side).
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	users, err := c.Users.All()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]any{
			"id":         u.ID,
			"username":   u.Username,
			"role":       u.Role,
			"created_at": u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
