package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"medisync/app/mirror"
)

type HealthController struct {
	DB     *gorm.DB
	Mirror *mirror.Store
}

func NewHealthController(db *gorm.DB, m *mirror.Store) *HealthController {
	return &HealthController{DB: db, Mirror: m}
}

// Health reports liveness of both stores. A dead mirror does not turn
// the status red: the relational store is authoritative.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	dbOK := false
	if sqlDB, err := c.DB.DB(); err == nil {
		dbOK = sqlDB.PingContext(ctx) == nil
	}
	mirrorOK := c.Mirror.Connected(ctx)

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":   statusWord(dbOK),
		"database": dbOK,
		"mirror": map[string]any{
			"connected": mirrorOK,
			"patients":  c.Mirror.PatientCount(ctx),
			"users":     c.Mirror.UserCount(ctx),
		},
	})
}

func statusWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "degraded"
}
