package services

import (
	"github.com/rs/zerolog"

	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/repo"
)

// DriftRecorder logs a failed mirror write and appends it to the
// divergence audit table. There is no replay; the rows exist so drift
// can be diagnosed after the fact.
type DriftRecorder struct {
	failures *repo.SyncFailureRepository
	log      zerolog.Logger
}

func NewDriftRecorder(failures *repo.SyncFailureRepository, log zerolog.Logger) *DriftRecorder {
	return &DriftRecorder{failures: failures, log: log}
}

func (d *DriftRecorder) record(entity, op, key string, res mirror.Result) {
	d.log.Warn().
		Str("entity", entity).
		Str("op", op).
		Str("key", key).
		Str("kind", res.Kind.String()).
		Str("error", res.Message).
		Msg("mirror write failed, stores diverging")
	f := models.SyncFailure{Entity: entity, Op: op, Key: key, Message: res.Message}
	if err := d.failures.Create(&f); err != nil {
		d.log.Error().Err(err).Msg("cannot record sync failure")
	}
}
