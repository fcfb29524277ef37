package repo

import (
	"medisync/app/models"

	"gorm.io/gorm"
)

type SyncFailureRepository struct{ db *gorm.DB }

func NewSyncFailureRepository(db *gorm.DB) *SyncFailureRepository {
	return &SyncFailureRepository{db: db}
}

func (r *SyncFailureRepository) Create(f *models.SyncFailure) error { return r.db.Create(f).Error }

func (r *SyncFailureRepository) Latest(limit int) ([]models.SyncFailure, error) {
	if limit <= 0 {
		limit = 50
	}
	var failures []models.SyncFailure
	err := r.db.Order("id DESC").Limit(limit).Find(&failures).Error
	return failures, err
}

func (r *SyncFailureRepository) Count() (int64, error) {
	var count int64
	return count, r.db.Model(&models.SyncFailure{}).Count(&count).Error
}
