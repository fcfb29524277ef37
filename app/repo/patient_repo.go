package repo

import (
	"medisync/app/models"

	"gorm.io/gorm"
)

type PatientRepository struct{ db *gorm.DB }

func NewPatientRepository(db *gorm.DB) *PatientRepository { return &PatientRepository{db: db} }

func (r *PatientRepository) Create(p *models.Patient) error { return r.db.Create(p).Error }

func (r *PatientRepository) FindByID(id uint) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) All() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order("created_at DESC").Find(&patients).Error
	return patients, err
}

func (r *PatientRepository) Count() (int64, error) {
	var count int64
	return count, r.db.Model(&models.Patient{}).Count(&count).Error
}

// UpdateFields applies a partial update and reports how many rows
// matched, so callers can distinguish a missing id.
func (r *PatientRepository) UpdateFields(id uint, fields map[string]any) (int64, error) {
	res := r.db.Model(&models.Patient{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *PatientRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Patient{}, id)
	return res.RowsAffected, res.Error
}
