package services

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/repo"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidPatient  = errors.New("name required and age must be positive")
)

type PatientService struct {
	patients *repo.PatientRepository
	mirror   *mirror.Store
	drift    *DriftRecorder
}

func NewPatientService(patients *repo.PatientRepository, m *mirror.Store, drift *DriftRecorder) *PatientService {
	return &PatientService{patients: patients, mirror: m, drift: drift}
}

// Create inserts the patient into the relational store, which assigns
// the id, then mirrors the row under that id. The returned Result
// tells the caller whether the mirror kept up; the primary write has
// already committed either way.
func (s *PatientService) Create(ctx context.Context, name string, age int, condition, addedBy string) (*models.Patient, mirror.Result, error) {
	if name == "" || age <= 0 {
		return nil, mirror.Result{}, ErrInvalidPatient
	}
	p := &models.Patient{Name: name, Age: age, Condition: condition, AddedBy: addedBy}
	if err := s.patients.Create(p); err != nil {
		return nil, mirror.Result{}, err
	}
	res := s.mirror.InsertPatient(ctx, int(p.ID), p.Name, p.Age, p.Condition, p.AddedBy)
	if !res.OK {
		s.drift.record("patient", "insert", strconv.FormatUint(uint64(p.ID), 10), res)
	}
	return p, res, nil
}

// Update applies the partial field set to the relational row first;
// the same merge is then attempted against the mirror.
func (s *PatientService) Update(ctx context.Context, id uint, fields map[string]any) (*models.Patient, mirror.Result, error) {
	if len(fields) == 0 {
		p, err := s.Get(id)
		return p, mirror.Result{}, err
	}
	if age, ok := fields["age"].(int); ok && age <= 0 {
		return nil, mirror.Result{}, ErrInvalidPatient
	}
	affected, err := s.patients.UpdateFields(id, fields)
	if err != nil {
		return nil, mirror.Result{}, err
	}
	if affected == 0 {
		return nil, mirror.Result{}, ErrPatientNotFound
	}
	res := s.mirror.UpdatePatient(ctx, int(id), fields)
	if !res.OK {
		s.drift.record("patient", "update", strconv.FormatUint(uint64(id), 10), res)
	}
	p, err := s.Get(id)
	return p, res, err
}

func (s *PatientService) Delete(ctx context.Context, id uint) (mirror.Result, error) {
	affected, err := s.patients.Delete(id)
	if err != nil {
		return mirror.Result{}, err
	}
	if affected == 0 {
		return mirror.Result{}, ErrPatientNotFound
	}
	res := s.mirror.DeletePatient(ctx, int(id))
	if !res.OK {
		s.drift.record("patient", "delete", strconv.FormatUint(uint64(id), 10), res)
	}
	return res, nil
}

func (s *PatientService) Get(id uint) (*models.Patient, error) {
	p, err := s.patients.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	return p, err
}

func (s *PatientService) All() ([]models.Patient, error) { return s.patients.All() }

func (s *PatientService) Count() (int64, error) { return s.patients.Count() }
