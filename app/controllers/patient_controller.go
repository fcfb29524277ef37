package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"medisync/app/dto"
	"medisync/app/middleware"
	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/services"
)

type PatientController struct {
	Patients *services.PatientService
}

func NewPatientController(patients *services.PatientService) *PatientController {
	return &PatientController{Patients: patients}
}

// Collection handles /patients: list on GET, create on POST.
func (c *PatientController) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.list(w, r)
	case http.MethodPost:
		c.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /patients/{id}: get, partial update, delete.
func (c *PatientController) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := patientID(r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		c.get(w, r, id)
	case http.MethodPut, http.MethodPatch:
		c.update(w, r, id)
	case http.MethodDelete:
		c.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c *PatientController) list(w http.ResponseWriter, r *http.Request) {
	patients, err := c.Patients.All()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	out := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toResponse(&p, mirror.Result{OK: true}))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *PatientController) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	addedBy := ""
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		addedBy = claims.Username
	}
	p, res, err := c.Patients.Create(r.Context(), req.Name, req.Age, req.Condition, addedBy)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(p, res))
}

func (c *PatientController) get(w http.ResponseWriter, r *http.Request, id uint) {
	p, err := c.Patients.Get(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(p, mirror.Result{OK: true}))
}

func (c *PatientController) update(w http.ResponseWriter, r *http.Request, id uint) {
	var req dto.UpdatePatientRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Condition != nil {
		fields["condition"] = *req.Condition
	}
	p, res, err := c.Patients.Update(r.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPatientNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidPatient):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, toResponse(p, res))
}

func (c *PatientController) delete(w http.ResponseWriter, r *http.Request, id uint) {
	if _, err := c.Patients.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func patientID(path string) (uint, bool) {
	raw := strings.TrimPrefix(path, "/patients/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func toResponse(p *models.Patient, res mirror.Result) dto.PatientResponse {
	return dto.PatientResponse{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Condition:   p.Condition,
		AddedBy:     p.AddedBy,
		CreatedAt:   p.CreatedAt,
		Mirrored:    res.OK,
		MirrorError: res.Err(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
