package mirror

import (
	"context"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// UserRecord is a normalized mirrored user: the store's internal
// identity is stripped, username is the key.
type UserRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PatientRecord is a normalized mirrored patient keyed by the
// relational integer id.
type PatientRecord struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Condition string    `json:"condition"`
	AddedBy   string    `json:"added_by"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// AllUsers returns every mirrored user. Empty on disconnect or error,
// never an error value.
func (s *Store) AllUsers(ctx context.Context) []UserRecord {
	if s.db == nil {
		return nil
	}
	res, err := surrealdb.Query[[]userDoc](ctx, s.db, "SELECT * FROM users", nil)
	if err != nil {
		s.log.Error().Err(err).Msg("mirror list users failed")
		return nil
	}
	docs := firstBatch(res)
	users := make([]UserRecord, 0, len(docs))
	for _, d := range docs {
		users = append(users, UserRecord{
			Username:     d.Username,
			PasswordHash: d.PasswordHash,
			Role:         d.Role,
			CreatedAt:    d.CreatedAt,
		})
	}
	return users
}

// AllPatients returns every mirrored patient, newest first.
func (s *Store) AllPatients(ctx context.Context) []PatientRecord {
	if s.db == nil {
		return nil
	}
	res, err := surrealdb.Query[[]patientDoc](ctx, s.db, "SELECT * FROM patients ORDER BY created_at DESC", nil)
	if err != nil {
		s.log.Error().Err(err).Msg("mirror list patients failed")
		return nil
	}
	docs := firstBatch(res)
	patients := make([]PatientRecord, 0, len(docs))
	for _, d := range docs {
		patients = append(patients, normalizePatient(d))
	}
	return patients
}

// PatientByID returns the mirrored patient and true, or false when no
// such document is reachable. A miss and a dead connection are
// indistinguishable here; the relational store stays authoritative.
func (s *Store) PatientByID(ctx context.Context, id int) (*PatientRecord, bool) {
	if s.db == nil {
		return nil, false
	}
	doc, err := surrealdb.Select[patientDoc](ctx, s.db, patientRecordID(id))
	if err != nil {
		if !isNotFound(err) {
			s.log.Error().Err(err).Int("patient_id", id).Msg("mirror get patient failed")
		}
		return nil, false
	}
	if doc == nil {
		return nil, false
	}
	p := normalizePatient(*doc)
	return &p, true
}

// PatientCount returns the number of mirrored patients, zero when
// disconnected.
func (s *Store) PatientCount(ctx context.Context) int {
	return s.count(ctx, patientsTable)
}

// UserCount returns the number of mirrored users, zero when
// disconnected.
func (s *Store) UserCount(ctx context.Context) int {
	return s.count(ctx, usersTable)
}

type countRow struct {
	C int `json:"c"`
}

func (s *Store) count(ctx context.Context, table string) int {
	if s.db == nil {
		return 0
	}
	res, err := surrealdb.Query[[]countRow](ctx, s.db, "SELECT count() AS c FROM "+table+" GROUP ALL", nil)
	if err != nil {
		s.log.Error().Err(err).Str("table", table).Msg("mirror count failed")
		return 0
	}
	rows := firstBatch(res)
	if len(rows) == 0 {
		return 0
	}
	return rows[0].C
}

func normalizePatient(d patientDoc) PatientRecord {
	return PatientRecord{
		ID:        recordIDInt(d.ID),
		Name:      d.Name,
		Age:       d.Age,
		Condition: d.Condition,
		AddedBy:   d.AddedBy,
		Source:    d.Source,
		CreatedAt: d.CreatedAt,
	}
}
