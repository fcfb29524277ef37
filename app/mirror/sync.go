package mirror

import (
	"context"
	"strconv"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// userDoc is the mirrored shape of a relational user row. The record
// id is store-assigned; username is the cross-store key.
type userDoc struct {
	ID           *models.RecordID `json:"id,omitempty"`
	Username     string           `json:"username"`
	PasswordHash string           `json:"password_hash"`
	Role         string           `json:"role"`
	CreatedAt    time.Time        `json:"created_at"`
}

// patientDoc is the mirrored shape of a relational patient row. The
// record id carries the relational integer id (patients:<n>), so the
// store itself enforces at most one document per id.
type patientDoc struct {
	ID        *models.RecordID `json:"id,omitempty"`
	Name      string           `json:"name"`
	Age       int              `json:"age"`
	Condition string           `json:"condition"`
	AddedBy   string           `json:"added_by"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
}

func patientRecordID(id int) models.RecordID {
	return models.NewRecordID(patientsTable, id)
}

// InsertUser mirrors a freshly registered user. Duplicate usernames
// are not pre-checked; the unique index rejects them and the violation
// comes back as a constraint failure.
func (s *Store) InsertUser(ctx context.Context, username, passwordHash, role string) Result {
	if s.db == nil {
		return failed(KindDisconnected, errNotConnected)
	}
	doc := userDoc{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := surrealdb.Create[userDoc](ctx, s.db, usersTable, doc)
	if err != nil {
		res := s.failure(err)
		s.log.Error().Err(err).Str("username", username).Msg("mirror insert user failed")
		return res
	}
	return succeeded(recordIDString(created.ID))
}

// InsertPatient mirrors a relational patient row under the record id
// patients:<id>, stamping creation time and the provenance tag.
func (s *Store) InsertPatient(ctx context.Context, id int, name string, age int, condition, addedBy string) Result {
	if s.db == nil {
		return failed(KindDisconnected, errNotConnected)
	}
	rid := patientRecordID(id)
	doc := patientDoc{
		Name:      name,
		Age:       age,
		Condition: condition,
		AddedBy:   addedBy,
		Source:    Source,
		CreatedAt: time.Now().UTC(),
	}
	created, err := surrealdb.Create[patientDoc](ctx, s.db, rid, doc)
	if err != nil {
		res := s.failure(err)
		s.log.Error().Err(err).Int("patient_id", id).Msg("mirror insert patient failed")
		return res
	}
	return succeeded(recordIDString(created.ID))
}

// updatableFields are the only patient fields a partial merge may
// touch; created_at and source are immutable after insert.
var updatableFields = map[string]struct{}{
	"name":      {},
	"age":       {},
	"condition": {},
	"added_by":  {},
}

// UpdatePatient merges the named fields into the document with the
// given id. A missing document reports not-found; a merge that leaves
// every value unchanged is still a success, since the document the
// caller addressed does exist.
func (s *Store) UpdatePatient(ctx context.Context, id int, fields map[string]any) Result {
	if s.db == nil {
		return failed(KindDisconnected, errNotConnected)
	}
	merge := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := updatableFields[k]; ok {
			merge[k] = v
		}
	}
	res, err := surrealdb.Query[[]patientDoc](ctx, s.db,
		"UPDATE $rid MERGE $fields RETURN AFTER",
		map[string]any{"rid": patientRecordID(id), "fields": merge},
	)
	if err != nil {
		out := s.failure(err)
		s.log.Error().Err(err).Int("patient_id", id).Msg("mirror update patient failed")
		return out
	}
	if len(firstBatch(res)) == 0 {
		return failed(KindNotFound, errPatientNotFound)
	}
	return succeeded("")
}

// DeletePatient removes the document with the given id. Not-found when
// nothing was deleted.
func (s *Store) DeletePatient(ctx context.Context, id int) Result {
	if s.db == nil {
		return failed(KindDisconnected, errNotConnected)
	}
	res, err := surrealdb.Query[[]patientDoc](ctx, s.db,
		"DELETE $rid RETURN BEFORE",
		map[string]any{"rid": patientRecordID(id)},
	)
	if err != nil {
		out := s.failure(err)
		s.log.Error().Err(err).Int("patient_id", id).Msg("mirror delete patient failed")
		return out
	}
	if len(firstBatch(res)) == 0 {
		return failed(KindNotFound, errPatientNotFound)
	}
	return succeeded("")
}

// recordIDString renders the internal record identity as an opaque
// string for insert results. Callers must not parse it.
func recordIDString(rid *models.RecordID) string {
	if rid == nil {
		return ""
	}
	return rid.String()
}

// recordIDInt recovers the relational integer id from a patient record
// id. Zero when the id is absent or not numeric.
func recordIDInt(rid *models.RecordID) int {
	if rid == nil {
		return 0
	}
	switch v := rid.ID.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
