package mirror

import (
	"context"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// declareIndexes declares the uniqueness and lookup indexes once after
// a successful connect. Patients need no index on their id: the
// relational integer is the record id itself, so duplicates are
// rejected by the store. Failures are warnings only; the mirror keeps
// working without them, slower and without duplicate protection.
func (s *Store) declareIndexes(ctx context.Context) {
	stmts := []string{
		"DEFINE INDEX IF NOT EXISTS idx_users_username ON TABLE users FIELDS username UNIQUE",
		"DEFINE INDEX IF NOT EXISTS idx_users_role ON TABLE users FIELDS role",
		"DEFINE INDEX IF NOT EXISTS idx_users_created_at ON TABLE users FIELDS created_at",
		"DEFINE INDEX IF NOT EXISTS idx_patients_name ON TABLE patients FIELDS name",
		"DEFINE INDEX IF NOT EXISTS idx_patients_added_by ON TABLE patients FIELDS added_by",
		"DEFINE INDEX IF NOT EXISTS idx_patients_created_at ON TABLE patients FIELDS created_at",
	}
	for _, stmt := range stmts {
		if _, err := surrealdb.Query[any](ctx, s.db, stmt, nil); err != nil {
			s.log.Warn().Err(err).Str("stmt", stmt).Msg("mirror index declaration failed")
		}
	}
}
