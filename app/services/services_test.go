package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/repo"
)

// testEnv wires the services against an in-memory sqlite database and
// a mirror with no endpoint, so every mirror write fails disconnected
// and lands in the divergence audit table.
type testEnv struct {
	users    *UserService
	patients *PatientService
	failures *repo.SyncFailureRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Patient{}, &models.SyncFailure{}))

	m := mirror.Connect(mirror.Config{}, zerolog.Nop())
	failures := repo.NewSyncFailureRepository(db)
	drift := NewDriftRecorder(failures, zerolog.Nop())
	return &testEnv{
		users:    NewUserService(repo.NewUserRepository(db), m, drift),
		patients: NewPatientService(repo.NewPatientRepository(db), m, drift),
		failures: failures,
	}
}
