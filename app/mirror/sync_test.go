package mirror

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveStore connects to a real SurrealDB when
// MEDISYNC_TEST_SURREAL_ENDPOINT is set, e.g.
// MEDISYNC_TEST_SURREAL_ENDPOINT=ws://localhost:8000/rpc
func liveStore(t *testing.T) *Store {
	t.Helper()
	endpoint := os.Getenv("MEDISYNC_TEST_SURREAL_ENDPOINT")
	if endpoint == "" {
		t.Skip("MEDISYNC_TEST_SURREAL_ENDPOINT not set")
	}
	s := Connect(Config{
		Endpoint:  endpoint,
		Namespace: "medisync_test",
		Database:  fmt.Sprintf("hospital_%d", time.Now().UnixNano()),
		User:      os.Getenv("MEDISYNC_TEST_SURREAL_USER"),
		Pass:      os.Getenv("MEDISYNC_TEST_SURREAL_PASS"),
	}, zerolog.Nop())
	require.True(t, s.Connected(context.Background()), "SurrealDB should be reachable")
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestInsertUserRoundTrip(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	res := s.InsertUser(ctx, "doc1", "hashed_password_123", "doctor")
	require.True(t, res.OK, res.Err())
	assert.NotEmpty(t, res.RecordID)

	users := s.AllUsers(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, "doc1", users[0].Username)
	assert.Equal(t, "hashed_password_123", users[0].PasswordHash)
	assert.Equal(t, "doctor", users[0].Role)
	assert.False(t, users[0].CreatedAt.Before(before))

	assert.Equal(t, 1, s.UserCount(ctx))
}

func TestInsertUserDuplicateUsername(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	require.True(t, s.InsertUser(ctx, "dup", "h1", "staff").OK)
	res := s.InsertUser(ctx, "dup", "h2", "staff")
	require.False(t, res.OK)
	assert.Equal(t, KindConstraint, res.Kind)
	assert.NotEmpty(t, res.Err())
	assert.Equal(t, 1, s.UserCount(ctx))
}

func TestPatientLifecycle(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	res := s.InsertPatient(ctx, 42, "A", 30, "X", "doc1")
	require.True(t, res.OK, res.Err())
	assert.NotEmpty(t, res.RecordID)
	assert.Equal(t, 1, s.PatientCount(ctx))

	p, found := s.PatientByID(ctx, 42)
	require.True(t, found)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, "X", p.Condition)
	assert.Equal(t, "doc1", p.AddedBy)
	assert.Equal(t, "web_form", p.Source)

	res = s.UpdatePatient(ctx, 42, map[string]any{"age": 31})
	require.True(t, res.OK, res.Err())
	p, found = s.PatientByID(ctx, 42)
	require.True(t, found)
	assert.Equal(t, 31, p.Age)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, "X", p.Condition)

	res = s.DeletePatient(ctx, 42)
	require.True(t, res.OK, res.Err())
	assert.Equal(t, 0, s.PatientCount(ctx))
	_, found = s.PatientByID(ctx, 42)
	assert.False(t, found)
}

func TestDuplicatePatientID(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	require.True(t, s.InsertPatient(ctx, 7, "First", 20, "C1", "doc1").OK)
	res := s.InsertPatient(ctx, 7, "Second", 21, "C2", "doc1")
	require.False(t, res.OK)
	assert.Equal(t, 1, s.PatientCount(ctx))
}

func TestUpdateAndDeleteMissingPatient(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	res := s.UpdatePatient(ctx, 999999, map[string]any{"name": "Fake"})
	require.False(t, res.OK)
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, "Patient not found", res.Err())

	before := s.PatientCount(ctx)
	res = s.DeletePatient(ctx, 888888)
	require.False(t, res.OK)
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, "Patient not found", res.Err())
	assert.Equal(t, before, s.PatientCount(ctx))
}

func TestUpdateIgnoresImmutableFields(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	require.True(t, s.InsertPatient(ctx, 11, "B", 50, "Y", "doc2").OK)
	p, found := s.PatientByID(ctx, 11)
	require.True(t, found)
	created := p.CreatedAt

	res := s.UpdatePatient(ctx, 11, map[string]any{
		"condition":  "Z",
		"source":     "bulk_import",
		"created_at": time.Now().UTC().Add(time.Hour),
	})
	require.True(t, res.OK, res.Err())

	p, found = s.PatientByID(ctx, 11)
	require.True(t, found)
	assert.Equal(t, "Z", p.Condition)
	assert.Equal(t, "web_form", p.Source)
	assert.True(t, p.CreatedAt.Equal(created))
}

func TestAllPatientsNewestFirst(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	for i, name := range []string{"One", "Two", "Three"} {
		require.True(t, s.InsertPatient(ctx, i+1, name, 30+i, "C", "doc1").OK)
		time.Sleep(5 * time.Millisecond)
	}
	patients := s.AllPatients(ctx)
	require.Len(t, patients, 3)
	for i := 1; i < len(patients); i++ {
		assert.False(t, patients[i-1].CreatedAt.Before(patients[i].CreatedAt))
	}
	assert.Equal(t, "Three", patients[0].Name)
}
