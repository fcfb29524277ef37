package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"medisync/app/models"
)

func TestPatientCRUD(t *testing.T) {
	r := NewPatientRepository(testDB(t))

	p := &models.Patient{Name: "A", Age: 30, Condition: "X", AddedBy: "doc1"}
	require.NoError(t, r.Create(p))
	assert.NotZero(t, p.ID)

	got, err := r.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 30, got.Age)

	affected, err := r.UpdateFields(p.ID, map[string]any{"age": 31, "condition": "Y"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err = r.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age)
	assert.Equal(t, "Y", got.Condition)
	assert.Equal(t, "A", got.Name)

	count, err := r.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	affected, err = r.Delete(p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = r.FindByID(p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPatientUpdateMissing(t *testing.T) {
	r := NewPatientRepository(testDB(t))

	affected, err := r.UpdateFields(999, map[string]any{"age": 40})
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = r.Delete(999)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestPatientAllNewestFirst(t *testing.T) {
	r := NewPatientRepository(testDB(t))

	base := time.Now().UTC()
	for i, name := range []string{"One", "Two", "Three"} {
		p := &models.Patient{Name: name, Age: 20 + i, AddedBy: "doc1", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, r.Create(p))
	}

	patients, err := r.All()
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "Three", patients[0].Name)
	assert.Equal(t, "One", patients[2].Name)
}
