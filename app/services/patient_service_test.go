package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisync/app/mirror"
)

func TestPatientCreateSurvivesMirrorOutage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, res, err := env.patients.Create(ctx, "A", 30, "X", "doc1")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.False(t, res.OK)
	assert.Equal(t, mirror.KindDisconnected, res.Kind)

	got, err := env.patients.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	count, err := env.patients.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	failures, err := env.failures.Latest(10)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "patient", failures[0].Entity)
	assert.Equal(t, "insert", failures[0].Op)
}

func TestPatientCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.patients.Create(ctx, "", 30, "X", "doc1")
	assert.ErrorIs(t, err, ErrInvalidPatient)

	_, _, err = env.patients.Create(ctx, "A", 0, "X", "doc1")
	assert.ErrorIs(t, err, ErrInvalidPatient)

	_, _, err = env.patients.Create(ctx, "A", -5, "X", "doc1")
	assert.ErrorIs(t, err, ErrInvalidPatient)
}

func TestPatientUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, _, err := env.patients.Create(ctx, "A", 30, "X", "doc1")
	require.NoError(t, err)

	updated, res, err := env.patients.Update(ctx, p.ID, map[string]any{"age": 31})
	require.NoError(t, err)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, mirror.KindDisconnected, res.Kind)

	_, _, err = env.patients.Update(ctx, p.ID, map[string]any{"age": -1})
	assert.ErrorIs(t, err, ErrInvalidPatient)

	_, _, err = env.patients.Update(ctx, 999, map[string]any{"age": 40})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientUpdateEmptyFieldsIsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, _, err := env.patients.Create(ctx, "A", 30, "X", "doc1")
	require.NoError(t, err)
	before, err := env.failures.Count()
	require.NoError(t, err)

	got, res, err := env.patients.Update(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, mirror.KindNone, res.Kind)

	// No update means no mirror traffic and no new drift rows.
	after, err := env.failures.Count()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPatientDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, _, err := env.patients.Create(ctx, "A", 30, "X", "doc1")
	require.NoError(t, err)

	res, err := env.patients.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, mirror.KindDisconnected, res.Kind)

	_, err = env.patients.Get(p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = env.patients.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
