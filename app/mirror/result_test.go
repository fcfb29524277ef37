package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultErr(t *testing.T) {
	ok := succeeded("users:abc123")
	assert.True(t, ok.OK)
	assert.Equal(t, KindNone, ok.Kind)
	assert.Equal(t, "users:abc123", ok.RecordID)
	assert.Empty(t, ok.Err())

	notFound := failed(KindNotFound, errPatientNotFound)
	assert.False(t, notFound.OK)
	assert.Equal(t, "Patient not found", notFound.Err())

	disconnected := failed(KindDisconnected, errNotConnected)
	assert.Equal(t, "SurrealDB not connected", disconnected.Err())
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		KindNone:         "none",
		KindDisconnected: "disconnected",
		KindConstraint:   "constraint",
		KindNotFound:     "not_found",
		KindDriver:       "driver",
		ErrorKind(99):    "unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
