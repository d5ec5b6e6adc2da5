package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	type settings struct {
		Start, End float64
	}
	a, err := Fingerprint(settings{0, 255})
	require.NoError(t, err)
	b, err := Fingerprint(settings{0, 255})
	require.NoError(t, err)
	c, err := Fingerprint(settings{0, 254})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, uuid.Version(3), a.Version())

	_, err = Fingerprint(func() {})
	require.Error(t, err)
}
