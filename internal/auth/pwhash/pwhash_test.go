package pwhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndValidate(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "pbkdf2-sha256$1000$"))

	assert.NoError(t, ph.Validate("correct horse", hash))
	assert.ErrorIs(t, ph.Validate("battery staple", hash), ErrMismatch)

	again, err := ph.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestValidateUsesStoredIterations(t *testing.T) {
	weak, err := New(8, 1000)
	require.NoError(t, err)
	strong, err := New(16, 2000)
	require.NoError(t, err)

	hash, err := weak.HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, strong.Validate("pw", hash))
}

func TestMalformed(t *testing.T) {
	ph, err := New(0, 1000)
	require.NoError(t, err)
	for _, h := range []string{
		"",
		"plain",
		"bcrypt$1000$c2FsdA$a2V5",
		"pbkdf2-sha256$x$c2FsdA$a2V5",
		"pbkdf2-sha256$10$c2FsdA$a2V5",
		"pbkdf2-sha256$1000$!!$a2V5",
		"pbkdf2-sha256$1000$c2FsdA$",
	} {
		assert.ErrorIs(t, ph.Validate("pw", h), ErrMalformed, h)
	}
}

func TestNewRejectsWeakSettings(t *testing.T) {
	_, err := New(4, 0)
	assert.Error(t, err)
	_, err = New(0, 10)
	assert.Error(t, err)
}
