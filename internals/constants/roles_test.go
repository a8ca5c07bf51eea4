package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "mentor", "siswa"} {
		r, err := ParseRole(s)
		assert.NoError(t, err)
		assert.Equal(t, s, r.String())
		assert.True(t, r.Valid())
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "user", "owner", "Admin", "SISWA"} {
		_, err := ParseRole(s)
		assert.Error(t, err, "role %q harus ditolak", s)
	}
	assert.False(t, Role("superuser").Valid())
}
