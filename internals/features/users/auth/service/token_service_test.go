package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bimbelku_backend/internals/constants"
	userModel "bimbelku_backend/internals/features/users/user/model"
)

func TestIssueAndParseAccessToken(t *testing.T) {
	user := userModel.UserModel{
		ID:       uuid.New(),
		UserName: "budi123",
		Role:     constants.RoleSiswa,
	}

	token, err := IssueAccessToken(user, "secret-test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, role, err := ParseAccessToken(token, "secret-test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, constants.RoleSiswa, role)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	user := userModel.UserModel{ID: uuid.New(), Role: constants.RoleMentor}
	token, err := IssueAccessToken(user, "secret-a")
	require.NoError(t, err)

	_, _, err = ParseAccessToken(token, "secret-b")
	assert.Error(t, err)
}

func TestIssueAccessTokenEmptySecret(t *testing.T) {
	_, err := IssueAccessToken(userModel.UserModel{ID: uuid.New(), Role: constants.RoleSiswa}, "")
	assert.Error(t, err)
}

func TestTokenExpirySevenDays(t *testing.T) {
	user := userModel.UserModel{ID: uuid.New(), Role: constants.RoleSiswa}
	token, err := IssueAccessToken(user, "secret-test")
	require.NoError(t, err)

	exp := TokenExpiry(token)
	want := time.Now().UTC().Add(AccessTokenTTL)
	assert.WithinDuration(t, want, exp, time.Minute)
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("rahasia-banget")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia-banget", hashed)
	assert.True(t, CheckPassword(hashed, "rahasia-banget"))
	assert.False(t, CheckPassword(hashed, "salah"))
}
