package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
	userModel "bimbelku_backend/internals/features/users/user/model"
)

// Access token berlaku 7 hari, sesuai kontrak klien.
const AccessTokenTTL = 7 * 24 * time.Hour

// IssueAccessToken menandatangani klaim {id, role} HS256.
func IssueAccessToken(user userModel.UserModel, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret kosong")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role.String(),
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken memverifikasi token dan mengembalikan id + role.
func ParseAccessToken(tokenString, secret string) (uuid.UUID, constants.Role, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return uuid.Nil, "", err
	}

	rawID, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("id tidak ada di klaim")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", err
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("role tidak ada di klaim")
	}
	role, err := constants.ParseRole(rawRole)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, role, nil
}

// TokenExpiry membaca exp dari token tanpa verifikasi signature,
// dipakai saat memasukkan token ke blacklist.
func TokenExpiry(tokenString string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Now().UTC().Add(AccessTokenTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return time.Now().UTC().Add(AccessTokenTTL)
}
