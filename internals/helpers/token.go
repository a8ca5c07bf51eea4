// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
)

// Keys di Locals yang diisi auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocRawToken = "raw_token"
)

// GetUserIDFromToken mengambil user_id hasil verifikasi middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID di token tidak valid")
	}
	return id, nil
}

// GetRoleFromToken mengembalikan role sebagai varian tertutup.
func GetRoleFromToken(c *fiber.Ctx) (constants.Role, error) {
	raw, ok := c.Locals(LocUserRole).(string)
	if !ok || raw == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Role tidak ditemukan di token")
	}
	role, err := constants.ParseRole(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusForbidden, "Role di token tidak dikenal")
	}
	return role, nil
}

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie "access_token"
// 2) Locals("raw_token") yang diset middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken dipanggil middleware auth setelah token terverifikasi.
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
