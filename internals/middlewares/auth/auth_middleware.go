// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	authModel "bimbelku_backend/internals/features/users/auth/model"
	helper "bimbelku_backend/internals/helpers"
)

// AuthMiddleware memverifikasi JWT, cek blacklist, lalu simpan klaim ke Locals.
// Secret dipass eksplisit dari Config, bukan dibaca dari env di sini.
func AuthMiddleware(db *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak ditemukan")
		}

		// 2) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklistModel
			if err := db.Where("token = ?", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 3) Parse & verifikasi JWT
		if jwtSecret == "" {
			log.Println("[ERROR] JWT secret kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak valid")
		}

		// 4) Validasi exp (dengan sedikit leeway)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) Ambil user_id + role dari klaim
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		role, err := extractRole(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing role")
		}

		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocUserRole, role.String())
		helper.SetRawAccessToken(c, tokenString)

		return c.Next()
	}
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("exp tidak ada di klaim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("exp bukan angka")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("id tidak ada di klaim")
	}
	return uuid.Parse(raw)
}

func extractRole(claims jwt.MapClaims) (constants.Role, error) {
	raw, ok := claims["role"].(string)
	if !ok || raw == "" {
		return "", errors.New("role tidak ada di klaim")
	}
	return constants.ParseRole(raw)
}
