package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	authModel "bimbelku_backend/internals/features/users/auth/model"
	"bimbelku_backend/internals/features/users/auth/service"
	userDTO "bimbelku_backend/internals/features/users/user/dto"
	userModel "bimbelku_backend/internals/features/users/user/model"
	helper "bimbelku_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Cfg      *configs.Config
	validate *validator.Validate
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, validate: validator.New()}
}

/* ======================= REGISTER ======================= */

// POST /api/auth/register — pendaftaran siswa (role dipaksa siswa)
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	req.Role = constants.RoleSiswa.String() // register publik selalu siswa

	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&userModel.UserModel{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		log.Printf("[Auth.Register] cek email error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	hashed, err := service.HashPassword(req.Password)
	if err != nil {
		log.Printf("[Auth.Register] hash error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	m := req.ToModel()
	m.Password = hashed
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Printf("[Auth.Register] create error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Pendaftaran berhasil", userDTO.FromUserModel(*m))
}

/* ======================= LOGIN ======================= */

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("email = ?", req.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Printf("[Auth.Login] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if !service.CheckPassword(user.Password, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return ctl.respondWithToken(c, user, "Login berhasil")
}

/* ======================= GOOGLE LOGIN ======================= */

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// POST /api/auth/google — login/daftar via Google ID token
func (ctl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if ctl.Cfg.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Google login belum dikonfigurasi")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{ctl.Cfg.GoogleClientID}); err != nil {
		log.Printf("[Auth.Google] verify error: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token Google tidak valid")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Gagal membaca ID token")
	}

	email := strings.TrimSpace(strings.ToLower(claimSet.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token tanpa email")
	}

	var user userModel.UserModel
	err = ctl.DB.WithContext(c.Context()).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// akun baru: siswa dengan password acak
		randomPwd, herr := service.HashPassword(uuid.New().String())
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		user = userModel.UserModel{
			UserName: usernameFromEmail(email),
			FullName: strings.TrimSpace(claimSet.Name),
			Email:    email,
			Password: randomPwd,
			Role:     constants.RoleSiswa,
			GoogleID: &claimSet.Sub,
			IsActive: true,
		}
		if user.FullName == "" {
			user.FullName = user.UserName
		}
		if cerr := ctl.DB.WithContext(c.Context()).Create(&user).Error; cerr != nil {
			log.Printf("[Auth.Google] create error: %v", cerr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
	case err != nil:
		log.Printf("[Auth.Google] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return ctl.respondWithToken(c, user, "Login berhasil")
}

/* ======================= LOGOUT ======================= */

// POST /api/auth/logout — masukkan token aktif ke blacklist
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	bl := authModel.TokenBlacklistModel{
		Token:     raw,
		ExpiresAt: service.TokenExpiry(raw),
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&bl).Error; err != nil {
		log.Printf("[Auth.Logout] blacklist error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ======================= ME ======================= */

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonOK(c, "OK", userDTO.FromUserModel(user))
}

/* ======================= INTERNAL ======================= */

func (ctl *AuthController) respondWithToken(c *fiber.Ctx, user userModel.UserModel, message string) error {
	token, err := service.IssueAccessToken(user, ctl.Cfg.JWTSecret)
	if err != nil {
		log.Printf("[Auth] issue token error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(service.AccessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, message, fiber.Map{
		"access_token": token,
		"user":         userDTO.FromUserModel(user),
	})
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
