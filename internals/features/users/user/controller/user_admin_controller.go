package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/users/user/dto"
	model "bimbelku_backend/internals/features/users/user/model"
	authService "bimbelku_backend/internals/features/users/auth/service"
	helper "bimbelku_backend/internals/helpers"
)

type UserAdminController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db, validate: validator.New()}
}

/* ======================== LIST ======================== */
// GET /api/admin/users?role=&search=&page=&limit=
func (ctl *UserAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.UserModel{})

	if roleStr := strings.TrimSpace(c.Query("role")); roleStr != "" {
		role, err := constants.ParseRole(roleStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role filter tidak dikenal")
		}
		q = q.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR user_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[User.List] count error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []model.UserModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[User.List] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonList(c, "OK", dto.FromUserModels(rows),
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* ======================== DETAIL ======================== */
// GET /api/admin/users/:id
func (ctl *UserAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonOK(c, "OK", dto.FromUserModel(user))
}

/* ======================== CREATE ======================== */
// POST /api/admin/users — admin boleh membuat akun mentor/admin/siswa
func (ctl *UserAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.UserModel{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	m := req.ToModel()
	m.Password = hashed
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Printf("[User.Create] create error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.FromUserModel(*m))
}

/* ======================== UPDATE ======================== */
// PUT /api/admin/users/:id — partial update, termasuk aktif/nonaktif
func (ctl *UserAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		role, rerr := constants.ParseRole(*req.Role)
		if rerr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal")
		}
		updates["role"] = role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hashed, herr := authService.HashPassword(*req.Password)
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		updates["password"] = hashed
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&user).Updates(updates).Error; err != nil {
		log.Printf("[User.Update] update error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah user")
	}
	return helper.JsonUpdated(c, "User berhasil diubah", dto.FromUserModel(user))
}
