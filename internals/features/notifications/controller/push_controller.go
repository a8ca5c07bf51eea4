package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bimbelku_backend/internals/features/notifications/dto"
	"bimbelku_backend/internals/features/notifications/model"
	helper "bimbelku_backend/internals/helpers"
)

type PushController struct {
	DB *gorm.DB
}

func NewPushController(db *gorm.DB) *PushController {
	return &PushController{DB: db}
}

// Subscribe menyimpan subscription web push milik user login.
// Endpoint yang sama di-upsert, jadi browser boleh kirim ulang.
func (ctl *PushController) Subscribe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	endpoint := req.Endpoint()
	if endpoint == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Subscription tidak memiliki endpoint")
	}

	sub := model.PushSubscriptionModel{
		UserID:       userID,
		Endpoint:     endpoint,
		Subscription: datatypes.JSON(req.Subscription),
	}

	err = ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"subscription"}),
		}).
		Create(&sub).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan subscription")
	}

	return helper.JsonCreated(c, "Subscription tersimpan", fiber.Map{
		"endpoint": sub.Endpoint,
	})
}
