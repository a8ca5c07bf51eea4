package auth

import (
	"github.com/gofiber/fiber/v2"

	"bimbelku_backend/internals/constants"
	helper "bimbelku_backend/internals/helpers"
)

// RequireRoles meloloskan request hanya jika role di token termasuk allowed.
// Role selalu lewat varian tertutup constants.Role.
func RequireRoles(allowed ...constants.Role) fiber.Handler {
	return RequireRolesWithMessage("", allowed...)
}

// RequireRolesWithMessage sama, dengan pesan forbidden kustom.
func RequireRolesWithMessage(forbiddenMessage string, allowed ...constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return err
		}

		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}

		if forbiddenMessage == "" {
			forbiddenMessage = "Forbidden: role " + role.Label() + " tidak boleh mengakses resource ini"
		}
		return helper.JsonError(c, fiber.StatusForbidden, forbiddenMessage)
	}
}
