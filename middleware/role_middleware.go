package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "appraisal-backend/lib/utils/auth-utils"
	"appraisal-backend/models"
	apimodels "appraisal-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if id, ok := sub.(string); ok {
			return id
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func HrAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsHrAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not permitted"))
		}
		return ctx.Next()
	}
}
