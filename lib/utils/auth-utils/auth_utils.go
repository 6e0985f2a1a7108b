package authutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetClaims достаёт claims токена, положенного jwt middleware в Locals.
func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	user, ok := ctx.Locals("user").(*jwt.Token)
	if !ok || user == nil {
		return jwt.MapClaims{}
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
