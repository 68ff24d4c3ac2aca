package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "itou-backend/lib/utils/auth-utils"
	"itou-backend/models"
	apimodels "itou-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserKind(ctx *fiber.Ctx) models.UserKind {
	claims := authutils.GetClaims(ctx)
	if kind, exist := claims["kind"]; exist {
		if stringKind, ok := kind.(string); ok && stringKind != "" {
			return models.UserKind(stringKind)
		}
	}
	return ""
}

func LaborInspectorRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserKind(ctx) != models.UserKindLaborInspector {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("opération non autorisée"))
		}
		return ctx.Next()
	}
}

func EmployerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserKind(ctx) != models.UserKindEmployer {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("opération non autorisée"))
		}
		return ctx.Next()
	}
}
