package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/pkg/jwt"
)

// AuthHandler emite tokens de desarrollo. La autenticación real vive en el
// servicio de identidad del taller; este endpoint solo existe en development
// para probar la API sin ese servicio.
type AuthHandler struct {
	env        string
	secret     string
	issuer     string
	expMinutes int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(env, secret, issuer string, expMinutes int) *AuthHandler {
	return &AuthHandler{env: env, secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Token godoc
// @Summary      Emitir token de desarrollo
// @Description  Solo disponible con APP_ENV=development. user_id y role van en el body.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "user_id y role"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	if h.env != "development" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id y role son obligatorios"})
	}
	token, err := jwt.Generate(h.secret, in.UserID, in.Role, h.issuer, h.expMinutes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
