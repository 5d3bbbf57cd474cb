package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"citasalud/internal/models"
	"citasalud/internal/utils"
)

// Logger registra cada petición con método, ruta, estado y duración.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()
		log.Info().
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("estado", c.Response().StatusCode()).
			Dur("duracion", time.Since(inicio)).
			Msg("peticion")
		return err
	}
}

// JWTProtected valida el token del encabezado Authorization y deja los
// claims en c.Locals("claims"). Acepta "Bearer <token>" o el token a secas.
func JWTProtected(secreto []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token requerido"})
		}

		token := auth
		if partes := strings.SplitN(auth, " ", 2); len(partes) == 2 && partes[0] == "Bearer" {
			token = partes[1]
		}

		claims, err := utils.ValidarToken(secreto, token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token inválido"})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequierePermiso corta con 403 si el rol del token no tiene el permiso.
func RequierePermiso(p models.Permiso) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.Claims)
		if !ok || !claims.Rol.Puede(p) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Acceso denegado: permisos insuficientes",
			})
		}
		return c.Next()
	}
}

// ClaimsDe recupera los claims que dejó JWTProtected.
func ClaimsDe(c *fiber.Ctx) *models.Claims {
	claims, _ := c.Locals("claims").(*models.Claims)
	return claims
}
