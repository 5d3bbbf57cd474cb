package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"citasalud/internal/config"
	"citasalud/internal/database"
)

// Handler agrupa las dependencias que antes eran variables globales.
type Handler struct {
	DB  database.Querier
	Cfg *config.Config
	Log zerolog.Logger

	validar *validator.Validate
}

func New(db database.Querier, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		DB:      db,
		Cfg:     cfg,
		Log:     log,
		validar: validator.New(),
	}
}

// errorInterno deja rastro del fallo y responde con un mensaje genérico.
func (h *Handler) errorInterno(c *fiber.Ctx, err error, mensaje string) error {
	h.Log.Error().Err(err).Str("ruta", c.Path()).Msg(mensaje)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": mensaje,
	})
}
