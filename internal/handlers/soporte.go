package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"citasalud/internal/middleware"
	"citasalud/internal/models"
)

func (h *Handler) CreateSoporte(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	var alta models.SoporteAlta
	if err := c.BodyParser(&alta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.validar.Struct(&alta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos: " + err.Error()})
	}

	var id int
	err := h.DB.QueryRow(context.Background(),
		`INSERT INTO soporte (id_usuario, asunto, mensaje, fecha)
		 VALUES ($1, $2, $3, NOW()) RETURNING id`,
		claims.IDUsuario, alta.Asunto, alta.Mensaje).Scan(&id)
	if err != nil {
		return h.errorInterno(c, err, "Error al enviar el mensaje")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"mensaje": "Mensaje enviado correctamente",
	})
}

func (h *Handler) GetSoporte(c *fiber.Ctx) error {
	query := `SELECT s.id, u.usuario, s.asunto, s.mensaje, s.fecha
	          FROM soporte s
	          JOIN usuarios u ON s.id_usuario = u.id
	          ORDER BY s.fecha DESC`

	rows, err := h.DB.Query(context.Background(), query)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener mensajes de soporte")
	}
	defer rows.Close()

	mensajes := []models.SoporteMensaje{}
	for rows.Next() {
		var m models.SoporteMensaje
		if err := rows.Scan(&m.ID, &m.Usuario, &m.Asunto, &m.Mensaje, &m.Fecha); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		mensajes = append(mensajes, m)
	}

	return c.JSON(mensajes)
}
