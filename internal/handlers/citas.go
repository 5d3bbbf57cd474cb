package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"citasalud/internal/models"
)

func (h *Handler) GetCitas(c *fiber.Ctx) error {
	query := `SELECT ci.id, u.usuario, p.nombre, ci.fecha, hr.hora, ci.precio
	          FROM citas ci
	          JOIN usuarios u ON ci.id_usuario = u.id
	          JOIN patologias p ON ci.id_patologia = p.id
	          JOIN horarios hr ON ci.id_horario = hr.id
	          ORDER BY ci.fecha, hr.hora`

	rows, err := h.DB.Query(context.Background(), query)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener citas")
	}
	defer rows.Close()

	citas := []models.Cita{}
	for rows.Next() {
		var ci models.Cita
		if err := rows.Scan(&ci.ID, &ci.Usuario, &ci.Patologia, &ci.Fecha, &ci.Hora, &ci.Precio); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		citas = append(citas, ci)
	}

	return c.JSON(fiber.Map{
		"data":  citas,
		"count": len(citas),
	})
}

func (h *Handler) DeleteCita(c *fiber.Ctx) error {
	id := c.Params("id")

	tag, err := h.DB.Exec(context.Background(), "DELETE FROM citas WHERE id=$1", id)
	if err != nil {
		return h.errorInterno(c, err, "Error al eliminar cita")
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cita no encontrada"})
	}

	return c.JSON(fiber.Map{"mensaje": "Cita eliminada correctamente"})
}
