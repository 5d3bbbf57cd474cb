package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"citasalud/internal/models"
)

func (h *Handler) GetPatologias(c *fiber.Ctx) error {
	rows, err := h.DB.Query(context.Background(), "SELECT id, nombre FROM patologias ORDER BY nombre")
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener patologías")
	}
	defer rows.Close()

	patologias := []models.Patologia{}
	for rows.Next() {
		var p models.Patologia
		if err := rows.Scan(&p.ID, &p.Nombre); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		patologias = append(patologias, p)
	}

	return c.JSON(patologias)
}

func (h *Handler) CreatePatologia(c *fiber.Ctx) error {
	var patologia models.Patologia
	if err := c.BodyParser(&patologia); err != nil || patologia.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	var id int
	err := h.DB.QueryRow(context.Background(),
		"INSERT INTO patologias (nombre) VALUES ($1) RETURNING id", patologia.Nombre).Scan(&id)
	if err != nil {
		return h.errorInterno(c, err, "Error al crear patología")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"mensaje": "Patología creada correctamente",
	})
}

func (h *Handler) DeletePatologia(c *fiber.Ctx) error {
	id := c.Params("id")

	tag, err := h.DB.Exec(context.Background(), "DELETE FROM patologias WHERE id=$1", id)
	if err != nil {
		return h.errorInterno(c, err, "Error al eliminar patología")
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patología no encontrada"})
	}

	return c.JSON(fiber.Map{"mensaje": "Patología eliminada correctamente"})
}

func (h *Handler) GetHorarios(c *fiber.Ctx) error {
	rows, err := h.DB.Query(context.Background(), "SELECT id, hora FROM horarios ORDER BY hora")
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener horarios")
	}
	defer rows.Close()

	horarios := []models.Horario{}
	for rows.Next() {
		var hr models.Horario
		if err := rows.Scan(&hr.ID, &hr.Hora); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		horarios = append(horarios, hr)
	}

	return c.JSON(horarios)
}

func (h *Handler) CreateHorario(c *fiber.Ctx) error {
	var horario models.Horario
	if err := c.BodyParser(&horario); err != nil || horario.Hora == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	var id int
	err := h.DB.QueryRow(context.Background(),
		"INSERT INTO horarios (hora) VALUES ($1) RETURNING id", horario.Hora).Scan(&id)
	if err != nil {
		return h.errorInterno(c, err, "Error al crear horario")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"mensaje": "Horario creado correctamente",
	})
}

func (h *Handler) DeleteHorario(c *fiber.Ctx) error {
	id := c.Params("id")

	tag, err := h.DB.Exec(context.Background(), "DELETE FROM horarios WHERE id=$1", id)
	if err != nil {
		return h.errorInterno(c, err, "Error al eliminar horario")
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horario no encontrado"})
	}

	return c.JSON(fiber.Map{"mensaje": "Horario eliminado correctamente"})
}
