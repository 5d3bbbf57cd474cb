package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Claves del almacén de configuración.
const (
	ClavePrecioCita = "precio_cita"
	ClaveIVA        = "iva"
)

func (h *Handler) leerConfiguracion(c *fiber.Ctx, clave string) error {
	var valor float64
	err := h.DB.QueryRow(context.Background(),
		"SELECT valor FROM configuracion WHERE clave=$1", clave).Scan(&valor)

	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Configuración no encontrada"})
	}
	if err != nil {
		return h.errorInterno(c, err, "Error al leer configuración")
	}

	return c.JSON(fiber.Map{clave: valor})
}

func (h *Handler) actualizarConfiguracion(c *fiber.Ctx, clave string) error {
	var cuerpo struct {
		Valor float64 `json:"valor"`
	}
	if err := c.BodyParser(&cuerpo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if cuerpo.Valor < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El valor no puede ser negativo"})
	}

	query := `INSERT INTO configuracion (clave, valor) VALUES ($1, $2)
	          ON CONFLICT (clave) DO UPDATE SET valor = EXCLUDED.valor`
	if _, err := h.DB.Exec(context.Background(), query, clave, cuerpo.Valor); err != nil {
		return h.errorInterno(c, err, "Error al actualizar configuración")
	}

	return c.JSON(fiber.Map{"mensaje": "Configuración actualizada correctamente"})
}

// GetPrecioCita es público: el cliente lo necesita para armar el carrito.
func (h *Handler) GetPrecioCita(c *fiber.Ctx) error {
	return h.leerConfiguracion(c, ClavePrecioCita)
}

// GetIVA es público: el cliente calcula los totales antes de facturar.
func (h *Handler) GetIVA(c *fiber.Ctx) error {
	return h.leerConfiguracion(c, ClaveIVA)
}

func (h *Handler) UpdatePrecioCita(c *fiber.Ctx) error {
	return h.actualizarConfiguracion(c, ClavePrecioCita)
}

func (h *Handler) UpdateIVA(c *fiber.Ctx) error {
	return h.actualizarConfiguracion(c, ClaveIVA)
}
