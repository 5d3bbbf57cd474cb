package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"citasalud/internal/facturacion"
	"citasalud/internal/middleware"
	"citasalud/internal/models"
)

type entradaCarrito struct {
	ID          int
	IDPatologia int
	Fecha       string
	IDHorario   int
}

// Facturar convierte el carrito del usuario en una factura con sus citas
// confirmadas. Todo corre en una transacción: o se crea la factura con
// todas sus citas y líneas y se vacía el carrito, o no queda nada.
func (h *Handler) Facturar(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	var sol models.FacturarSolicitud
	if err := c.BodyParser(&sol); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.validar.Struct(&sol); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos: " + err.Error()})
	}
	if !facturacion.TotalesConsistentes(sol.Subtotal, sol.IVA, sol.Total) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Los totales no cuadran"})
	}

	ctx := context.Background()
	tx, err := h.DB.Begin(ctx)
	if err != nil {
		return h.errorInterno(c, err, "Error al iniciar transacción")
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		"SELECT id, id_patologia, fecha, id_horario FROM carrito WHERE id_usuario=$1",
		claims.IDUsuario)
	if err != nil {
		return h.errorInterno(c, err, "Error al leer el carrito")
	}

	var entradas []entradaCarrito
	for rows.Next() {
		var e entradaCarrito
		if err := rows.Scan(&e.ID, &e.IDPatologia, &e.Fecha, &e.IDHorario); err != nil {
			rows.Close()
			return h.errorInterno(c, err, "Error al procesar el carrito")
		}
		entradas = append(entradas, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return h.errorInterno(c, err, "Error al leer el carrito")
	}

	if len(entradas) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El carrito está vacío"})
	}

	precios, err := facturacion.RepartirSubtotal(sol.Subtotal, len(entradas))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	folio := uuid.NewString()
	var idFactura int
	err = tx.QueryRow(ctx,
		`INSERT INTO facturas (folio, id_usuario, fecha, subtotal, iva, total)
		 VALUES ($1, $2, CURRENT_DATE, $3, $4, $5) RETURNING id`,
		folio, claims.IDUsuario, sol.Subtotal, sol.IVA, sol.Total).Scan(&idFactura)
	if err != nil {
		return h.errorInterno(c, err, "Error al crear la factura")
	}

	for i, e := range entradas {
		var idCita int
		err = tx.QueryRow(ctx,
			`INSERT INTO citas (id_usuario, id_patologia, fecha, id_horario, precio)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			claims.IDUsuario, e.IDPatologia, e.Fecha, e.IDHorario, precios[i]).Scan(&idCita)
		if err != nil {
			// Otro usuario confirmó el mismo (fecha, horario) antes;
			// la restricción única de citas revierte toda la factura.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "El horario ya está ocupado",
				})
			}
			return h.errorInterno(c, err, "Error al confirmar la cita")
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO factura_citas (id_factura, id_cita) VALUES ($1, $2)",
			idFactura, idCita)
		if err != nil {
			return h.errorInterno(c, err, "Error al registrar la línea de factura")
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM carrito WHERE id_usuario=$1", claims.IDUsuario); err != nil {
		return h.errorInterno(c, err, "Error al vaciar el carrito")
	}

	if err := tx.Commit(ctx); err != nil {
		return h.errorInterno(c, err, "Error al confirmar la factura")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje":    "Factura generada correctamente",
		"id_factura": idFactura,
		"folio":      folio,
		"total":      sol.Total,
		"citas":      len(entradas),
	})
}
