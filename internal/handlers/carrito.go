package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"citasalud/internal/middleware"
	"citasalud/internal/models"
)

// AddCarrito agrega una cita tentativa al carrito del usuario. Las
// verificaciones y el insert corren en una sola transacción, y la
// restricción única (id_usuario, fecha, id_horario) cierra la carrera
// entre dos altas simultáneas.
func (h *Handler) AddCarrito(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	var alta models.CarritoAlta
	if err := c.BodyParser(&alta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.validar.Struct(&alta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos: " + err.Error()})
	}

	ctx := context.Background()
	tx, err := h.DB.Begin(ctx)
	if err != nil {
		return h.errorInterno(c, err, "Error al iniciar transacción")
	}
	defer tx.Rollback(ctx)

	var enCarrito bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM carrito WHERE id_usuario=$1 AND fecha=$2 AND id_horario=$3)",
		claims.IDUsuario, alta.Fecha, alta.IDHorario).Scan(&enCarrito)
	if err != nil {
		return h.errorInterno(c, err, "Error al validar carrito")
	}
	if enCarrito {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La cita ya está en tu carrito"})
	}

	// Exclusividad global del horario: nadie puede reservar un par
	// (fecha, horario) ya confirmado como cita.
	var ocupado bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM citas WHERE fecha=$1 AND id_horario=$2)",
		alta.Fecha, alta.IDHorario).Scan(&ocupado)
	if err != nil {
		return h.errorInterno(c, err, "Error al validar disponibilidad")
	}
	if ocupado {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El horario ya está ocupado"})
	}

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO carrito (id_usuario, id_patologia, fecha, id_horario)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		claims.IDUsuario, alta.IDPatologia, alta.Fecha, alta.IDHorario).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La cita ya está en tu carrito"})
		}
		return h.errorInterno(c, err, "Error al agregar al carrito")
	}

	if err := tx.Commit(ctx); err != nil {
		return h.errorInterno(c, err, "Error al agregar al carrito")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"mensaje": "Cita agregada al carrito",
	})
}

func (h *Handler) GetCarrito(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	query := `SELECT ca.id, ca.id_patologia, p.nombre, ca.fecha, ca.id_horario, hr.hora
	          FROM carrito ca
	          JOIN patologias p ON ca.id_patologia = p.id
	          JOIN horarios hr ON ca.id_horario = hr.id
	          WHERE ca.id_usuario=$1`

	rows, err := h.DB.Query(context.Background(), query, claims.IDUsuario)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener el carrito")
	}
	defer rows.Close()

	entradas := []models.CarritoEntrada{}
	for rows.Next() {
		var e models.CarritoEntrada
		if err := rows.Scan(&e.ID, &e.IDPatologia, &e.Patologia, &e.Fecha, &e.IDHorario, &e.Hora); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		entradas = append(entradas, e)
	}

	return c.JSON(entradas)
}

// DeleteCarrito elimina una entrada por (fecha, hora); la hora llega como
// etiqueta y se resuelve contra la tabla de horarios.
func (h *Handler) DeleteCarrito(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	var baja models.CarritoBaja
	if err := c.BodyParser(&baja); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.validar.Struct(&baja); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos: " + err.Error()})
	}

	query := `DELETE FROM carrito
	          WHERE id_usuario=$1 AND fecha=$2
	            AND id_horario = (SELECT id FROM horarios WHERE hora=$3)`

	tag, err := h.DB.Exec(context.Background(), query, claims.IDUsuario, baja.Fecha, baja.Hora)
	if err != nil {
		return h.errorInterno(c, err, "Error al eliminar del carrito")
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "La cita no está en tu carrito"})
	}

	return c.JSON(fiber.Map{"mensaje": "Cita eliminada del carrito"})
}

// GetCitasOcupadas lista los pares (fecha, hora) ya confirmados; es público
// para que el calendario bloquee horarios sin sesión.
func (h *Handler) GetCitasOcupadas(c *fiber.Ctx) error {
	query := `SELECT ci.fecha, hr.hora
	          FROM citas ci
	          JOIN horarios hr ON ci.id_horario = hr.id`

	rows, err := h.DB.Query(context.Background(), query)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener citas ocupadas")
	}
	defer rows.Close()

	ocupados := []models.HorarioOcupado{}
	for rows.Next() {
		var o models.HorarioOcupado
		if err := rows.Scan(&o.Fecha, &o.Hora); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		ocupados = append(ocupados, o)
	}

	return c.JSON(ocupados)
}

// GetCarritoUsuario devuelve los pares (fecha, hora) del carrito del
// usuario autenticado, para el bloqueo temporal en el cliente.
func (h *Handler) GetCarritoUsuario(c *fiber.Ctx) error {
	claims := middleware.ClaimsDe(c)

	query := `SELECT ca.fecha, hr.hora
	          FROM carrito ca
	          JOIN horarios hr ON ca.id_horario = hr.id
	          WHERE ca.id_usuario=$1`

	rows, err := h.DB.Query(context.Background(), query, claims.IDUsuario)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener el carrito")
	}
	defer rows.Close()

	ocupados := []models.HorarioOcupado{}
	for rows.Next() {
		var o models.HorarioOcupado
		if err := rows.Scan(&o.Fecha, &o.Hora); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		ocupados = append(ocupados, o)
	}

	return c.JSON(ocupados)
}
