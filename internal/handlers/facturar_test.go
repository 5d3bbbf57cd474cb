package handlers

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citasalud/internal/models"
)

func appFacturar(db *fakeDB) *fiber.App {
	app := fiber.New()
	h := handlerPrueba(db)
	app.Post("/api/facturar", conClaims(1, models.RolPaciente), h.Facturar)
	return app
}

func TestFacturarCarritoVacio(t *testing.T) {
	db := &fakeDB{respuestas: []respuesta{
		{filas: nil}, // carrito sin entradas
	}}
	app := appFacturar(db)

	resp := hacerPeticion(t, app, "POST", "/api/facturar",
		models.FacturarSolicitud{Subtotal: 20, IVA: 3, Total: 23})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, db.commits)
	for _, sql := range db.sqlEjecutados() {
		assert.NotContains(t, sql, "INSERT INTO facturas", "no debe crear factura")
	}
}

func TestFacturarTotalesInconsistentes(t *testing.T) {
	db := &fakeDB{}
	app := appFacturar(db)

	resp := hacerPeticion(t, app, "POST", "/api/facturar",
		models.FacturarSolicitud{Subtotal: 20, IVA: 3, Total: 40})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, db.llamadas, "no debe tocar la base de datos")
}

func TestFacturarCreaFacturaCitasYLineas(t *testing.T) {
	db := &fakeDB{respuestas: []respuesta{
		{filas: [][]any{ // carrito con tres entradas
			{1, 3, "2024-05-01", 2},
			{2, 4, "2024-05-02", 1},
			{3, 3, "2024-05-03", 2},
		}},
		{filas: [][]any{{10}}}, // factura
		{filas: [][]any{{21}}}, // cita 1
		{tag: "INSERT 0 1"},    // línea 1
		{filas: [][]any{{22}}}, // cita 2
		{tag: "INSERT 0 1"},    // línea 2
		{filas: [][]any{{23}}}, // cita 3
		{tag: "INSERT 0 1"},    // línea 3
		{tag: "DELETE 3"},      // vaciar carrito
	}}
	app := appFacturar(db)

	resp := hacerPeticion(t, app, "POST", "/api/facturar",
		models.FacturarSolicitud{Subtotal: 20, IVA: 3, Total: 23})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var cuerpo struct {
		IDFactura int     `json:"id_factura"`
		Folio     string  `json:"folio"`
		Total     float64 `json:"total"`
		Citas     int     `json:"citas"`
	}
	decodificar(t, resp, &cuerpo)
	assert.Equal(t, 10, cuerpo.IDFactura)
	assert.NotEmpty(t, cuerpo.Folio)
	assert.Equal(t, 23.0, cuerpo.Total)
	assert.Equal(t, 3, cuerpo.Citas)

	assert.Equal(t, 1, db.commits)
	assert.Equal(t, 0, db.rollbacks)

	// Los precios repartidos entre las citas suman el subtotal.
	var suma float64
	var citas int
	for _, l := range db.llamadas {
		if strings.Contains(l.sql, "INSERT INTO citas") {
			precio, ok := l.args[4].(float64)
			require.True(t, ok)
			suma += precio
			citas++
		}
	}
	assert.Equal(t, 3, citas)
	assert.InDelta(t, 20.0, suma, 0.01)

	// La última llamada vacía el carrito.
	ultima := db.llamadas[len(db.llamadas)-1]
	assert.Contains(t, ultima.sql, "DELETE FROM carrito")
}

func TestFacturarHorarioConfirmadoPorOtroUsuario(t *testing.T) {
	// El par (fecha, horario) seguía libre al armar el carrito, pero otro
	// usuario lo facturó primero; la restricción única de citas tumba
	// toda la factura con el mismo 400 del alta al carrito.
	db := &fakeDB{respuestas: []respuesta{
		{filas: [][]any{{1, 3, "2024-05-01", 2}}},
		{filas: [][]any{{10}}},                // factura
		{err: &pgconn.PgError{Code: "23505"}}, // la cita choca con una confirmada
	}}
	app := appFacturar(db)

	resp := hacerPeticion(t, app, "POST", "/api/facturar",
		models.FacturarSolicitud{Subtotal: 20, IVA: 3, Total: 23})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, db.commits)
	assert.Equal(t, 1, db.rollbacks)

	var cuerpo struct {
		Error string `json:"error"`
	}
	decodificar(t, resp, &cuerpo)
	assert.Equal(t, "El horario ya está ocupado", cuerpo.Error)
}

func TestFacturarFalloEnCitaRevierteTodo(t *testing.T) {
	db := &fakeDB{respuestas: []respuesta{
		{filas: [][]any{{1, 3, "2024-05-01", 2}, {2, 4, "2024-05-02", 1}}},
		{filas: [][]any{{10}}}, // factura
		{filas: [][]any{{21}}}, // cita 1
		{tag: "INSERT 0 1"},    // línea 1
		{err: assert.AnError},  // cita 2 falla
	}}
	app := appFacturar(db)

	resp := hacerPeticion(t, app, "POST", "/api/facturar",
		models.FacturarSolicitud{Subtotal: 20, IVA: 3, Total: 23})

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 0, db.commits)
	assert.Equal(t, 1, db.rollbacks)
}
