package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citasalud/internal/models"
)

func appSoporte(db *fakeDB) *fiber.App {
	app := fiber.New()
	h := handlerPrueba(db)
	app.Post("/api/soporte", conClaims(4, models.RolPaciente), h.CreateSoporte)
	app.Get("/api/admin/soporte", h.GetSoporte)
	return app
}

func TestCreateSoporte(t *testing.T) {
	db := &fakeDB{respuestas: []respuesta{{filas: [][]any{{1}}}}}
	app := appSoporte(db)

	resp := hacerPeticion(t, app, "POST", "/api/soporte",
		models.SoporteAlta{Asunto: "Duda", Mensaje: "¿Puedo cambiar mi cita?"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, db.llamadas, 1)
	assert.Equal(t, 4, db.llamadas[0].args[0], "guarda el usuario autenticado")
}

func TestCreateSoporteSinAsunto(t *testing.T) {
	db := &fakeDB{}
	app := appSoporte(db)

	resp := hacerPeticion(t, app, "POST", "/api/soporte",
		models.SoporteAlta{Mensaje: "sin asunto"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, db.llamadas)
}

func TestGetSoporteMasRecientePrimero(t *testing.T) {
	db := &fakeDB{respuestas: []respuesta{
		{filas: [][]any{
			{2, "otrouser", "Queja", "...", "2024-06-01T10:00:00Z"},
			{1, "anagarcia", "Duda", "...", "2024-05-01T09:00:00Z"},
		}},
	}}
	app := appSoporte(db)

	resp := hacerPeticion(t, app, "GET", "/api/admin/soporte", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, db.llamadas[0].sql, "ORDER BY s.fecha DESC")

	var mensajes []models.SoporteMensaje
	decodificar(t, resp, &mensajes)
	require.Len(t, mensajes, 2)
	assert.Equal(t, "Queja", mensajes[0].Asunto)
}
