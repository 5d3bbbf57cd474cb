package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"citasalud/internal/config"
	"citasalud/internal/models"
)

var cfgPrueba = &config.Config{JWTSecret: []byte("secreto-de-prueba")}

func handlerPrueba(db *fakeDB) *Handler {
	return New(db, cfgPrueba, zerolog.Nop())
}

// conClaims simula lo que deja el middleware JWT en el contexto.
func conClaims(id int, rol models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("claims", &models.Claims{IDUsuario: id, Nombre: "Prueba", Rol: rol})
		return c.Next()
	}
}

func hacerPeticion(t *testing.T, app *fiber.App, metodo, ruta string, cuerpo any) *http.Response {
	t.Helper()

	var lector io.Reader
	if cuerpo != nil {
		datos, err := json.Marshal(cuerpo)
		require.NoError(t, err)
		lector = bytes.NewReader(datos)
	}

	req := httptest.NewRequest(metodo, ruta, lector)
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodificar(t *testing.T, resp *http.Response, destino any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(destino))
	resp.Body.Close()
}
