package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"citasalud/internal/config"
	"citasalud/internal/database"
	"citasalud/internal/handlers"
	"citasalud/internal/middleware"
	"citasalud/internal/models"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// El .env es opcional en despliegue; las variables pueden venir del entorno.
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No se encontró archivo .env, usando el entorno del proceso")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuración incompleta")
	}

	pool, err := database.Conectar(cfg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("No se pudo conectar a PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("Conectado a PostgreSQL")

	h := handlers.New(pool, cfg, log)

	app := fiber.New()

	app.Use(middleware.Logger(log))
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Demasiadas solicitudes, intenta nuevamente más tarde.",
			})
		},
	}))

	app.Get("/salud", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"estado": "OK"})
	})

	// Rutas públicas
	app.Get("/api/usuarios/tipos-sangre", h.GetTiposSangre)
	app.Get("/api/patologias", h.GetPatologias)
	app.Get("/api/horarios", h.GetHorarios)
	app.Get("/api/precio-cita", h.GetPrecioCita)
	app.Get("/api/configuracion/iva", h.GetIVA)
	app.Post("/api/usuarios/registrar", h.Register)
	app.Get("/api/usuarios/existe/:usuario", h.ExisteUsuario)
	app.Post("/api/usuarios/login", h.Login)
	app.Get("/api/citas/ocupadas", h.GetCitasOcupadas)

	// Grupo de rutas protegidas (requieren JWT)
	api := app.Group("/api", middleware.JWTProtected(cfg.JWTSecret))

	api.Post("/carrito", h.AddCarrito)
	api.Get("/carrito", h.GetCarrito)
	api.Delete("/carrito/eliminar", h.DeleteCarrito)
	api.Get("/carrito/usuario", h.GetCarritoUsuario)
	api.Post("/facturar", h.Facturar)
	api.Post("/soporte", h.CreateSoporte)

	// Panel de administración: cada ruta declara el permiso que exige.
	admin := api.Group("/admin")

	gestionUsuarios := middleware.RequierePermiso(models.PermisoGestionUsuarios)
	admin.Get("/usuarios", gestionUsuarios, h.GetUsuarios)
	admin.Delete("/usuarios/:id", gestionUsuarios, h.DeleteUsuario)

	gestionCatalogo := middleware.RequierePermiso(models.PermisoGestionCatalogo)
	admin.Post("/patologias", gestionCatalogo, h.CreatePatologia)
	admin.Delete("/patologias/:id", gestionCatalogo, h.DeletePatologia)
	admin.Post("/horarios", gestionCatalogo, h.CreateHorario)
	admin.Delete("/horarios/:id", gestionCatalogo, h.DeleteHorario)
	admin.Put("/precio", gestionCatalogo, h.UpdatePrecioCita)
	admin.Put("/iva", gestionCatalogo, h.UpdateIVA)

	verReportes := middleware.RequierePermiso(models.PermisoVerReportes)
	admin.Get("/citas", verReportes, h.GetCitas)
	admin.Delete("/citas/:id", verReportes, h.DeleteCita)
	admin.Get("/facturas", verReportes, h.GetFacturas)
	admin.Get("/facturas/:id", verReportes, h.GetFactura)
	admin.Get("/facturas/:id/pdf", verReportes, h.GetFacturaPDF)
	admin.Get("/soporte", verReportes, h.GetSoporte)

	log.Info().Str("puerto", cfg.Puerto).Msg("Servidor iniciado")
	if err := app.Listen(":" + cfg.Puerto); err != nil {
		log.Fatal().Err(err).Msg("El servidor terminó con error")
	}
}
