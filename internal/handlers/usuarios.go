package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"citasalud/internal/models"
	"citasalud/internal/utils"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	u := new(models.UsuarioRegistro)
	if err := c.BodyParser(u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.validar.Struct(u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos: " + err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return h.errorInterno(c, err, "Error al procesar la contraseña")
	}

	query := `INSERT INTO usuarios
	          (nombres, apellidos, telefono, correo, fecha_nacimiento, id_tipo_sangre, usuario, password, rol)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int
	err = h.DB.QueryRow(context.Background(), query,
		u.Nombres, u.Apellidos, u.Telefono, u.Correo, u.FechaNacimiento,
		u.IDTipoSangre, u.Usuario, string(hash), models.RolPaciente).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El usuario ya existe"})
		}
		return h.errorInterno(c, err, "Error al registrar usuario")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"mensaje": "Usuario registrado correctamente",
	})
}

// ExisteUsuario responde si el nombre de usuario ya está tomado; es público
// para que el registro pueda avisar en tiempo real.
func (h *Handler) ExisteUsuario(c *fiber.Ctx) error {
	usuario := c.Params("usuario")

	var existe bool
	err := h.DB.QueryRow(context.Background(),
		"SELECT EXISTS(SELECT 1 FROM usuarios WHERE usuario=$1)", usuario).Scan(&existe)
	if err != nil {
		return h.errorInterno(c, err, "Error al consultar usuario")
	}

	return c.JSON(fiber.Map{"existe": existe})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	u := new(models.UsuarioLogin)
	if err := c.BodyParser(u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	var bd models.UsuarioBD
	query := `SELECT id, nombres, password, rol, COALESCE(totp_secret, '')
	          FROM usuarios WHERE usuario=$1`
	err := h.DB.QueryRow(context.Background(), query, u.Usuario).Scan(
		&bd.ID, &bd.Nombres, &bd.Password, &bd.Rol, &bd.TOTPSecret)

	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}
	if err != nil {
		return h.errorInterno(c, err, "Error al consultar usuario")
	}

	if bcrypt.CompareHashAndPassword([]byte(bd.Password), []byte(u.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Credenciales inválidas"})
	}

	// Las cuentas admin con segundo factor configurado deben presentar
	// el código TOTP vigente.
	if bd.Rol == models.RolAdmin && bd.TOTPSecret != "" {
		if !totp.Validate(u.Codigo, bd.TOTPSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Código de verificación inválido"})
		}
	}

	token, err := utils.CrearToken(h.Cfg.JWTSecret, bd.ID, bd.Nombres, bd.Rol)
	if err != nil {
		return h.errorInterno(c, err, "Error al generar token")
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"usuario": fiber.Map{"nombres": bd.Nombres},
	})
}

func (h *Handler) GetTiposSangre(c *fiber.Ctx) error {
	rows, err := h.DB.Query(context.Background(), "SELECT id, tipo FROM tipos_sangre ORDER BY id")
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener tipos de sangre")
	}
	defer rows.Close()

	tipos := []models.TipoSangre{}
	for rows.Next() {
		var t models.TipoSangre
		if err := rows.Scan(&t.ID, &t.Tipo); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		tipos = append(tipos, t)
	}

	return c.JSON(tipos)
}

func (h *Handler) GetUsuarios(c *fiber.Ctx) error {
	query := `SELECT id, nombres, correo, usuario, rol FROM usuarios ORDER BY id`

	rows, err := h.DB.Query(context.Background(), query)
	if err != nil {
		return h.errorInterno(c, err, "Error al obtener usuarios")
	}
	defer rows.Close()

	usuarios := []models.UsuarioListado{}
	for rows.Next() {
		var u models.UsuarioListado
		if err := rows.Scan(&u.ID, &u.Nombres, &u.Correo, &u.Usuario, &u.Rol); err != nil {
			return h.errorInterno(c, err, "Error al procesar los datos")
		}
		usuarios = append(usuarios, u)
	}

	return c.JSON(usuarios)
}

func (h *Handler) DeleteUsuario(c *fiber.Ctx) error {
	id := c.Params("id")

	tag, err := h.DB.Exec(context.Background(), "DELETE FROM usuarios WHERE id=$1", id)
	if err != nil {
		return h.errorInterno(c, err, "Error al eliminar usuario")
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	}

	return c.JSON(fiber.Map{"mensaje": "Usuario eliminado correctamente"})
}
