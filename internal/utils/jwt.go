package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"citasalud/internal/models"
)

// VigenciaToken es la vida útil de un token de acceso.
const VigenciaToken = 8 * time.Hour

func CrearToken(secreto []byte, id int, nombre string, rol models.Rol) (string, error) {
	ahora := time.Now()
	claims := models.Claims{
		IDUsuario: id,
		Nombre:    nombre,
		Rol:       rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(VigenciaToken)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secreto)
}

func ValidarToken(secreto []byte, tokenStr string) (*models.Claims, error) {
	claims := new(models.Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secreto, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || !claims.Rol.Valida() {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
