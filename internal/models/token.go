package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	IDUsuario int    `json:"id_usuario"`
	Nombre    string `json:"nombre"`
	Rol       Rol    `json:"rol"`
	jwt.RegisteredClaims
}
