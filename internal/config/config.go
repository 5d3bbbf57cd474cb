package config

import (
	"errors"
	"os"
)

// Config agrupa todo lo que antes vivía en variables globales:
// credenciales de base de datos, clave de firma y puerto.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret []byte
	Puerto    string
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DBUser:     os.Getenv("user"),
		DBPassword: os.Getenv("password"),
		DBHost:     os.Getenv("host"),
		DBPort:     os.Getenv("port"),
		DBName:     os.Getenv("dbname"),
		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		Puerto:     os.Getenv("PORT"),
	}

	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
		return nil, errors.New("faltan variables de entorno de la base de datos (user, host, dbname)")
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("falta la variable de entorno JWT_SECRET")
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.Puerto == "" {
		cfg.Puerto = "3000"
	}

	return cfg, nil
}

// ConnString arma la cadena de conexión de PostgreSQL.
func (c *Config) ConnString() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=require"
}
