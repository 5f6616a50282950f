package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/taller-pro/backoffice-api/pkg/logger"
)

func TestNew_NivelPorEntorno(t *testing.T) {
	dev := logger.New(logger.Config{Env: "development"})
	assert.Equal(t, zerolog.DebugLevel, dev.Zerolog().GetLevel(),
		"development debe loguear desde debug")

	prod := logger.New(logger.Config{Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, prod.Zerolog().GetLevel(),
		"fuera de development el nivel por defecto es info")
}

func TestNew_LevelExplicitoMandaSobreElEntorno(t *testing.T) {
	l := logger.New(logger.Config{Env: "development", Level: "error"})
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())

	// Nivel desconocido cae al derivado del entorno.
	l = logger.New(logger.Config{Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
