package config_test

import (
	"testing"

	"pinboard/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SESSION_TTL_HOURS", "not-a-number")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := config.Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 336, cfg.SessionTTLHours)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "8080", cfg.ServerPort)
}
