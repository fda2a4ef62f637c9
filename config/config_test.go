package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najino/Cooko-application-api/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "cooko", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "cooko-uploads", cfg.MinioBucket)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("MINIO_BUCKET_NAME", "test-bucket")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "test-bucket", cfg.MinioBucket)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestValidateConfig(t *testing.T) {
	valid := &config.Config{
		ServerPort:  "3000",
		DBHost:      "localhost",
		DBPort:      "5432",
		DBUser:      "postgres",
		DBName:      "cooko",
		MinioBucket: "uploads",
	}
	assert.NoError(t, config.ValidateConfig(valid))

	missingBucket := *valid
	missingBucket.MinioBucket = ""
	assert.Error(t, config.ValidateConfig(&missingBucket))

	missingDB := *valid
	missingDB.DBName = ""
	assert.Error(t, config.ValidateConfig(&missingDB))
}
