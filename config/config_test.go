package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "alloy-api", cfg.AppName)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "embedded", cfg.DatasetSource)
		assert.False(t, cfg.RedisEnabled)
		assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_NAME", "materials")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Port)
		db := cfg.DatabaseConfig()
		assert.Equal(t, "postgres", db.Driver)
		assert.Equal(t, "materials", db.Name)
	})

	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("APP_NAME=from-file\n"), 0o600))
		t.Setenv("ENV_FILE", path)
		t.Cleanup(func() { os.Unsetenv("APP_NAME") })

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.AppName)
	})

	t.Run("invalid driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("dir source requires a directory", func(t *testing.T) {
		t.Setenv("DATASET_SOURCE", "dir")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("s3 source requires a bucket", func(t *testing.T) {
		t.Setenv("DATASET_SOURCE", "s3")
		t.Setenv("DATASET_S3_BUCKET", "materials")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "materials", cfg.DatasetS3Bucket)
	})
}

func TestTracingConfig(t *testing.T) {
	cfg := &Config{AppName: "alloy", TracingExporter: "otlp", TracingProtocol: "http", TracingEndpoint: "collector:4318"}

	tc := cfg.TracingConfig()
	assert.Equal(t, "alloy", tc.ServiceName)
	assert.Equal(t, "http", tc.OTLP.Protocol)
	assert.Equal(t, "collector:4318", tc.OTLP.Endpoint)
}

func TestDerivedConfigs(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "s3")
	t.Setenv("DATASET_S3_BUCKET", "materials-ref")
	t.Setenv("DATASET_S3_PATH_STYLE", "true")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.DatasetOptions()
	assert.Equal(t, "s3", opts.Kind)
	assert.Equal(t, "materials-ref", opts.S3.Bucket)
	assert.Equal(t, "dataset", opts.S3.Prefix)
	assert.True(t, opts.S3.PathStyle)

	cc := cfg.CacheConfig()
	assert.Equal(t, 6380, cc.Port)
	assert.Equal(t, "alloy-api:", cc.Prefix)
}
