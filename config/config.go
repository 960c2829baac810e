package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/alloy/pkg/cache"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/tracing"
	"github.com/Ramsey-B/alloy/pkg/tracing/exporters"
)

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"alloy-api" validate:"required"`
	Port                          int      `env:"PORT" env-default:"8080" validate:"min=1,max=65535"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5" validate:"min=1"`

	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"sqlite" validate:"oneof=postgres sqlite"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"alloy"`
	DatabaseSSLMode               string        `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseSQLitePath            string        `env:"DB_SQLITE_PATH" env-default:"alloy.db" validate:"required_if=DatabaseDriver sqlite"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:""`
	DatabaseMigrationVersion      uint          `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce        int           `env:"DB_MIGRATION_FORCE" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Dataset location: embedded, dir or s3
	DatasetSource      string `env:"DATASET_SOURCE" env-default:"embedded" validate:"oneof=embedded dir s3"`
	DatasetDir         string `env:"DATASET_DIR" env-default:"" validate:"required_if=DatasetSource dir"`
	DatasetS3Bucket    string `env:"DATASET_S3_BUCKET" env-default:"" validate:"required_if=DatasetSource s3"`
	DatasetS3Prefix    string `env:"DATASET_S3_PREFIX" env-default:"dataset"`
	DatasetS3Region    string `env:"DATASET_S3_REGION" env-default:"us-east-1"`
	DatasetS3Endpoint  string `env:"DATASET_S3_ENDPOINT" env-default:""`
	DatasetS3PathStyle bool   `env:"DATASET_S3_PATH_STYLE" env-default:"false"`
	DatasetS3AccessKey string `env:"DATASET_S3_ACCESS_KEY" env-default:""`
	DatasetS3SecretKey string `env:"DATASET_S3_SECRET_KEY" env-default:""`

	// Response cache, disabled unless REDIS_ENABLED is set
	RedisEnabled  bool          `env:"REDIS_ENABLED" env-default:"false"`
	RedisHost     string        `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`

	// Auth
	AuthEnabled   bool   `env:"AUTH_ENABLED" env-default:"false"`
	AuthIssuerURL string `env:"AUTH_ISSUER_URL" env-default:"" validate:"required_if=AuthEnabled true"`
	AuthClientID  string `env:"AUTH_CLIENT_ID" env-default:""`

	// Tracing
	TracingExporter    string            `env:"TRACING_EXPORTER" env-default:"" validate:"omitempty,oneof=otlp console"`
	TracingEndpoint    string            `env:"TRACING_ENDPOINT" env-default:"localhost:4317"`
	TracingProtocol    string            `env:"TRACING_PROTOCOL" env-default:"grpc" validate:"oneof=grpc http"`
	TracingInsecure    bool              `env:"TRACING_INSECURE" env-default:"true"`
	TracingTimeout     time.Duration     `env:"TRACING_TIMEOUT" env-default:"10s"`
	TracingSampleRatio float64           `env:"TRACING_SAMPLE_RATIO" env-default:"1"`
	TracingHeaders     map[string]string `env:"TRACING_HEADERS"` // comma separated key:value pairs
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	} else {
		// a missing .env is normal outside local development
		_ = godotenv.Load()
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// DatabaseConfig returns the settings needed to open the store.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:          c.DatabaseDriver,
		Host:            c.DatabaseHost,
		Port:            c.DatabasePort,
		UserName:        c.DatabaseUserName,
		Password:        c.DatabasePassword,
		Name:            c.DatabaseName,
		SSLMode:         c.DatabaseSSLMode,
		SQLitePath:      c.DatabaseSQLitePath,
		MaxOpenConns:    c.DatabaseMaxOpenConns,
		MaxIdleConns:    c.DatabaseMaxIdleConns,
		ConnMaxLifetime: c.DatabaseConnMaxLifetime,
	}
}

func (c *Config) MigrationConfig() *database.MigrationConfig {
	return &database.MigrationConfig{
		MigrationFolderPath: c.DatabaseMigrationFolderPath,
		Version:             c.DatabaseMigrationVersion,
		Force:               c.DatabaseMigrationForce,
		AutoRollback:        c.DatabaseMigrationAutoRollback,
	}
}

func (c *Config) TracingConfig() tracing.Config {
	return tracing.Config{
		ServiceName: c.AppName,
		Exporter:    c.TracingExporter,
		SampleRatio: c.TracingSampleRatio,
		OTLP: exporters.OTLPConfig{
			Endpoint: c.TracingEndpoint,
			Protocol: c.TracingProtocol,
			Insecure: c.TracingInsecure,
			Timeout:  c.TracingTimeout,
			Headers:  c.TracingHeaders,
		},
	}
}

func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Kind: c.DatasetSource,
		Dir:  c.DatasetDir,
		S3: dataset.S3Config{
			Region:          c.DatasetS3Region,
			Bucket:          c.DatasetS3Bucket,
			Prefix:          c.DatasetS3Prefix,
			Endpoint:        c.DatasetS3Endpoint,
			AccessKeyID:     c.DatasetS3AccessKey,
			SecretAccessKey: c.DatasetS3SecretKey,
			PathStyle:       c.DatasetS3PathStyle,
		},
	}
}

// CacheConfig keys every entry by the app name.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Prefix:   c.AppName + ":",
	}
}
