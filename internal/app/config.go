package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/akademus/akademus-api/internal/data/db"
	"github.com/akademus/akademus-api/internal/observability"
	"github.com/akademus/akademus-api/internal/platform/envutil"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/services"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	devJWTSecret = "akademus-dev-secret"
)

type Config struct {
	Port    string
	Env     string
	Version string
	LogMode string

	DB db.Config

	JWTSecret    string
	JWTIssuer    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	CORSOrigins []string

	RedisAddr               string
	RedisPassword           string
	RateLimitAuthPerMinute  int
	RateLimitWritePerMinute int

	Otel observability.OtelConfig

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	ShutdownTimeout  time.Duration
}

// fileConfig is the optional YAML file named by AKADEMUS_CONFIG. Its values
// become defaults; environment variables still win.
type fileConfig struct {
	Port    string `yaml:"port"`
	Env     string `yaml:"env"`
	Version string `yaml:"version"`

	Database struct {
		Driver          string `yaml:"driver"`
		URL             string `yaml:"url"`
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		SSLMode         string `yaml:"sslmode"`
		SQLitePath      string `yaml:"sqlite_path"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	JWT struct {
		Secret    string `yaml:"secret"`
		Issuer    string `yaml:"issuer"`
		ExpiresIn string `yaml:"expires_in"`
	} `yaml:"jwt"`
	BcryptCost int `yaml:"bcrypt_cost"`

	CORSOrigins []string `yaml:"cors_origins"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
	RateLimit struct {
		AuthPerMinute  *int `yaml:"auth_per_minute"`
		WritePerMinute *int `yaml:"write_per_minute"`
	} `yaml:"rate_limit"`

	Otel struct {
		Enabled     bool     `yaml:"enabled"`
		Exporter    string   `yaml:"exporter"`
		Endpoint    string   `yaml:"endpoint"`
		Insecure    bool     `yaml:"insecure"`
		SampleRatio *float64 `yaml:"sample_ratio"`
	} `yaml:"otel"`

	HTTP struct {
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"http"`
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set are not overridden.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func readConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func LoadConfig(log *logger.Logger) (Config, error) {
	fc, err := readConfigFile(os.Getenv("AKADEMUS_CONFIG"))
	if err != nil {
		return Config{}, err
	}

	env := strings.ToLower(envutil.String("APP_ENV", or(fc.Env, EnvDevelopment)))
	cfg := Config{
		Port:    envutil.String("PORT", or(fc.Port, "3000")),
		Env:     env,
		Version: envutil.String("APP_VERSION", or(fc.Version, "dev")),
		LogMode: envutil.String("LOG_MODE", logModeFor(env)),

		DB: db.Config{
			Driver: envutil.String("DB_DRIVER", or(fc.Database.Driver, db.DriverPostgres)),
			Postgres: db.PostgresConfig{
				URL:      envutil.String("DATABASE_URL", fc.Database.URL),
				Host:     envutil.String("POSTGRES_HOST", or(fc.Database.Host, "localhost")),
				Port:     envutil.String("POSTGRES_PORT", or(fc.Database.Port, "5432")),
				User:     envutil.String("POSTGRES_USER", or(fc.Database.User, "postgres")),
				Password: envutil.String("POSTGRES_PASSWORD", fc.Database.Password),
				Name:     envutil.String("POSTGRES_NAME", or(fc.Database.Name, "akademus")),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", fc.Database.SSLMode),
			},
			SQLitePath:      envutil.String("SQLITE_PATH", fc.Database.SQLitePath),
			MaxOpenConns:    envutil.Int("DB_MAX_OPEN_CONNS", orInt(fc.Database.MaxOpenConns, 25)),
			MaxIdleConns:    envutil.Int("DB_MAX_IDLE_CONNS", orInt(fc.Database.MaxIdleConns, 5)),
			ConnMaxLifetime: envutil.Duration("DB_CONN_MAX_LIFETIME", orDuration(fc.Database.ConnMaxLifetime, 30*time.Minute)),
			SlowThreshold:   envutil.Duration("DB_SLOW_THRESHOLD", 200*time.Millisecond),
		},

		JWTSecret:    envutil.String("JWT_SECRET", fc.JWT.Secret),
		JWTIssuer:    envutil.String("JWT_ISSUER", or(fc.JWT.Issuer, "akademus-api")),
		JWTExpiresIn: envutil.Duration("JWT_EXPIRES_IN", orDuration(fc.JWT.ExpiresIn, 24*time.Hour)),
		BcryptCost:   envutil.Int("BCRYPT_COST", orInt(fc.BcryptCost, services.DefaultBcryptCost)),

		CORSOrigins: envutil.List("CORS_ORIGINS", fc.CORSOrigins),

		RedisAddr:               envutil.String("REDIS_ADDR", fc.Redis.Addr),
		RedisPassword:           envutil.String("REDIS_PASSWORD", fc.Redis.Password),
		RateLimitAuthPerMinute:  envutil.Int("RATE_LIMIT_AUTH_PER_MINUTE", orIntPtr(fc.RateLimit.AuthPerMinute, 10)),
		RateLimitWritePerMinute: envutil.Int("RATE_LIMIT_WRITE_PER_MINUTE", orIntPtr(fc.RateLimit.WritePerMinute, 60)),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", fc.Otel.Enabled),
			ServiceName: "akademus-api",
			Environment: env,
			Exporter:    envutil.String("OTEL_EXPORTER", or(fc.Otel.Exporter, observability.ExporterStdout)),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", fc.Otel.Endpoint),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", fc.Otel.Insecure),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", orFloatPtr(fc.Otel.SampleRatio, 0.1)),
		},

		HTTPReadTimeout:  envutil.Duration("HTTP_READ_TIMEOUT", orDuration(fc.HTTP.ReadTimeout, 15*time.Second)),
		HTTPWriteTimeout: envutil.Duration("HTTP_WRITE_TIMEOUT", orDuration(fc.HTTP.WriteTimeout, 15*time.Second)),
		ShutdownTimeout:  envutil.Duration("SHUTDOWN_TIMEOUT", orDuration(fc.HTTP.ShutdownTimeout, 10*time.Second)),
	}
	cfg.Otel.Version = cfg.Version

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, using the development secret", "env", cfg.Env)
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	if c.Env == EnvProduction && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func logModeFor(env string) string {
	switch env {
	case EnvProduction:
		return "production"
	case EnvTest:
		return "test"
	default:
		return "development"
	}
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orIntPtr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orFloatPtr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orDuration(v string, def time.Duration) time.Duration {
	if d, ok := envutil.ParseDuration(v); ok {
		return d
	}
	return def
}
