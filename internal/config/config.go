package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the dashboard service.
type Config struct {
	App        AppConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Scheduling SchedulingConfig
	Storage    StorageConfig
	Archive    ArchiveConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	MaxUploadBytes        int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. Redis is optional.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines basic-auth parameters.
type AuthConfig struct {
	BcryptCost               int
	AdminUsername            string
	AdminPassword            string
	CredentialCacheSize      int
	CredentialCacheTTLSecond int
	Realm                    string
}

// CredentialCacheTTL returns how long a verified credential is trusted without bcrypt.
func (a AuthConfig) CredentialCacheTTL() time.Duration {
	if a.CredentialCacheTTLSecond <= 0 {
		return 0
	}
	return time.Duration(a.CredentialCacheTTLSecond) * time.Second
}

// Sequence backends for synthesized employee/project identifiers.
const (
	SequenceStore = "store"
	SequenceRedis = "redis"
)

// SchedulingConfig controls assignment resolution.
type SchedulingConfig struct {
	StrictReferences bool
	IDSequence       string
}

// StorageConfig configures the in-memory backend used when Postgres is absent.
type StorageConfig struct {
	SeedFile string
}

// ArchiveConfig points at an optional S3-compatible bucket receiving export copies.
type ArchiveConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether export archiving was configured.
func (a ArchiveConfig) Enabled() bool {
	return strings.TrimSpace(a.Endpoint) != "" && strings.TrimSpace(a.Bucket) != ""
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	sequence := strings.ToLower(getEnv("ID_SEQUENCE", SequenceStore))
	if sequence != SequenceStore && sequence != SequenceRedis {
		return nil, fmt.Errorf("invalid ID_SEQUENCE %q: want %q or %q", sequence, SequenceStore, SequenceRedis)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "metropower-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			MaxUploadBytes:        getEnvAsInt("HTTP_MAX_UPLOAD_BYTES", 10<<20),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost:               getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AdminUsername:            getEnv("AUTH_ADMIN_USERNAME", "admin"),
			AdminPassword:            os.Getenv("AUTH_ADMIN_PASSWORD"),
			CredentialCacheSize:      getEnvAsInt("AUTH_CREDENTIAL_CACHE_SIZE", 256),
			CredentialCacheTTLSecond: getEnvAsInt("AUTH_CREDENTIAL_CACHE_TTL_SECONDS", 300),
			Realm:                    getEnv("AUTH_REALM", "MetroPower Dashboard"),
		},
		Scheduling: SchedulingConfig{
			StrictReferences: getEnvAsBool("SCHEDULING_STRICT_REFERENCES", true),
			IDSequence:       sequence,
		},
		Storage: StorageConfig{
			SeedFile: os.Getenv("SEED_FILE"),
		},
		Archive: ArchiveConfig{
			Endpoint:  os.Getenv("ARCHIVE_S3_ENDPOINT"),
			Region:    getEnv("ARCHIVE_S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("ARCHIVE_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("ARCHIVE_S3_SECRET_KEY"),
			Bucket:    os.Getenv("ARCHIVE_S3_BUCKET"),
			UseSSL:    getEnvAsBool("ARCHIVE_S3_USE_SSL", true),
			Prefix:    getEnv("ARCHIVE_S3_PREFIX", "exports"),
		},
	}

	if cfg.Scheduling.IDSequence == SequenceRedis && !cfg.Redis.Enabled() {
		return nil, fmt.Errorf("ID_SEQUENCE=redis requires REDIS_ADDR")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
