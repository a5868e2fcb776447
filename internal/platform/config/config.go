package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Persistence drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// DevJWTSigningKey is the default signing key. It is public, so serve refuses it.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Config is the full runtime configuration.
type Config struct {
	Server      Server      `mapstructure:"server"`
	Log         Log         `mapstructure:"log"`
	Auth        Auth        `mapstructure:"auth"`
	Registry    Registry    `mapstructure:"registry"`
	Persistence Persistence `mapstructure:"persistence"`
	Audit       Audit       `mapstructure:"audit"`
}

// Server captures HTTP listener configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Log struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// Auth configures bearer token validation.
type Auth struct {
	JWTSigningKey string        `mapstructure:"jwt_signing_key"`
	JWTIssuer     string        `mapstructure:"jwt_issuer"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

// Registry holds registry bootstrap values.
type Registry struct {
	// InitialAuthority is the certification authority installed when no
	// persisted authority exists.
	InitialAuthority string `mapstructure:"initial_authority"`
}

// Persistence selects the snapshot backend.
type Persistence struct {
	Driver   string      `mapstructure:"driver"`
	SQLite   SQLite      `mapstructure:"sqlite"`
	Postgres Postgres    `mapstructure:"postgres"`
	Redis    RedisConfig `mapstructure:"redis"`
	S3       S3          `mapstructure:"s3"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Postgres struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig mirrors the go-redis pool options we expose.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type S3 struct {
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// Audit configures where audit events go. Without brokers events stay in memory.
type Audit struct {
	Brokers    []string `mapstructure:"brokers"`
	Topic      string   `mapstructure:"topic"`
	BufferSize int      `mapstructure:"buffer_size"`
	// FailureThreshold is how many consecutive produce failures switch
	// events to the local fallback.
	FailureThreshold int `mapstructure:"failure_threshold"`
}

// Defaults returns the default value for every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":             ":8080",
		"server.metrics_addr":     ":9090",
		"server.shutdown_timeout": 10 * time.Second,

		"log.format": "json",
		"log.level":  "info",

		"auth.jwt_signing_key": DevJWTSigningKey,
		"auth.jwt_issuer":      "medsim",
		"auth.token_ttl":       time.Hour,

		"registry.initial_authority": "",

		"persistence.driver":               DriverMemory,
		"persistence.sqlite.path":          "./medsim.db",
		"persistence.postgres.dsn":         "",
		"persistence.redis.url":            "",
		"persistence.redis.pool_size":      10,
		"persistence.redis.min_idle_conns": 2,
		"persistence.redis.dial_timeout":   5 * time.Second,
		"persistence.redis.read_timeout":   3 * time.Second,
		"persistence.redis.write_timeout":  3 * time.Second,
		"persistence.s3.bucket":            "",
		"persistence.s3.prefix":            "medsim",
		"persistence.s3.region":            "us-east-1",
		"persistence.s3.endpoint":          "",
		"persistence.s3.use_path_style":    false,

		"audit.brokers":           []string{},
		"audit.topic":             "medsim.audit",
		"audit.buffer_size":       256,
		"audit.failure_threshold": 5,
	}
}

// Load reads configuration from defaults, an optional medsim.yaml, MEDSIM_*
// environment variables and bound flags, in increasing precedence.
// configFile, when non-empty, replaces the search path lookup.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("medsim")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/medsim")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; anything else is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("medsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return c, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks cross-field requirements of the selected backends.
func (c Config) Validate() error {
	switch c.Persistence.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Persistence.SQLite.Path == "" {
			return errors.New("persistence.sqlite.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Persistence.Postgres.DSN == "" {
			return errors.New("persistence.postgres.dsn is required for the postgres driver")
		}
	case DriverRedis:
		if c.Persistence.Redis.URL == "" {
			return errors.New("persistence.redis.url is required for the redis driver")
		}
	case DriverS3:
		if c.Persistence.S3.Bucket == "" {
			return errors.New("persistence.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown persistence driver %q", c.Persistence.Driver)
	}
	if c.Auth.JWTSigningKey == "" {
		return errors.New("auth.jwt_signing_key is required")
	}
	if len(c.Audit.Brokers) > 0 && c.Audit.Topic == "" {
		return errors.New("audit.topic is required when audit.brokers is set")
	}
	return nil
}

// ValidateServe adds the checks that only matter when accepting tokens
// from the network.
func (c Config) ValidateServe() error {
	if c.Auth.JWTSigningKey == DevJWTSigningKey {
		return errors.New("auth.jwt_signing_key is still the built-in development key; set MEDSIM_AUTH_JWT_SIGNING_KEY or auth.jwt_signing_key")
	}
	return nil
}
