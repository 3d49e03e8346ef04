package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CRPTAPI_CLIENT_REQUEST_LIMIT
const EnvPrefix = "CRPTAPI"

type Config struct {
	Client   ClientConfig   `mapstructure:"client"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Receipts ReceiptsConfig `mapstructure:"receipts"`
}

type ClientConfig struct {
	URL            string        `mapstructure:"url" validate:"required,url"`
	TimeUnit       time.Duration `mapstructure:"time_unit" validate:"gt=0"`
	RequestLimit   int           `mapstructure:"request_limit" validate:"gt=0"`
	Interval       int64         `mapstructure:"interval" validate:"gt=0"`
	Policy         string        `mapstructure:"policy" validate:"oneof=window release"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	SmoothingRate  float64       `mapstructure:"smoothing_rate" validate:"gte=0"`
	SmoothingBurst int           `mapstructure:"smoothing_burst" validate:"gte=0"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ReceiptsConfig struct {
	// Backend is empty when receipts are not recorded
	Backend  string         `mapstructure:"backend" validate:"omitempty,oneof=memory redis postgres"`
	TTL      time.Duration  `mapstructure:"ttl" validate:"gte=0"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	PoolSize int    `mapstructure:"pool_size" validate:"gte=0"`
	Enabled  bool   `mapstructure:"-"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn" validate:"required_if=Enabled true"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns int32  `mapstructure:"min_conns" validate:"gte=0"`
	Enabled  bool   `mapstructure:"-"`
}

// Load reads configuration from path (or crptapi.yaml in . and ./configs when
// path is empty) and CRPTAPI_* environment variables, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("crptapi")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	c.Receipts.Redis.Enabled = c.Receipts.Backend == "redis"
	c.Receipts.Postgres.Enabled = c.Receipts.Backend == "postgres"

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("client.url", "https://ismp.crpt.ru/api/v3/lk/documents/create")
	v.SetDefault("client.time_unit", time.Second)
	v.SetDefault("client.request_limit", 10)
	v.SetDefault("client.interval", 1)
	v.SetDefault("client.policy", "window")
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.smoothing_rate", 0)
	v.SetDefault("client.smoothing_burst", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")

	v.SetDefault("receipts.backend", "")
	v.SetDefault("receipts.ttl", 7*24*time.Hour)
	v.SetDefault("receipts.redis.addr", "")
	v.SetDefault("receipts.redis.password", "")
	v.SetDefault("receipts.redis.db", 0)
	v.SetDefault("receipts.redis.pool_size", 0)
	v.SetDefault("receipts.postgres.dsn", "")
	v.SetDefault("receipts.postgres.max_conns", 0)
	v.SetDefault("receipts.postgres.min_conns", 0)
}
