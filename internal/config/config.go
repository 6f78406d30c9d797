package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var (
	ErrUnknownStorage  = errors.New("unknown storage")
	ErrUnknownLogLevel = errors.New("unknown log level")
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	Storage   string    `yaml:"storage" env:"TICTACTOE_STORAGE" env-default:"memory"`
	GameID    string    `yaml:"game-id" env:"TICTACTOE_GAME_ID"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Redis struct {
	Host string        `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string        `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	TTL  time.Duration `yaml:"ttl" env:"TICTACTOE_REDIS_TTL" env-default:"24h"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"TICTACTOE_TELEMETRY_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"TICTACTOE_TELEMETRY_ENDPOINT"`
	ServiceName string `yaml:"service-name" env:"TICTACTOE_TELEMETRY_SERVICE_NAME" env-default:"tictactoe"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the yaml file at path and applies env overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	switch that.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
