package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel      string `yaml:"log-level"      env:"LOG_LEVEL"      env-default:"info"`
	HTTPPort      string `yaml:"http-port"      env:"HTTP_PORT"      env-default:"9090"`
	SocketPort    string `yaml:"socket-port"    env:"SOCKET_PORT"    env-default:"3000"`
	AllowedOrigin string `yaml:"allowed-origin" env:"ALLOWED_ORIGIN" env-default:"http://localhost:5173"`
	Redis         Redis  `yaml:"redis"`
}

// Redis configures the optional finished-game archive.
type Redis struct {
	Enabled       bool          `yaml:"enabled"        env:"REDIS_ENABLED"        env-default:"false"`
	Host          string        `yaml:"host"           env:"REDIS_HOST"           env-default:"localhost"`
	Port          string        `yaml:"port"           env:"REDIS_PORT"           env-default:"6379"`
	ArchiveTTL    time.Duration `yaml:"archive-ttl"    env:"REDIS_ARCHIVE_TTL"    env-default:"24h"`
	ArchiveRecent int64         `yaml:"archive-recent" env:"REDIS_ARCHIVE_RECENT" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file, falling back to the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the config file at path; a missing file means environment and defaults only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
