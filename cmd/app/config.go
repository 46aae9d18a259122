package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dnd_quest_board/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	StaticDir       string        `yaml:"staticDir"`
	IndexFile       string        `yaml:"indexFile"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

var defaults = map[string]any{
	"server.host":            "0.0.0.0",
	"server.port":            "5000",
	"server.debug":           false,
	"server.staticDir":       "static",
	"server.indexFile":       "index.html",
	"server.shutdownTimeout": "10s",

	"database.driver":   repository.DriverPgx,
	"database.url":      "",
	"database.host":     "localhost",
	"database.port":     "5432",
	"database.user":     "postgres",
	"database.password": "postgres",
	"database.name":     "dnd_quests",
	"database.sslMode":  "disable",
	"database.path":     "quests.db",

	"logLevel":  "info",
	"logFormat": "json",
}

// Plain variable names used by existing deployments, checked after the
// APP_-prefixed form of the same key.
var legacyEnv = map[string]string{
	"database.url":      "DATABASE_URL",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"server.port":       "PORT",
	"server.debug":      "DEBUG",
}

// LoadConfig reads config.yaml from dir when present and applies environment
// overrides. A missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(dir)
	v.SetConfigType(configFormat)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, name := range legacyEnv {
		prefixed := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
