package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Env  string `mapstructure:"env"` // "development" or "production"
}

// GameConfig holds game-related configuration.
type GameConfig struct {
	TurnDurationSeconds int    `mapstructure:"turn_duration_seconds"`
	RoomCodeLength      int    `mapstructure:"room_code_length"`
	WordBankPath        string `mapstructure:"word_bank_path"` // empty = built-in bank
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load reads configuration from an optional config.yaml in the given path and
// from environment variables (e.g. SERVER_PORT, GAME_TURN_DURATION_SECONDS),
// falling back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.env", "development")
	v.SetDefault("game.turn_duration_seconds", 30)
	v.SetDefault("game.room_code_length", 6)
	v.SetDefault("game.word_bank_path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// A missing file just means defaults + env.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format.
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// TurnDuration returns the configured default turn length.
func (c *Config) TurnDuration() time.Duration {
	return time.Duration(c.Game.TurnDurationSeconds) * time.Second
}
