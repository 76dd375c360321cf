package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Game   GameConfig
}

// ServerConfig holds websocket server settings.
type ServerConfig struct {
	Addr              string
	OriginAllowlist   []string `mapstructure:"origin_allowlist"`
	MaxGamesPerClient int      `mapstructure:"max_games_per_client"`
	RateLimit         float64  `mapstructure:"rate_limit"`
	RateBurst         int      `mapstructure:"rate_burst"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// GameConfig holds dealing settings.
type GameConfig struct {
	Seed uint64
}

// Load reads configuration from an optional TOML file and the environment.
// The file is path, or KLONDIKE_CONFIG when path is empty, or
// ./klondike.toml when present. Env var overrides use prefix KLONDIKE_,
// e.g. KLONDIKE_SERVER_ADDR.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.origin_allowlist", []string{"http://localhost:8080", "http://127.0.0.1:8080"})
	v.SetDefault("server.max_games_per_client", 8)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("game.seed", 0)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("KLONDIKE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("klondike")
	}

	v.SetEnvPrefix("KLONDIKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// env values arrive comma separated, possibly with spaces
	var origins []string
	for _, o := range c.Server.OriginAllowlist {
		origins = append(origins, splitList(o)...)
	}
	c.Server.OriginAllowlist = origins
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that viper cannot.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Server.MaxGamesPerClient <= 0 {
		return fmt.Errorf("server.max_games_per_client must be positive, got %d", c.Server.MaxGamesPerClient)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must be positive")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	l, _ := ParseLogLevel(c.Log.Level)
	return l
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}
