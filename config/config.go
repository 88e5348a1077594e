package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Logging   LoggingConfig   `json:"logging"`
	ScoreFeed ScoreFeedConfig `json:"score_feed"`
	Auth      AuthConfig      `json:"auth"`
	Redis     RedisConfig     `json:"redis"`
	App       AppConfig       `json:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `json:"port"`
	Host string `json:"host"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// ScoreFeedConfig holds score feed provider configuration
type ScoreFeedConfig struct {
	APIKey       string        `json:"api_key"`
	BaseURL      string        `json:"base_url"`
	Timeout      time.Duration `json:"timeout"`
	LookbackDays int           `json:"lookback_days"`
}

// AuthConfig holds service authentication configuration
type AuthConfig struct {
	ServiceSecret string `json:"service_secret"`
}

// RedisConfig holds resolution event publishing configuration
type RedisConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	Channel string `json:"channel"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	CurrentSeason    int             `json:"current_season"`
	Leagues          []models.League `json:"leagues"`
	SchedulerEnabled bool            `json:"scheduler_enabled"`
	ResolveInterval  time.Duration   `json:"resolve_interval"`
	IsDevelopment    bool            `json:"is_development"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is not an error; env vars may be set directly
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	leagues, err := parseLeagues(getEnv("LEAGUES", "nfl"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", "pickem"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pickem"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "pickem"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		ScoreFeed: ScoreFeedConfig{
			APIKey:       getEnv("SCORE_FEED_API_KEY", ""),
			BaseURL:      getEnv("SCORE_FEED_BASE_URL", "https://api.the-odds-api.com"),
			Timeout:      getDurationEnv("SCORE_FEED_TIMEOUT", 30*time.Second),
			LookbackDays: getIntEnv("SCORE_FEED_LOOKBACK_DAYS", 3),
		},
		Auth: AuthConfig{
			ServiceSecret: getEnv("SERVICE_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled: getBoolEnv("REDIS_ENABLED", false),
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Channel: getEnv("REDIS_CHANNEL", "game-resolutions"),
		},
		App: AppConfig{
			CurrentSeason:    getIntEnv("CURRENT_SEASON", 2025),
			Leagues:          leagues,
			SchedulerEnabled: getBoolEnv("SCHEDULER_ENABLED", true),
			ResolveInterval:  getDurationEnv("RESOLVE_INTERVAL", time.Hour),
			IsDevelopment:    isDevelopment,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.ScoreFeed.APIKey == "" {
		return fmt.Errorf("score feed API key is required")
	}
	if c.ScoreFeed.LookbackDays < 1 {
		return fmt.Errorf("score feed lookback must be at least 1 day, got: %d", c.ScoreFeed.LookbackDays)
	}

	if c.Auth.ServiceSecret == "" && !c.App.IsDevelopment {
		return fmt.Errorf("service secret is required outside development")
	}

	if c.App.CurrentSeason < 2020 || c.App.CurrentSeason > 2035 {
		return fmt.Errorf("current season must be between 2020 and 2035, got: %d", c.App.CurrentSeason)
	}
	if len(c.App.Leagues) == 0 {
		return fmt.Errorf("at least one league is required")
	}
	if c.App.ResolveInterval < time.Minute {
		return fmt.Errorf("resolve interval must be at least one minute, got: %v", c.App.ResolveInterval)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s", c.GetServerAddress())
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Score feed: %s (Timeout: %v, Lookback: %d days, Key set: %t)",
		c.ScoreFeed.BaseURL, c.ScoreFeed.Timeout, c.ScoreFeed.LookbackDays, c.ScoreFeed.APIKey != "")
	logging.Infof("Redis events: Enabled=%t, Addr=%s, Channel=%s",
		c.Redis.Enabled, c.Redis.Addr, c.Redis.Channel)
	logging.Infof("App: Season=%d, Leagues=%v, Scheduler=%t, Interval=%v, Development=%t",
		c.App.CurrentSeason, c.App.Leagues, c.App.SchedulerEnabled, c.App.ResolveInterval, c.App.IsDevelopment)
	logging.Info("================================")
}

func parseLeagues(value string) ([]models.League, error) {
	var leagues []models.League
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		league, err := models.ParseLeague(part)
		if err != nil {
			return nil, fmt.Errorf("invalid LEAGUES entry: %w", err)
		}
		leagues = append(leagues, league)
	}
	return leagues, nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
