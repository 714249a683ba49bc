package config

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"

	"timekeeper.com/timekeeper/infrastructure/devops"

	"gopkg.in/yaml.v3"
)

type SlackConfig struct {
	BotToken     string `yaml:"bot_token"`
	InfoChannel  string `yaml:"info_channel"`
	ErrorChannel string `yaml:"error_channel"`
}

type EmailConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type Config struct {
	DSN            string `yaml:"dsn"`
	DatabaseName   string `yaml:"database_name"`
	MaxConnections int    `yaml:"max_connections"`
	LogLevel       string `yaml:"log_level"`
	Port           string `yaml:"port"`
	// SigningSecret is base64 encoded.
	SigningSecret string      `yaml:"signing_secret"`
	ArchiveBucket string      `yaml:"archive_bucket"`
	Slack         SlackConfig `yaml:"slack"`
	Email         EmailConfig `yaml:"email"`
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func defaults() *Config {
	return &Config{
		MaxConnections: 10,
		LogLevel:       "warn",
		Port:           "8090",
	}
}

// Load reads CONFIG_FILE when set, then applies environment overrides. When no
// DSN is configured but DATABASE_NAME is, the DSN is built from the databases
// SSM parameter.
func Load(ctx context.Context) (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.resolveDSN(ctx, devops.LoadDBConfig); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DSN = GetEnv("DSN", c.DSN)
	c.DatabaseName = GetEnv("DATABASE_NAME", c.DatabaseName)
	c.MaxConnections = GetEnvAsInt("DB_MAX_CONNECTIONS", c.MaxConnections)
	c.LogLevel = GetEnv("LOG_LEVEL", c.LogLevel)
	c.Port = GetEnv("PORT", c.Port)
	c.SigningSecret = GetEnv("AUTH_SIGNING_SECRET", c.SigningSecret)
	c.ArchiveBucket = GetEnv("ARCHIVE_BUCKET", c.ArchiveBucket)
	c.Slack.BotToken = GetEnv("SLACK_BOT_TOKEN", c.Slack.BotToken)
	c.Slack.InfoChannel = GetEnv("SLACK_INFO_CHANNEL", c.Slack.InfoChannel)
	c.Slack.ErrorChannel = GetEnv("SLACK_ERROR_CHANNEL", c.Slack.ErrorChannel)
	c.Email.From = GetEnv("NOTIFY_EMAIL_FROM", c.Email.From)
	c.Email.To = GetEnv("NOTIFY_EMAIL_TO", c.Email.To)
}

func (c *Config) resolveDSN(ctx context.Context, load func(context.Context) ([]devops.DBEntry, error)) error {
	if c.DSN != "" || c.DatabaseName == "" {
		return nil
	}
	entries, err := load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	entry, ok := devops.FindDatabase(entries, c.DatabaseName)
	if !ok {
		return fmt.Errorf("database %s is not configured", c.DatabaseName)
	}
	c.DSN = entry.GetDSN(c.DatabaseName)
	return nil
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	var errs []error
	if c.DSN == "" {
		errs = append(errs, errors.New("DSN is required"))
	}
	if c.MaxConnections <= 0 {
		errs = append(errs, fmt.Errorf("max connections must be positive, got %d", c.MaxConnections))
	}
	if c.SigningSecret != "" {
		if _, err := c.Secret(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Secret decodes the signing secret. An empty secret is an error.
func (c *Config) Secret() ([]byte, error) {
	if c.SigningSecret == "" {
		return nil, errors.New("signing secret is required")
	}
	secret, err := base64.StdEncoding.DecodeString(c.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("signing secret is not valid base64: %w", err)
	}
	return secret, nil
}

// SlackEnabled reports whether batch notifications can be posted.
func (c *Config) SlackEnabled() bool {
	return c.Slack.BotToken != ""
}

// EmailEnabled reports whether batch failures are mailed.
func (c *Config) EmailEnabled() bool {
	return c.Email.From != "" && c.Email.To != ""
}
