package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Log       LogConfig       `yaml:"log"`
	Billing   BillingConfig   `yaml:"billing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// NotifierConfig contains the reminder-gateway webhook settings. Sends are
// fire-and-forget; delivery is not tracked.
type NotifierConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains rental billing settings
type BillingConfig struct {
	// DefaultAdvanceAmount is the deposit applied to monthly intakes that do
	// not specify one.
	DefaultAdvanceAmount int64 `yaml:"default_advance_amount"`
	// Staff is the roster allowed in the received_by field of payments.
	Staff []string `yaml:"staff"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireLapsedRentals  string `yaml:"expire_lapsed_rentals"`
	SendArrearsReminders string `yaml:"send_arrears_reminders"`
}

// Load reads configuration from a YAML file, applies environment overrides
// and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("NOTIFIER_WEBHOOK_URL"); val != "" {
		c.Notifier.WebhookURL = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("DEFAULT_ADVANCE_AMOUNT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Billing.DefaultAdvanceAmount)
	}
	if val := os.Getenv("BILLING_STAFF"); val != "" {
		c.Billing.Staff = strings.Split(val, ",")
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Billing.DefaultAdvanceAmount == 0 {
		c.Billing.DefaultAdvanceAmount = 5000
	}

	if c.Notifier.TimeoutSeconds <= 0 {
		c.Notifier.TimeoutSeconds = 10
	}

	// Sweep hourly so a lapsed vehicle reads active for at most one interval.
	if c.Scheduler.ExpireLapsedRentals == "" {
		c.Scheduler.ExpireLapsedRentals = "0 0 * * * *"
	}
	if c.Scheduler.SendArrearsReminders == "" {
		c.Scheduler.SendArrearsReminders = "0 0 9 * * *" // 9 AM daily
	}

	return nil
}

// IsStaff reports whether name is on the configured roster. An empty roster
// accepts any name.
func (c *Config) IsStaff(name string) bool {
	if len(c.Billing.Staff) == 0 {
		return true
	}
	for _, s := range c.Billing.Staff {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
