package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	Storage        string
	LogLevel       string
	MigrateOnStart bool
	TxTimeout      time.Duration

	DefaultPageLimit int

	CBRURL     string
	CBREnabled bool

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	DigestRecipient string
	DigestSchedule  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	var err error
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=bank sslmode=disable"),
		Storage:         getEnv("STORAGE", StoragePostgres),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", ""),
		DigestRecipient: getEnv("DIGEST_RECIPIENT", ""),
		DigestSchedule:  getEnv("DIGEST_SCHEDULE", "0 9 * * *"),
	}

	if cfg.MigrateOnStart, err = getEnvBool("MIGRATE_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.CBREnabled, err = getEnvBool("CBR_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.DefaultPageLimit, err = getEnvInt("DEFAULT_PAGE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.TxTimeout, err = getEnvDuration("TX_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}
	if cfg.DefaultPageLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_PAGE_LIMIT must be positive")
	}
	if cfg.TxTimeout <= 0 {
		return nil, fmt.Errorf("TX_TIMEOUT must be positive")
	}
	if cfg.CBREnabled && cfg.CBRURL == "" {
		return nil, fmt.Errorf("CBR_URL is required when CBR_ENABLED is set")
	}
	if cfg.DigestRecipient != "" && (cfg.SMTPHost == "" || cfg.SenderEmail == "") {
		return nil, fmt.Errorf("SMTP_HOST and SENDER_EMAIL are required when DIGEST_RECIPIENT is set")
	}

	return cfg, nil
}

// DigestEnabled reports whether the overdue loan digest should be scheduled.
func (c *Config) DigestEnabled() bool {
	return c.DigestRecipient != "" && c.DigestSchedule != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
