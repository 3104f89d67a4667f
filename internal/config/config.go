package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	NotifierFile  = "file"
	NotifierSMTP  = "smtp"
	NotifierQueue = "queue"

	DriverMemory = "memory"
)

type Config struct {
	Env      string
	HTTPAddr string

	DatabaseDriver string
	DatabaseURL    string
	AutoMigrate    bool

	Notifier        string
	NotifyRecipient string
	NotifySubject   string
	NotifyFilePath  string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	RabbitMQURL string

	CORSOrigins        []string
	StoreTimeout       time.Duration
	NotifyTimeout      time.Duration
	RateLimitPerMinute int

	// StatusReportInterval drives the lead status gauges; zero disables them.
	StatusReportInterval time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (*Config, error) {
	var errs []string

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:     getEnv("DATABASE_URL", "file:leads.db?_time_format=sqlite"),
		Notifier:        strings.ToLower(getEnv("NOTIFIER", NotifierFile)),
		NotifyRecipient: getEnv("NOTIFY_RECIPIENT", "sales@test.com"),
		NotifySubject:   getEnv("NOTIFY_SUBJECT", "Lead Accepted"),
		NotifyFilePath:  getEnv("NOTIFY_FILE_PATH", "email_notification.txt"),
		MailHost:        getEnv("MAIL_HOST", ""),
		MailUser:        getEnv("MAIL_USER", ""),
		MailPass:        getEnv("MAIL_PASS", ""),
		MailFrom:        getEnv("MAIL_FROM", ""),
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true")); err != nil {
		errs = append(errs, fmt.Sprintf("DB_AUTO_MIGRATE: %v", err))
	}
	if cfg.MailPort, err = strconv.Atoi(getEnv("MAIL_PORT", "587")); err != nil {
		errs = append(errs, fmt.Sprintf("MAIL_PORT: %v", err))
	}
	if cfg.RateLimitPerMinute, err = strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "60")); err != nil {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_PER_MINUTE: %v", err))
	}
	if cfg.StoreTimeout, err = parseDuration("STORE_TIMEOUT", "5s"); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.NotifyTimeout, err = parseDuration("NOTIFY_TIMEOUT", "10s"); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.StatusReportInterval, err = parseDuration("LEAD_STATUS_INTERVAL", "1m"); err != nil {
		errs = append(errs, err.Error())
	}

	switch cfg.DatabaseDriver {
	case DriverMemory, "pgx", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("DATABASE_DRIVER: unsupported driver %q", cfg.DatabaseDriver))
	}
	if cfg.DatabaseDriver != DriverMemory && cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required unless DATABASE_DRIVER is memory")
	}

	switch cfg.Notifier {
	case NotifierFile:
	case NotifierSMTP:
		if cfg.MailHost == "" || cfg.MailFrom == "" {
			errs = append(errs, "MAIL_HOST and MAIL_FROM are required when NOTIFIER is smtp")
		}
	case NotifierQueue:
		if cfg.RabbitMQURL == "" {
			errs = append(errs, "RABBITMQ_URL is required when NOTIFIER is queue")
		}
	default:
		errs = append(errs, fmt.Sprintf("NOTIFIER: unsupported notifier %q", cfg.Notifier))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
