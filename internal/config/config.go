package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Evanfeenstra/mailgun-go"
)

// Config captures the runtime configuration of the sender CLI. The library
// itself reads no environment; everything here belongs to the entry point.
type Config struct {
	App     AppConfig
	Mailgun MailgunConfig
	Send    SendConfig
}

// AppConfig contains generic process level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// MailgunConfig holds the credentials and routing for the messages API.
type MailgunConfig struct {
	APIKey   string
	Domain   string
	Zone     string
	Region   string
	From     string
	FromName string
}

// SendConfig controls the per-send deadline applied by the CLI.
type SendConfig struct {
	TimeoutSeconds int
}

// BaseURL resolves the regional base URL for the configuration. An explicit
// zone wins over the region shorthand; an empty result means the default
// global base.
func (c MailgunConfig) BaseURL() string {
	if c.Zone != "" {
		return c.Zone
	}
	if c.Region == "eu" {
		return mailgun.APIBaseEU
	}
	return ""
}

// Sender builds the from address for the configured identity.
func (c MailgunConfig) Sender() mailgun.EmailAddress {
	if c.FromName != "" {
		return mailgun.NameAddress(c.FromName, c.From)
	}
	return mailgun.Address(c.From)
}

// Load reads environment variables (honoring an optional .env file), applies
// defaults, validates required values and returns a populated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.Mailgun.APIKey = ldr.getString("MAILGUN_API_KEY", "", true)
	cfg.Mailgun.Domain = ldr.getString("MAILGUN_DOMAIN", "", true)
	cfg.Mailgun.Zone = strings.TrimRight(ldr.getString("MAILGUN_ZONE", "", false), "/")
	cfg.Mailgun.Region = strings.ToLower(ldr.getString("MAILGUN_REGION", "", false))
	cfg.Mailgun.From = ldr.getString("MAILGUN_FROM", "", true)
	cfg.Mailgun.FromName = ldr.getString("MAILGUN_FROM_NAME", "", false)

	cfg.Send.TimeoutSeconds = ldr.getInt("SEND_TIMEOUT_SECONDS", 30, false)

	switch cfg.Mailgun.Region {
	case "", "us", "eu":
	default:
		ldr.addError(fmt.Sprintf("MAILGUN_REGION must be us or eu, got %q", cfg.Mailgun.Region))
	}
	if cfg.Send.TimeoutSeconds <= 0 {
		ldr.addError("SEND_TIMEOUT_SECONDS must be positive")
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	val := l.getString(key, "", required)
	if val == "" {
		return def
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid integer", key))
		return def
	}
	return i
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
