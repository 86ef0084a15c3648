package config

import (
	"strings"
	"testing"

	"github.com/Evanfeenstra/mailgun-go"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MAILGUN_API_KEY", "key-xxxxxx")
	t.Setenv("MAILGUN_DOMAIN", "mailgun.hackerth.com")
	t.Setenv("MAILGUN_FROM", "no-reply@hackerth.com")

	// Clear the optional keys so ambient shell state cannot leak in.
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MAILGUN_ZONE", "")
	t.Setenv("MAILGUN_REGION", "")
	t.Setenv("MAILGUN_FROM_NAME", "")
	t.Setenv("SEND_TIMEOUT_SECONDS", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != "development" {
		t.Fatalf("expected app env development, got %s", cfg.App.Env)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected log level info, got %s", cfg.App.LogLevel)
	}
	if cfg.Mailgun.APIKey != "key-xxxxxx" {
		t.Fatalf("expected api key to be read, got %s", cfg.Mailgun.APIKey)
	}
	if cfg.Mailgun.Domain != "mailgun.hackerth.com" {
		t.Fatalf("expected domain to be read, got %s", cfg.Mailgun.Domain)
	}
	if cfg.Send.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout 30, got %d", cfg.Send.TimeoutSeconds)
	}
	if base := cfg.Mailgun.BaseURL(); base != "" {
		t.Fatalf("expected default base url, got %q", base)
	}
}

func TestLoadReportsAllMissingKeys(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAILGUN_API_KEY", "")
	t.Setenv("MAILGUN_DOMAIN", "")
	t.Setenv("MAILGUN_FROM", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing required keys")
	}

	for _, key := range []string{"MAILGUN_API_KEY", "MAILGUN_DOMAIN", "MAILGUN_FROM"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestLoadRejectsUnknownRegion(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAILGUN_REGION", "mars")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown region")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "soon"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-5"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("SEND_TIMEOUT_SECONDS", tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for timeout %q", tc.value)
			}
		})
	}
}

func TestBaseURLResolution(t *testing.T) {
	tests := []struct {
		name string
		cfg  MailgunConfig
		want string
	}{
		{
			name: "default",
			cfg:  MailgunConfig{},
			want: "",
		},
		{
			name: "eu region",
			cfg:  MailgunConfig{Region: "eu"},
			want: mailgun.APIBaseEU,
		},
		{
			name: "us region stays on default",
			cfg:  MailgunConfig{Region: "us"},
			want: "",
		},
		{
			name: "explicit zone wins over region",
			cfg:  MailgunConfig{Zone: "https://mg.internal.example.com/v3", Region: "eu"},
			want: "https://mg.internal.example.com/v3",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.BaseURL(); got != tc.want {
				t.Fatalf("BaseURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSenderBuildsFromIdentity(t *testing.T) {
	named := MailgunConfig{From: "no-reply@hackerth.com", FromName: "no-reply"}
	if got := named.Sender().String(); got != "no-reply <no-reply@hackerth.com>" {
		t.Fatalf("sender = %q", got)
	}

	bare := MailgunConfig{From: "no-reply@hackerth.com"}
	if got := bare.Sender().String(); got != "no-reply@hackerth.com" {
		t.Fatalf("sender = %q", got)
	}
}

func TestLoadZoneStripsTrailingSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAILGUN_ZONE", mailgun.APIBaseEU+"/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mailgun.Zone != mailgun.APIBaseEU {
		t.Fatalf("zone = %q, want %q", cfg.Mailgun.Zone, mailgun.APIBaseEU)
	}
}
