package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.RateLimitWindow != 15*time.Minute {
		t.Errorf("RateLimitWindow = %v", c.RateLimitWindow)
	}
	if c.RateLimitMax != 5 {
		t.Errorf("RateLimitMax = %d", c.RateLimitMax)
	}
	if c.MembersSheet != "Members" {
		t.Errorf("MembersSheet = %q", c.MembersSheet)
	}
	if c.PhonePrefix != "84" {
		t.Errorf("PhonePrefix = %q", c.PhonePrefix)
	}
}

func TestOverridesAndValidation(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_MAX", "2")
	c, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.RateLimitWindow != time.Minute || c.RateLimitMax != 2 {
		t.Fatalf("overrides not applied: %v / %d", c.RateLimitWindow, c.RateLimitMax)
	}

	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestPrivateKeyNewlineUnescape(t *testing.T) {
	t.Setenv("GOOGLE_PRIVATE_KEY", `-----BEGIN\nKEY\n-----`)
	c, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.GooglePrivateKey != "-----BEGIN\nKEY\n-----" {
		t.Fatalf("got %q", c.GooglePrivateKey)
	}
}

func TestConfiguredPredicates(t *testing.T) {
	var c Config
	if c.SheetsConfigured() || c.TelegramConfigured() {
		t.Fatal("empty config must report unconfigured")
	}
	c.SheetID = "sheet"
	c.GooglePrivateKey = "k"
	c.GoogleClientEmail = "svc@x.iam.gserviceaccount.com"
	if !c.SheetsConfigured() {
		t.Fatal("sheets should be configured")
	}
	c.TelegramToken = "t"
	c.TelegramChatID = "-100"
	if !c.TelegramConfigured() {
		t.Fatal("telegram should be configured")
	}
}
