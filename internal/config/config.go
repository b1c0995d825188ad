package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	// Google service account. Either the individual fields (built into a
	// credentials blob) or a JSON key file path; the file wins when set.
	GoogleProjectID          string
	GooglePrivateKeyID       string
	GooglePrivateKey         string
	GoogleClientEmail        string
	GoogleClientID           string
	GoogleServiceAccountFile string

	SheetID      string
	MembersSheet string
	MainSiteURL  string

	TelegramToken   string
	TelegramChatID  string
	MessageThreadID string

	AssistantProvider string
	OpenAIAPIKey      string
	OpenAIAssistantID string

	PhonePrefix string

	RateLimitWindow time.Duration
	RateLimitMax    int

	ExternalCallTimeout time.Duration

	ExportTokenSecret string
}

func FromEnv() (Config, error) {
	var c Config

	c.HTTPAddr = getenv("HTTP_ADDR", ":8080")

	c.GoogleProjectID = getenv("GOOGLE_PROJECT_ID", "")
	c.GooglePrivateKeyID = getenv("GOOGLE_PRIVATE_KEY_ID", "")
	// keys arrive through env with literal \n sequences
	c.GooglePrivateKey = strings.ReplaceAll(getenv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n")
	c.GoogleClientEmail = getenv("GOOGLE_CLIENT_EMAIL", "")
	c.GoogleClientID = getenv("GOOGLE_CLIENT_ID", "")
	c.GoogleServiceAccountFile = getenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")

	c.SheetID = getenv("GOOGLE_SHEET_ID", "")
	c.MembersSheet = getenv("GOOGLE_MEMBERS_SHEET", "Members")
	c.MainSiteURL = strings.TrimRight(getenv("MAIN_SITE_URL", "https://tingnect.com"), "/")

	c.TelegramToken = getenv("TELEGRAM_BOT_TOKEN", "")
	c.TelegramChatID = getenv("TELEGRAM_CHAT_ID", "")
	c.MessageThreadID = getenv("MESSAGE_THREAD_ID", "")

	c.AssistantProvider = getenv("ASSISTANT_PROVIDER", "openai")
	c.OpenAIAPIKey = getenv("OPENAI_API_KEY", "")
	c.OpenAIAssistantID = getenv("OPENAI_ASSISTANT_ID", "")

	c.PhonePrefix = getenv("PHONE_COUNTRY_PREFIX", "84")

	var err error
	if c.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return c, err
	}
	if c.RateLimitMax, err = getInt("RATE_LIMIT_MAX", 5); err != nil {
		return c, err
	}
	if c.ExternalCallTimeout, err = getDuration("EXTERNAL_CALL_TIMEOUT", 10*time.Second); err != nil {
		return c, err
	}

	c.ExportTokenSecret = getenv("EXPORT_TOKEN_SECRET", "")

	return c, nil
}

// SheetsConfigured reports whether the spreadsheet collaborator can run.
func (c Config) SheetsConfigured() bool {
	if c.SheetID == "" {
		return false
	}
	return c.GoogleServiceAccountFile != "" || (c.GooglePrivateKey != "" && c.GoogleClientEmail != "")
}

// TelegramConfigured reports whether the notification collaborator can run.
func (c Config) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
