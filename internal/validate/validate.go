// Package validate holds the field predicates and sanitizer for inbound forms.
// The predicates are pure; the validator tags registered here delegate to them
// so struct-level validation and direct calls agree.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	cardIDRe = regexp.MustCompile(`^\d{2,}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	handleRe = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)
)

// CardID reports whether s is a numeric member ID of at least 2 digits.
func CardID(s string) bool {
	return cardIDRe.MatchString(s)
}

// Email reports whether s has a conventional local@domain.tld shape.
// Not full RFC 5322; mirrors the site's form check.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is +<prefix> followed by 9-10 digits.
func Phone(s, prefix string) bool {
	re := regexp.MustCompile(`^\+` + regexp.QuoteMeta(prefix) + `\d{9,10}$`)
	return re.MatchString(s)
}

// Handle reports whether s is a valid Telegram username.
// Empty is valid: the field is optional. A leading @ is tolerated.
func Handle(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	return handleRe.MatchString(strings.TrimPrefix(s, "@"))
}

var sanitizeRe = regexp.MustCompile(`[<>"']`)

// Sanitize trims whitespace and strips < > " ' from s.
// Guards downstream sheet cells and chat messages against trivial markup
// injection; not a full XSS defense. Idempotent.
func Sanitize(s string) string {
	return sanitizeRe.ReplaceAllString(strings.TrimSpace(s), "")
}

// NormalizeHandle prefixes s with @ when non-empty and missing one.
func NormalizeHandle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "@") {
		return s
	}
	return "@" + s
}

// Register installs the custom tags on v. The phone tag closes over the
// configured country prefix.
func Register(v *validator.Validate, phonePrefix string) error {
	if err := v.RegisterValidation("cardid", func(fl validator.FieldLevel) bool {
		return CardID(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_local", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String(), phonePrefix)
	}); err != nil {
		return err
	}
	return v.RegisterValidation("tg_handle", func(fl validator.FieldLevel) bool {
		return Handle(fl.Field().String())
	})
}
