// Package server wires the site's API surface: member registration, the
// contact form, the assistant chat pass-through and the member CSV export.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"tingnect-api/internal/assistant"
	"tingnect-api/internal/config"
	"tingnect-api/internal/logger"
	"tingnect-api/internal/models"
	"tingnect-api/internal/ratelimit"
	"tingnect-api/internal/validate"
)

// MemberStore is the persistence surface the registration pipeline needs.
// *sheets.Client implements it.
type MemberStore interface {
	FindDuplicate(ctx context.Context, cardID string) (bool, error)
	AppendRegistration(ctx context.Context, reg models.Registration, ip string) (int, error)
	ListMembers(ctx context.Context) ([][]string, error)
	SpreadsheetID() string
}

// Notifier is the chat-channel surface. *telegram.Notifier implements it.
type Notifier interface {
	Enabled() bool
	Notify(ctx context.Context, text string) (int, error)
}

// Deps carries the pipeline collaborators. Store may be nil when the
// spreadsheet service is unconfigured; registration then fails at the
// persistence step, nothing else is affected.
type Deps struct {
	Store     MemberStore
	Notifier  Notifier
	Assistant assistant.Provider
	Limiter   *ratelimit.Limiter
}

type handlers struct {
	store     MemberStore
	notifier  Notifier
	assistant assistant.Provider
	limiter   *ratelimit.Limiter

	v     *validator.Validate
	trans ut.Translator

	callTimeout        time.Duration
	exportSecret       string
	assistantKeySet    bool
	defaultAssistantID string

	log *logger.Logger
	now func() time.Time
}

// New builds the HTTP server. Follows the one-mux-per-process shape of the
// rest of our services.
func New(cfg config.Config, deps Deps) *http.Server {
	v, trans := newValidator(cfg.PhonePrefix)

	h := &handlers{
		store:              deps.Store,
		notifier:           deps.Notifier,
		assistant:          deps.Assistant,
		limiter:            deps.Limiter,
		v:                  v,
		trans:              trans,
		callTimeout:        cfg.ExternalCallTimeout,
		exportSecret:       cfg.ExportTokenSecret,
		assistantKeySet:    cfg.OpenAIAPIKey != "",
		defaultAssistantID: cfg.OpenAIAssistantID,
		log:                logger.Named("server"),
		now:                time.Now,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "message": "Method not allowed"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Post("/api/member-register", h.memberRegister)
	r.Post("/api/contact", h.contact)
	r.Post("/api/chat", h.chat)
	r.Get("/api/chat", h.chatStatus)
	r.Get("/export/members.csv", h.exportMembers)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newValidator builds the request validator with the form messages the site
// frontends expect, tag for tag.
func newValidator(phonePrefix string) (*validator.Validate, ut.Translator) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New()
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = validate.Register(v, phonePrefix)

	fixed := map[string]string{
		"cardid":      "Card ID must be at least 2 digits",
		"email_shape": "Invalid email format",
		"phone_local": "Invalid phone number format",
		"tg_handle":   "Invalid Telegram username format",
	}
	for tag, msg := range fixed {
		tag, msg := tag, msg
		_ = v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				out, _ := ut.T(tag)
				return out
			},
		)
	}
	return v, trans
}

// clientKey resolves the rate-limit key for a request, preferring proxy
// headers over the socket address.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return "unknown"
}
