package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tingnect-api/internal/apperr"
	"tingnect-api/internal/models"
	"tingnect-api/internal/telegram"
	"tingnect-api/internal/util"
	"tingnect-api/internal/validate"
)

// registrationFormat drives the format-validation pass. Field order matters:
// the first failing field decides the response message.
type registrationFormat struct {
	CardID   string `validate:"cardid"`
	Email    string `validate:"email_shape"`
	Phone    string `validate:"phone_local"`
	Telegram string `validate:"omitempty,tg_handle"`
}

// memberRegister runs the registration pipeline: rate-limit, parse, presence
// check, format check, sanitize, persist, notify, respond. Short-circuits on
// the first failure; notification alone never fails the request.
func (h *handlers) memberRegister(w http.ResponseWriter, r *http.Request) {
	ip := clientKey(r)

	if !h.limiter.Allow(ip) {
		writeJSON(w, http.StatusTooManyRequests, models.RegistrationResponse{
			Success: false, Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.RegistrationResponse{
			Success: false, Message: "Invalid request format",
		})
		return
	}

	if field := firstMissingField(req); field != "" {
		writeJSON(w, http.StatusBadRequest, models.RegistrationResponse{
			Success: false, Message: "Missing required field: " + field,
		})
		return
	}

	if msg := h.firstFormatError(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.RegistrationResponse{
			Success: false, Message: msg,
		})
		return
	}

	reg := h.sanitizeRegistration(req)

	ctx, cancel := context.WithTimeout(r.Context(), h.callTimeout)
	defer cancel()

	rowNumber, err := h.persist(ctx, reg, ip)
	if err != nil {
		status, msg := persistFailure(err)
		h.log.Error().Err(err).Str("card_id", reg.CardID).Msg("registration persist failed")
		writeJSON(w, status, models.RegistrationResponse{Success: false, Message: msg})
		return
	}

	// Best-effort: delivery failure is logged and otherwise discarded.
	messageID := 0
	if id, err := h.notifier.Notify(ctx, telegram.BuildRegistrationMessage(reg, rowNumber, h.store.SpreadsheetID())); err != nil {
		h.log.Warn().Err(err).Str("card_id", reg.CardID).Msg("registration notification failed")
	} else {
		messageID = id
	}

	h.log.Info().Str("card_id", reg.CardID).Int("row", rowNumber).Msg("registration accepted")

	writeJSON(w, http.StatusOK, models.RegistrationResponse{
		Success:           true,
		Message:           "Registration successful! Welcome to TingNect Elite community.",
		CardID:            reg.CardID,
		SheetRowNumber:    rowNumber,
		TelegramMessageID: messageID,
	})
}

// firstMissingField reports the first absent required field, in the order
// the frontend expects the errors.
func firstMissingField(req models.RegistrationRequest) string {
	switch {
	case req.CardID == "":
		return "cardID"
	case req.FullName == "":
		return "fullName"
	case req.Phone == "":
		return "phone"
	case req.Email == "":
		return "email"
	case !req.Consent:
		return "consent"
	}
	return ""
}

func (h *handlers) firstFormatError(req models.RegistrationRequest) string {
	f := registrationFormat{
		CardID:   req.CardID,
		Email:    req.Email,
		Phone:    req.Phone,
		Telegram: req.Telegram,
	}
	err := h.v.Struct(f)
	if err == nil {
		return ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Translate(h.trans)
	}
	return "Invalid request format"
}

func (h *handlers) sanitizeRegistration(req models.RegistrationRequest) models.Registration {
	reg := models.Registration{
		CardID:           validate.Sanitize(req.CardID),
		FullName:         validate.Sanitize(req.FullName),
		Phone:            validate.Sanitize(req.Phone),
		Email:            validate.Sanitize(req.Email),
		Telegram:         validate.Sanitize(req.Telegram),
		Role:             validate.Sanitize(req.Role),
		Experience:       validate.Sanitize(req.Experience),
		Interests:        normalizeInterests(req.Interests),
		Consent:          req.Consent,
		Timestamp:        req.Timestamp,
		UserAgent:        validate.Sanitize(req.UserAgent),
		ConsentTimestamp: req.ConsentTimestamp,
	}
	if reg.Timestamp == "" {
		reg.Timestamp = util.NowISO()
	}
	if reg.ConsentTimestamp == "" {
		reg.ConsentTimestamp = util.NowISO()
	}
	return reg
}

// normalizeInterests turns the raw interests payload into a sanitized string
// list. Anything that is not a string array collapses to an empty list;
// order is preserved and duplicates are kept.
func normalizeInterests(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, validate.Sanitize(s))
	}
	return out
}

// persist runs the duplicate check and the append. A failed duplicate scan
// is logged and the insert proceeds, matching the site's long-standing
// behavior; the scan and the append are not atomic either way.
func (h *handlers) persist(ctx context.Context, reg models.Registration, ip string) (int, error) {
	if h.store == nil {
		return 0, apperr.Internalf("member store not configured")
	}

	dup, err := h.store.FindDuplicate(ctx, reg.CardID)
	if err != nil {
		h.log.Warn().Err(err).Msg("duplicate check failed, proceeding with insert")
	} else if dup {
		return 0, apperr.DuplicateKeyf("card ID %s already exists", reg.CardID)
	}

	return h.store.AppendRegistration(ctx, reg, ip)
}

// persistFailure maps a persistence error to the status and caller-safe
// message for the wire. Detail stays in the server log.
func persistFailure(err error) (int, string) {
	switch apperr.CodeOf(err) {
	case apperr.CodeDuplicateKey:
		return http.StatusConflict, "Card ID already exists. Please choose a different ID."
	case apperr.CodeUnavailable:
		return http.StatusServiceUnavailable, "Google Sheets service temporarily unavailable. Please try again later."
	default:
		return http.StatusInternalServerError, "Failed to save registration data. Please try again."
	}
}
