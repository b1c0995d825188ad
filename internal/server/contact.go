package server

import (
	"context"
	"encoding/json"
	"net/http"

	"tingnect-api/internal/models"
	"tingnect-api/internal/telegram"
	"tingnect-api/internal/validate"
)

// contact handles the contact form. No persistence and no rate limit: the
// chat notification is the whole side effect, so unlike registration its
// failure fails the request.
func (h *handlers) contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ContactResponse{
			Success: false, Error: "Invalid request format",
		})
		return
	}

	if field := firstMissingContactField(req); field != "" {
		writeJSON(w, http.StatusBadRequest, models.ContactResponse{
			Success: false, Error: "Missing required field: " + field,
		})
		return
	}

	if !validate.Email(req.Email) {
		writeJSON(w, http.StatusBadRequest, models.ContactResponse{
			Success: false, Error: "Invalid email format",
		})
		return
	}

	req.FullName = validate.Sanitize(req.FullName)
	req.Company = validate.Sanitize(req.Company)
	req.Phone = validate.Sanitize(req.Phone)
	req.Subject = validate.Sanitize(req.Subject)
	req.Message = validate.Sanitize(req.Message)
	req.TelegramHandle = validate.NormalizeHandle(validate.Sanitize(req.TelegramHandle))

	ctx, cancel := context.WithTimeout(r.Context(), h.callTimeout)
	defer cancel()

	if _, err := h.notifier.Notify(ctx, telegram.BuildContactMessage(req)); err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("contact notification failed")
		writeJSON(w, http.StatusInternalServerError, models.ContactResponse{
			Success: false, Error: "Failed to send message. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ContactResponse{
		Success: true,
		Message: "Your message has been sent successfully! We'll get back to you soon.",
	})
}

func firstMissingContactField(req models.ContactRequest) string {
	switch {
	case req.FullName == "":
		return "fullName"
	case req.Email == "":
		return "email"
	case req.Subject == "":
		return "subject"
	case req.Message == "":
		return "message"
	}
	return ""
}
