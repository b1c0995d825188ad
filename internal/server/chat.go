package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tingnect-api/internal/assistant"
	"tingnect-api/internal/models"
)

// chat is a pass-through to the configured assistant provider. The widget's
// conversation state lives entirely in the provider's thread id.
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{
			Success: false, Error: "Message is required and must be a string",
		})
		return
	}

	if h.assistant == nil {
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Success: false, Error: "Assistant not configured",
		})
		return
	}
	if h.assistant.Name() == "openai" {
		if !h.assistantKeySet {
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
				Success: false, Error: "OpenAI API key not configured",
			})
			return
		}
		if req.AssistantID == "" && h.defaultAssistantID == "" {
			writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
				Success: false, Error: "Assistant ID not configured",
			})
			return
		}
	}

	answer, err := h.assistant.Ask(r.Context(), assistant.Query{
		ThreadID:    req.ThreadID,
		AssistantID: req.AssistantID,
		Message:     req.Message,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("assistant request failed")
		msg := "Failed to process request with assistant"
		switch {
		case errors.Is(err, assistant.ErrTimeout):
			msg = "Response timeout. Please try again."
		case errors.Is(err, assistant.ErrNoReply):
			msg = "No response generated"
		}
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Success: false, Error: msg,
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Success:  true,
		Message:  answer.Message,
		ThreadID: answer.ThreadID,
	})
}

func (h *handlers) chatStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Chat API is running. Use POST to send messages.",
	})
}
