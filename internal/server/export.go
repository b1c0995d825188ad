package server

import (
	"context"
	"crypto/subtle"
	"encoding/csv"
	"net/http"

	"tingnect-api/internal/util"
)

const exportScope = "export:members"

// exportMembers streams the member sheet as CSV. Access is a pre-shared
// HMAC token handed to admins, same scheme as the rest of our export links.
func (h *handlers) exportMembers(w http.ResponseWriter, r *http.Request) {
	if h.exportSecret == "" || h.store == nil {
		http.Error(w, "export disabled", http.StatusNotFound)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusBadRequest)
		return
	}
	expected := util.HMACSHA256Hex(h.exportSecret, exportScope)
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.callTimeout)
	defer cancel()

	rows, err := h.store.ListMembers(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("member export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)
	cw := csv.NewWriter(w)
	for _, row := range rows {
		_ = cw.Write(row)
	}
	cw.Flush()
}
