package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/models"
)

func (h *Handler) expandStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ExpandStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.expandStatus").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	expanded, err := h.services.SyncService.ExpandStatus(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.expandStatus").Msg("error expanding status entry")
		http.Error(w, "error expanding status entry", statusFromError(err))
		return
	}

	utils.WriteJSON(w, expanded, http.StatusOK)
}
