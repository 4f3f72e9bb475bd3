package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	syncID := chi.URLParam(r, "syncID")

	var request models.SyncRunRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.runSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.RunSync(ctx, syncID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.runSync").Str("sync_id", syncID).Msg("synchronization run failed")
		http.Error(w, "synchronization run failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getSyncProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	syncID := chi.URLParam(r, "syncID")

	progress, err := h.services.SyncService.GetProgress(ctx, syncID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSyncProgress").Str("sync_id", syncID).Msg("error getting synchronization progress")
		http.Error(w, "error getting synchronization progress", statusFromError(err))
		return
	}

	utils.WriteJSON(w, progress, http.StatusOK)
}
