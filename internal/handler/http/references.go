package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var ref models.CredentialReference
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		log.Err(err).Str("func", "*Handler.createReference").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.ReferenceService.CreateReference(ctx, ref)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createReference").Str("credential_id", ref.CredentialID).Msg("error creating credential reference")
		http.Error(w, "error creating credential reference", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusCreated)
}

func (h *Handler) getReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentialID := chi.URLParam(r, "credentialID")

	response, err := h.services.ReferenceService.GetReference(ctx, credentialID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getReference").Str("credential_id", credentialID).Msg("error getting credential reference")
		http.Error(w, "error getting credential reference", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) listReferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := referenceFilterFromQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listReferences").Msg("invalid filter parameters")
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		return
	}

	references, err := h.services.ReferenceService.ListReferences(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listReferences").Msg("error listing credential references")
		http.Error(w, "error listing credential references", statusFromError(err))
		return
	}

	response := models.ReferenceListResponse{
		References: references,
		Length:     len(references),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// referenceFilterFromQuery builds a reference listing filter from the
// query string. Recognised parameters: credentialId (repeatable),
// updatedAfter (RFC 3339) and limit.
func referenceFilterFromQuery(r *http.Request) (models.ReferenceFilter, error) {
	query := r.URL.Query()

	filter := models.ReferenceFilter{
		CredentialIDs: query["credentialId"],
	}

	if raw := query.Get("updatedAfter"); raw != "" {
		updatedAfter, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.ReferenceFilter{}, err
		}
		filter.UpdatedAfter = updatedAfter
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.ReferenceFilter{}, err
		}
		filter.Limit = limit
	}

	return filter, nil
}
