package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/models"
)

// syncRunHashing verifies the integrity of a pushed status update page.
//
// A caller may attach a "hash" field to the run request body: the
// hex-encoded HMAC-SHA256 signature of the JSON-serialized "updates" array.
// When the field is present the middleware recomputes the signature and
// rejects the request with HTTP 400 on mismatch. Requests without a hash
// field pass through unverified.
func (h *Handler) syncRunHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Updates []models.StatusUpdate `json:"updates"`
			Hash    string                `json:"hash"`
		}

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.syncRunHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
			h.logger.Err(err).Str("func", "*Handler.syncRunHashing").Msg("failed to decode JSON")
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		// unsigned request
		if req.Hash == "" {
			next.ServeHTTP(w, r)
			return
		}

		payloadBytes, err := json.Marshal(req.Updates)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.syncRunHashing").Msg("failed to marshal updates")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		hashedBody := hex.EncodeToString(utils.Hash(payloadBytes))
		if hashedBody != req.Hash {
			h.logger.Error().Str("func", "*Handler.syncRunHashing").
				Str("hash from request", req.Hash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, "Integrity check failed", http.StatusBadRequest)
			return
		}

		h.logger.Debug().Str("func", "*Handler.syncRunHashing").
			Str("hash from request", req.Hash).
			Str("hashed body", hashedBody).
			Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
