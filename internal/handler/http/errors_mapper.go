package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-keeper/internal/engine"
	"github.com/MKhiriev/go-cred-keeper/internal/service"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/zcap"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	engine.ErrEmptySyncID:         http.StatusBadRequest,
	engine.ErrInvalidStatusUpdate: http.StatusBadRequest,
	engine.ErrAllocatorConflict:   http.StatusConflict,

	store.ErrLoginAlreadyExists:     http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrReferenceNotFound:      http.StatusNotFound,
	store.ErrReferenceAlreadyExists: http.StatusConflict,
	store.ErrProgressNotFound:       http.StatusNotFound,
	store.ErrSequenceConflict:       http.StatusConflict,

	zcap.ErrBadRequest:          http.StatusBadRequest,
	zcap.ErrUnauthorized:        http.StatusBadGateway,
	zcap.ErrForbidden:           http.StatusBadGateway,
	zcap.ErrNotFound:            http.StatusConflict,
	zcap.ErrConflict:            http.StatusConflict,
	zcap.ErrBadGateway:          http.StatusBadGateway,
	zcap.ErrInternalServerError: http.StatusBadGateway,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
