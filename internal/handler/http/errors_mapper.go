package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-item-keeper/internal/app"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/service"
	"github.com/MKhiriev/go-item-keeper/internal/store"
)

// retryAfterSeconds is advertised with every 503.
const retryAfterSeconds = "1"

// errorResponse is the body of every error response.
type errorResponse struct {
	Detail string `json:"detail"`
}

type errorStatus struct {
	err    error
	status int
	// detail is the fixed message; empty means the error's own text.
	detail string
}

// errorStatusMap is checked in order, first match wins. Errors that wrap
// several sentinels (an unauthenticated token whose subject was not found)
// resolve to the earliest entry.
var errorStatusMap = []errorStatus{
	{service.ErrUnauthenticated, http.StatusUnauthorized, app.MsgCouldNotValidateCredentials},
	{service.ErrAccountInactive, http.StatusUnauthorized, app.MsgInactiveUser},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgIncorrectEmailOrPassword},
	{service.ErrForbidden, http.StatusForbidden, app.MsgNotEnoughPrivileges},
	{service.ErrNotFound, http.StatusNotFound, app.MsgNotFound},
	{service.ErrStoreUnavailable, http.StatusServiceUnavailable, app.MsgServiceUnavailable},
	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},

	{service.ErrInvalidDataProvided, http.StatusUnprocessableEntity, ""},
	{service.ErrValueRejected, http.StatusUnprocessableEntity, app.MsgInvalidDataProvided},
	{ErrInvalidJSON, http.StatusUnprocessableEntity, ""},
	{ErrInvalidForm, http.StatusUnprocessableEntity, ""},
	{ErrInvalidPathID, http.StatusUnprocessableEntity, ""},
	{ErrInvalidQueryParam, http.StatusUnprocessableEntity, ""},
}

func statusFromError(err error) (int, string) {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			if entry.detail == "" {
				return entry.status, err.Error()
			}
			return entry.status, entry.detail
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError maps err to a status and writes {"detail": ...}.
//
// A 401 carries "WWW-Authenticate: Bearer"; a 503 carries Retry-After.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	switch status {
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	writeJSON(w, r, errorResponse{Detail: detail}, status)
}
