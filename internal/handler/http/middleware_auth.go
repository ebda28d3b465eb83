package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/service"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
)

// auth resolves the bearer token of the request into a live principal and
// stores it in the request context.
//
// Every failure is answered with 401 and "WWW-Authenticate: Bearer": a
// missing or malformed header, an invalid or expired token, a deleted
// subject and a deactivated account. A store outage is answered with 503.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("no bearer token")
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthenticated, err))
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.ResolvePrincipal(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, user)))
	})
}
