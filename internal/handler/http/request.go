package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
	"github.com/MKhiriev/go-item-keeper/models"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps JSON and form request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// pathID reads the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPathID, raw)
	}
	return id, nil
}

// pageFromQuery reads ?skip=&limit=. Absent values are zero and normalized
// by the store. Both must fit a signed 64-bit integer, which is what SQL
// OFFSET and LIMIT accept.
func pageFromQuery(r *http.Request) (models.Page, error) {
	var page models.Page
	q := r.URL.Query()

	for name, dst := range map[string]*uint64{"skip": &page.Skip, "limit": &page.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v > math.MaxInt64 {
			return models.Page{}, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
		}
		*dst = v
	}

	return page, nil
}

// principal returns the account resolved by the auth middleware. Routes
// using it are mounted behind that middleware, so absence is a wiring bug.
func principal(r *http.Request) models.User {
	user, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		panic("http: principal missing from request context")
	}
	return user
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
