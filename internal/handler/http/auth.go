package http

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/models"
)

// loginRequest mirrors the OAuth2 password form: the email travels in
// "username".
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login accepts either an application/x-www-form-urlencoded body or JSON
// and answers with a bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeLoginRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", token.UserID).Msg("user successfully logged in")
	writeJSON(w, r, models.NewAccessToken(token), http.StatusOK)
}

func decodeLoginRequest(w http.ResponseWriter, r *http.Request) (loginRequest, error) {
	var req loginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		parse := r.ParseForm
		if mediaType == "multipart/form-data" {
			parse = func() error { return r.ParseMultipartForm(maxBodyBytes) }
		}
		if err := parse(); err != nil {
			return loginRequest{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	default:
		if err := decodeJSON(w, r, &req); err != nil {
			return loginRequest{}, err
		}
	}

	if req.Username == "" || req.Password == "" {
		return loginRequest{}, fmt.Errorf("%w: username and password are required", ErrInvalidForm)
	}

	return req, nil
}

// testToken returns the principal the token resolves to.
func (h *Handler) testToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, principal(r), http.StatusOK)
}

// signup registers a regular account without authentication.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in models.UserCreate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusCreated)
}
