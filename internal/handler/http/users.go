package http

import (
	"net/http"

	"github.com/MKhiriev/go-item-keeper/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), principal(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserCreate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusCreated)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, principal(r), http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	h.updateUserByID(w, r, principal(r).UserID)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	h.deleteUserByID(w, r, principal(r).UserID)
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	var in models.PasswordUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.UpdatePassword(r.Context(), principal(r), in); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.updateUserByID(w, r, id)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.deleteUserByID(w, r, id)
}

func (h *Handler) updateUserByID(w http.ResponseWriter, r *http.Request, id int64) {
	var patch models.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), principal(r), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) deleteUserByID(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.services.UserService.DeleteUser(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
