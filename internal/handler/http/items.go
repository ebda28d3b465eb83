package http

import (
	"net/http"

	"github.com/MKhiriev/go-item-keeper/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.services.ItemService.ListItems(r.Context(), principal(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, items, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemCreate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.CreateItem(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.GetItem(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusOK)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.ItemPatch
	if err = decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.UpdateItem(r.Context(), principal(r), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, item, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.ItemService.DeleteItem(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
