package rest

import (
	"net/http"

	"github.com/MinYonhee/api-urban-valle/internal/core/port/usecases_port"
)

type ContactHandler struct {
	contacts        usecases_port.ContactUseCase
	defaultPageSize int
}

func NewContactHandler(contacts usecases_port.ContactUseCase, defaultPageSize int) *ContactHandler {
	return &ContactHandler{contacts: contacts, defaultPageSize: defaultPageSize}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query(), h.defaultPageSize)
	if err != nil {
		writeError(w, r, "ListContacts", err)
		return
	}
	result, err := h.contacts.List(r.Context(), page)
	if err != nil {
		writeError(w, r, "ListContacts", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPageResponse(result, toContactResponse))
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "GetContact", err)
		return
	}
	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetContact", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toContactResponse(*contact))
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeBody(w, r, "Contact", &req); err != nil {
		writeError(w, r, "CreateContact", err)
		return
	}
	contact, err := h.contacts.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, "CreateContact", err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toContactResponse(*contact))
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UpdateContact", err)
		return
	}
	var req ContactRequest
	if err := decodeBody(w, r, "Contact", &req); err != nil {
		writeError(w, r, "UpdateContact", err)
		return
	}
	contact, err := h.contacts.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, "UpdateContact", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toContactResponse(*contact))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "DeleteContact", err)
		return
	}
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, r, "DeleteContact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
