package rest

import (
	"net/http"

	"github.com/MinYonhee/api-urban-valle/internal/core/port/usecases_port"
)

type ConsultantHandler struct {
	consultants     usecases_port.ConsultantUseCase
	contacts        usecases_port.ContactUseCase
	defaultPageSize int
}

func NewConsultantHandler(consultants usecases_port.ConsultantUseCase, contacts usecases_port.ContactUseCase, defaultPageSize int) *ConsultantHandler {
	return &ConsultantHandler{
		consultants:     consultants,
		contacts:        contacts,
		defaultPageSize: defaultPageSize,
	}
}

// List handles GET /consultants, or GET /consultants?email=... for a single lookup.
func (h *ConsultantHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if email := query.Get("email"); email != "" {
		consultant, err := h.consultants.GetByEmail(r.Context(), email)
		if err != nil {
			writeError(w, r, "GetConsultantByEmail", err)
			return
		}
		RespondWithJSON(w, http.StatusOK, toConsultantResponse(*consultant))
		return
	}

	page, err := parsePage(query, h.defaultPageSize)
	if err != nil {
		writeError(w, r, "ListConsultants", err)
		return
	}
	result, err := h.consultants.List(r.Context(), page)
	if err != nil {
		writeError(w, r, "ListConsultants", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPageResponse(result, toConsultantResponse))
}

func (h *ConsultantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "GetConsultant", err)
		return
	}
	consultant, err := h.consultants.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetConsultant", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toConsultantResponse(*consultant))
}

func (h *ConsultantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ConsultantRequest
	if err := decodeBody(w, r, "Consultant", &req); err != nil {
		writeError(w, r, "CreateConsultant", err)
		return
	}
	consultant, err := h.consultants.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, "CreateConsultant", err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toConsultantResponse(*consultant))
}

func (h *ConsultantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UpdateConsultant", err)
		return
	}
	var req ConsultantRequest
	if err := decodeBody(w, r, "Consultant", &req); err != nil {
		writeError(w, r, "UpdateConsultant", err)
		return
	}
	consultant, err := h.consultants.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, "UpdateConsultant", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toConsultantResponse(*consultant))
}

func (h *ConsultantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "DeleteConsultant", err)
		return
	}
	if err := h.consultants.Delete(r.Context(), id); err != nil {
		writeError(w, r, "DeleteConsultant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users handles GET /consultants/{id}/users.
func (h *ConsultantHandler) Users(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "ConsultantUsers", err)
		return
	}
	users, err := h.consultants.Users(r.Context(), id)
	if err != nil {
		writeError(w, r, "ConsultantUsers", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(users, toUserResponse))
}

// Contacts handles GET /consultants/{id}/contacts.
func (h *ConsultantHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "ConsultantContacts", err)
		return
	}
	contacts, err := h.contacts.ByConsultant(r.Context(), id)
	if err != nil {
		writeError(w, r, "ConsultantContacts", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(contacts, toContactResponse))
}
