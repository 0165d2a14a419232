package rest

import (
	"net/http"

	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
	"github.com/MinYonhee/api-urban-valle/internal/core/port/usecases_port"
)

type PropertyHandler struct {
	properties      usecases_port.PropertyUseCase
	findProperties  usecases_port.FindPropertiesUseCase
	contacts        usecases_port.ContactUseCase
	defaultPageSize int
}

func NewPropertyHandler(properties usecases_port.PropertyUseCase, findProperties usecases_port.FindPropertiesUseCase,
	contacts usecases_port.ContactUseCase, defaultPageSize int) *PropertyHandler {
	return &PropertyHandler{
		properties:      properties,
		findProperties:  findProperties,
		contacts:        contacts,
		defaultPageSize: defaultPageSize,
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query(), h.defaultPageSize)
	if err != nil {
		writeError(w, r, "ListProperties", err)
		return
	}
	result, err := h.properties.List(r.Context(), page)
	if err != nil {
		writeError(w, r, "ListProperties", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPageResponse(result, toPropertyResponse))
}

// Filter handles GET /properties/filter.
func (h *PropertyHandler) Filter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := parsePropertyFilter(query)
	if err != nil {
		writeError(w, r, "FilterProperties", err)
		return
	}
	page, err := parsePage(query, h.defaultPageSize)
	if err != nil {
		writeError(w, r, "FilterProperties", err)
		return
	}

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "FilterProperties",
		"page":    page.Page,
		"size":    page.Size,
	})
	handlerLogger.Debug("Processing property filter request", port.Fields{"filter": filter})

	result, err := h.findProperties.Execute(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, "FilterProperties", err)
		return
	}

	handlerLogger.Info("Successfully filtered properties", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Items),
	})
	RespondWithJSON(w, http.StatusOK, toPageResponse(result, toPropertyResponse))
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "GetProperty", err)
		return
	}
	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetProperty", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PropertyRequest
	if err := decodeBody(w, r, "Property", &req); err != nil {
		writeError(w, r, "CreateProperty", err)
		return
	}
	property, err := h.properties.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, "CreateProperty", err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(*property))
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UpdateProperty", err)
		return
	}
	var req PropertyRequest
	if err := decodeBody(w, r, "Property", &req); err != nil {
		writeError(w, r, "UpdateProperty", err)
		return
	}
	property, err := h.properties.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, "UpdateProperty", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "DeleteProperty", err)
		return
	}
	if err := h.properties.Delete(r.Context(), id); err != nil {
		writeError(w, r, "DeleteProperty", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contacts handles GET /properties/{id}/contacts.
func (h *PropertyHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "PropertyContacts", err)
		return
	}
	contacts, err := h.contacts.ByProperty(r.Context(), id)
	if err != nil {
		writeError(w, r, "PropertyContacts", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(contacts, toContactResponse))
}

// AddContact handles POST /properties/{id}/contacts.
func (h *PropertyHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "AddPropertyContact", err)
		return
	}
	var req ContactRequest
	if err := decodeBody(w, r, "Contact", &req); err != nil {
		writeError(w, r, "AddPropertyContact", err)
		return
	}
	contact, err := h.contacts.AddToProperty(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, "AddPropertyContact", err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toContactResponse(*contact))
}
