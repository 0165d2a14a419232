package rest

import (
	"net/http"

	"github.com/MinYonhee/api-urban-valle/internal/core/port/usecases_port"
)

type UserHandler struct {
	users           usecases_port.UserUseCase
	properties      usecases_port.PropertyUseCase
	contacts        usecases_port.ContactUseCase
	defaultPageSize int
}

func NewUserHandler(users usecases_port.UserUseCase, properties usecases_port.PropertyUseCase, contacts usecases_port.ContactUseCase, defaultPageSize int) *UserHandler {
	return &UserHandler{
		users:           users,
		properties:      properties,
		contacts:        contacts,
		defaultPageSize: defaultPageSize,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query(), h.defaultPageSize)
	if err != nil {
		writeError(w, r, "ListUsers", err)
		return
	}
	result, err := h.users.List(r.Context(), page)
	if err != nil {
		writeError(w, r, "ListUsers", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPageResponse(result, toUserResponse))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "GetUser", err)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetUser", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeBody(w, r, "User", &req); err != nil {
		writeError(w, r, "CreateUser", err)
		return
	}
	user, err := h.users.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, "CreateUser", err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UpdateUser", err)
		return
	}
	var req UserRequest
	if err := decodeBody(w, r, "User", &req); err != nil {
		writeError(w, r, "UpdateUser", err)
		return
	}
	user, err := h.users.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, "UpdateUser", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "DeleteUser", err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, "DeleteUser", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /users/login; a wrong email or password answers 401.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, "Login", &req); err != nil {
		writeError(w, r, "Login", err)
		return
	}
	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, "Login", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// OwnedProperties handles GET /users/{id}/properties.
func (h *UserHandler) OwnedProperties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UserProperties", err)
		return
	}
	properties, err := h.properties.OwnedBy(r.Context(), id)
	if err != nil {
		writeError(w, r, "UserProperties", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(properties, toPropertyResponse))
}

// Contacts handles GET /users/{id}/contacts.
func (h *UserHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UserContacts", err)
		return
	}
	contacts, err := h.contacts.ByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, "UserContacts", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(contacts, toContactResponse))
}
