package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port/usecases_port"
)

type consultantMutation func(ctx context.Context, consultantID, propertyID int64) (*domain.Consultant, error)
type propertyMutation func(ctx context.Context, propertyID, otherID int64) (*domain.Property, error)

// AssociationHandler exposes the association families under the consultant,
// user and property resources.
type AssociationHandler struct {
	graph      usecases_port.RelationshipGraphUseCase
	properties usecases_port.PropertyUseCase
	users      usecases_port.UserUseCase

	consultantAdd    map[domain.AssociationFamily]consultantMutation
	consultantRemove map[domain.AssociationFamily]consultantMutation
	propertyAdd      map[domain.AssociationFamily]propertyMutation
	propertyRemove   map[domain.AssociationFamily]propertyMutation
}

func NewAssociationHandler(graph usecases_port.RelationshipGraphUseCase, properties usecases_port.PropertyUseCase, users usecases_port.UserUseCase) *AssociationHandler {
	return &AssociationHandler{
		graph:      graph,
		properties: properties,
		users:      users,
		consultantAdd: map[domain.AssociationFamily]consultantMutation{
			domain.FamilyAssigned:   graph.AddAssigned,
			domain.FamilyHistorical: graph.AddHistorical,
			domain.FamilyCommission: graph.AddCommission,
		},
		consultantRemove: map[domain.AssociationFamily]consultantMutation{
			domain.FamilyAssigned:   graph.RemoveAssigned,
			domain.FamilyHistorical: graph.RemoveHistorical,
			domain.FamilyCommission: graph.RemoveCommission,
		},
		propertyAdd: map[domain.AssociationFamily]propertyMutation{
			domain.FamilyInterested: graph.AddInterested,
			domain.FamilyTransacted: graph.AddTransacted,
			domain.FamilyRelated:    graph.AddRelated,
		},
		propertyRemove: map[domain.AssociationFamily]propertyMutation{
			domain.FamilyInterested: graph.RemoveInterested,
			domain.FamilyTransacted: graph.RemoveTransacted,
			domain.FamilyRelated:    graph.RemoveRelated,
		},
	}
}

func familyParam(r *http.Request) (domain.AssociationFamily, error) {
	return domain.ParseAssociationFamily(chi.URLParam(r, "family"))
}

func wrongSide(family domain.AssociationFamily, kind domain.EntityKind) error {
	return domain.NewValidationError(fmt.Sprintf("association %q does not apply to %s", family, kind.Title()))
}

// --- /consultants/{id}/properties/{family} ---

func (h *AssociationHandler) ConsultantProperties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "ConsultantAssociations", err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, "ConsultantAssociations", err)
		return
	}
	properties, err := h.graph.ConsultantProperties(r.Context(), id, family)
	if err != nil {
		writeError(w, r, "ConsultantAssociations", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(properties, toPropertyResponse))
}

func (h *AssociationHandler) AddConsultantProperty(w http.ResponseWriter, r *http.Request) {
	h.mutateConsultant(w, r, "AddConsultantAssociation", h.consultantAdd, func(r *http.Request) (int64, error) {
		var req AssociationRequest
		err := decodeBody(w, r, "Association", &req)
		return req.ID, err
	})
}

func (h *AssociationHandler) RemoveConsultantProperty(w http.ResponseWriter, r *http.Request) {
	h.mutateConsultant(w, r, "RemoveConsultantAssociation", h.consultantRemove, func(r *http.Request) (int64, error) {
		return pathID(r, "otherID")
	})
}

func (h *AssociationHandler) mutateConsultant(w http.ResponseWriter, r *http.Request, name string,
	ops map[domain.AssociationFamily]consultantMutation, other func(*http.Request) (int64, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	op, ok := ops[family]
	if !ok {
		writeError(w, r, name, wrongSide(family, domain.KindConsultant))
		return
	}
	otherID, err := other(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}

	consultant, err := op(r.Context(), id, otherID)
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toConsultantResponse(*consultant))
}

// --- /users/{id}/properties/{family} ---

func (h *AssociationHandler) UserProperties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "UserAssociations", err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, "UserAssociations", err)
		return
	}
	properties, err := h.graph.UserProperties(r.Context(), id, family)
	if err != nil {
		writeError(w, r, "UserAssociations", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(properties, toPropertyResponse))
}

func (h *AssociationHandler) AddUserProperty(w http.ResponseWriter, r *http.Request) {
	h.mutateUser(w, r, "AddUserAssociation", h.graph.Link, func(r *http.Request) (int64, error) {
		var req AssociationRequest
		err := decodeBody(w, r, "Association", &req)
		return req.ID, err
	})
}

func (h *AssociationHandler) RemoveUserProperty(w http.ResponseWriter, r *http.Request) {
	h.mutateUser(w, r, "RemoveUserAssociation", h.graph.Unlink, func(r *http.Request) (int64, error) {
		return pathID(r, "otherID")
	})
}

type linkFunc func(ctx context.Context, family domain.AssociationFamily, side domain.Side, ownerID, otherID int64) error

func (h *AssociationHandler) mutateUser(w http.ResponseWriter, r *http.Request, name string,
	op linkFunc, other func(*http.Request) (int64, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	if family.MemberKind() != domain.KindUser {
		writeError(w, r, name, wrongSide(family, domain.KindUser))
		return
	}
	otherID, err := other(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}

	if err := op(r.Context(), family, domain.SideMember, id, otherID); err != nil {
		writeError(w, r, name, err)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// --- /properties/{id}/{family} ---

// PropertyMembers lists the other end of the family: consultants, users or
// related properties.
func (h *AssociationHandler) PropertyMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "PropertyAssociations", err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, "PropertyAssociations", err)
		return
	}

	switch family.MemberKind() {
	case domain.KindConsultant:
		consultants, err := h.graph.PropertyConsultants(r.Context(), id, family)
		if err != nil {
			writeError(w, r, "PropertyAssociations", err)
			return
		}
		RespondWithJSON(w, http.StatusOK, mapSlice(consultants, toConsultantResponse))
	case domain.KindUser:
		users, err := h.graph.PropertyUsers(r.Context(), id, family)
		if err != nil {
			writeError(w, r, "PropertyAssociations", err)
			return
		}
		RespondWithJSON(w, http.StatusOK, mapSlice(users, toUserResponse))
	default:
		properties, err := h.graph.RelatedProperties(r.Context(), id)
		if err != nil {
			writeError(w, r, "PropertyAssociations", err)
			return
		}
		RespondWithJSON(w, http.StatusOK, mapSlice(properties, toPropertyResponse))
	}
}

func (h *AssociationHandler) AddPropertyMember(w http.ResponseWriter, r *http.Request) {
	h.mutateProperty(w, r, "AddPropertyAssociation", h.propertyAdd, h.graph.Link, func(r *http.Request) (int64, error) {
		var req AssociationRequest
		err := decodeBody(w, r, "Association", &req)
		return req.ID, err
	})
}

func (h *AssociationHandler) RemovePropertyMember(w http.ResponseWriter, r *http.Request) {
	h.mutateProperty(w, r, "RemovePropertyAssociation", h.propertyRemove, h.graph.Unlink, func(r *http.Request) (int64, error) {
		return pathID(r, "otherID")
	})
}

// mutateProperty answers with the updated property. Consultant families have
// no property-owned operation, so they go through the generic link.
func (h *AssociationHandler) mutateProperty(w http.ResponseWriter, r *http.Request, name string,
	ops map[domain.AssociationFamily]propertyMutation, generic linkFunc, other func(*http.Request) (int64, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	family, err := familyParam(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	otherID, err := other(r)
	if err != nil {
		writeError(w, r, name, err)
		return
	}

	var property *domain.Property
	if op, ok := ops[family]; ok {
		property, err = op(r.Context(), id, otherID)
	} else if err = generic(r.Context(), family, domain.SideProperty, id, otherID); err == nil {
		property, err = h.properties.Get(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, name, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}
