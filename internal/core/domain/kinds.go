package domain

import (
	"fmt"
	"strings"
)

// EntityKind - the four entity kinds held by the store.
type EntityKind string

const (
	KindProperty   EntityKind = "property"
	KindConsultant EntityKind = "consultant"
	KindUser       EntityKind = "user"
	KindContact    EntityKind = "contact"
)

// Title returns a capitalised kind for human-readable messages.
func (k EntityKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// PropertyType - closed set of property types.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeLand       PropertyType = "LAND"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
)

// ParsePropertyType accepts the canonical names case-insensitively.
func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(strings.ToUpper(strings.TrimSpace(s))) {
	case PropertyTypeHouse:
		return PropertyTypeHouse, nil
	case PropertyTypeApartment:
		return PropertyTypeApartment, nil
	case PropertyTypeLand:
		return PropertyTypeLand, nil
	case PropertyTypeCommercial:
		return PropertyTypeCommercial, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown property type %q", s))
	}
}

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLand, PropertyTypeCommercial:
		return true
	}
	return false
}

// Description is the display label used by the listing front-end.
func (t PropertyType) Description() string {
	switch t {
	case PropertyTypeHouse:
		return "Residential house"
	case PropertyTypeApartment:
		return "Apartment"
	case PropertyTypeLand:
		return "Land"
	case PropertyTypeCommercial:
		return "Commercial"
	default:
		return ""
	}
}

// PropertyStatus - closed set of listing states.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "AVAILABLE"
	PropertyStatusSold      PropertyStatus = "SOLD"
	PropertyStatusRented    PropertyStatus = "RENTED"
	PropertyStatusPending   PropertyStatus = "PENDING"
)

func ParsePropertyStatus(s string) (PropertyStatus, error) {
	switch PropertyStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case PropertyStatusAvailable:
		return PropertyStatusAvailable, nil
	case PropertyStatusSold:
		return PropertyStatusSold, nil
	case PropertyStatusRented:
		return PropertyStatusRented, nil
	case PropertyStatusPending:
		return PropertyStatusPending, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown property status %q", s))
	}
}

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold, PropertyStatusRented, PropertyStatusPending:
		return true
	}
	return false
}

func (s PropertyStatus) Description() string {
	switch s {
	case PropertyStatusAvailable:
		return "Available"
	case PropertyStatusSold:
		return "Sold"
	case PropertyStatusRented:
		return "Rented"
	case PropertyStatusPending:
		return "Pending"
	default:
		return ""
	}
}

// ContactStatus - workflow of an inquiry.
type ContactStatus string

const (
	ContactStatusPending    ContactStatus = "PENDING"
	ContactStatusInProgress ContactStatus = "IN_PROGRESS"
	ContactStatusAnswered   ContactStatus = "ANSWERED"
	ContactStatusClosed     ContactStatus = "CLOSED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusPending, ContactStatusInProgress, ContactStatusAnswered, ContactStatusClosed:
		return true
	}
	return false
}
