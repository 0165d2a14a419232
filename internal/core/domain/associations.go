package domain

import "fmt"

// AssociationFamily - one of the six many-to-many sets around a property.
// Every family is stored as rows of (property, member); the member kind
// depends on the family.
type AssociationFamily string

const (
	FamilyAssigned   AssociationFamily = "assigned"
	FamilyHistorical AssociationFamily = "historical"
	FamilyCommission AssociationFamily = "commission"
	FamilyInterested AssociationFamily = "interested"
	FamilyTransacted AssociationFamily = "transacted"
	FamilyRelated    AssociationFamily = "related"
)

// AllFamilies lists every family in a fixed order.
func AllFamilies() []AssociationFamily {
	return []AssociationFamily{
		FamilyAssigned, FamilyHistorical, FamilyCommission,
		FamilyInterested, FamilyTransacted, FamilyRelated,
	}
}

// ConsultantFamilies are the property/consultant families.
func ConsultantFamilies() []AssociationFamily {
	return []AssociationFamily{FamilyAssigned, FamilyHistorical, FamilyCommission}
}

// UserFamilies are the property/user families.
func UserFamilies() []AssociationFamily {
	return []AssociationFamily{FamilyInterested, FamilyTransacted}
}

func ParseAssociationFamily(s string) (AssociationFamily, error) {
	switch AssociationFamily(s) {
	case FamilyAssigned:
		return FamilyAssigned, nil
	case FamilyHistorical:
		return FamilyHistorical, nil
	case FamilyCommission:
		return FamilyCommission, nil
	case FamilyInterested:
		return FamilyInterested, nil
	case FamilyTransacted:
		return FamilyTransacted, nil
	case FamilyRelated:
		return FamilyRelated, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown association %q", s))
	}
}

// MemberKind is the kind on the non-property side of the family.
func (f AssociationFamily) MemberKind() EntityKind {
	switch f {
	case FamilyAssigned, FamilyHistorical, FamilyCommission:
		return KindConsultant
	case FamilyInterested, FamilyTransacted:
		return KindUser
	case FamilyRelated:
		return KindProperty
	}
	return ""
}

// SelfReferential reports whether both ends are properties.
func (f AssociationFamily) SelfReferential() bool {
	return f == FamilyRelated
}

// Side - which end of the family the caller names as owner.
type Side int

const (
	// SideProperty: the owner is the property, the other end is the member.
	SideProperty Side = iota
	// SideMember: the owner is the member (consultant or user), the other end is the property.
	SideMember
)

// Ends resolves owner and other kinds for the family seen from the given side.
func (f AssociationFamily) Ends(side Side) (owner, other EntityKind) {
	if side == SideMember {
		return f.MemberKind(), KindProperty
	}
	return KindProperty, f.MemberKind()
}

// PropertyLimits from the listing rules.
const (
	MaxContactsPerProperty   = 50
	MaxInterestedPerProperty = 100
)
