package domain

import "fmt"

// PropertyFilter - optional predicates of the property search.
// A nil field imposes no constraint; set fields are combined with AND.
type PropertyFilter struct {
	Status      *PropertyStatus
	Type        *PropertyType
	PriceMin    *float64
	PriceMax    *float64
	Category    *string
	AreaMin     *float64
	AreaMax     *float64
	MinBedrooms *int
}

// Validate rejects ranges that can never match and unknown enum values.
func (f PropertyFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return NewValidationError(fmt.Sprintf("invalid status filter %q", *f.Status))
	}
	if f.Type != nil && !f.Type.Valid() {
		return NewValidationError(fmt.Sprintf("invalid type filter %q", *f.Type))
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return NewValidationError("minPrice must not exceed maxPrice")
	}
	if f.AreaMin != nil && f.AreaMax != nil && *f.AreaMin > *f.AreaMax {
		return NewValidationError("minArea must not exceed maxArea")
	}
	if f.MinBedrooms != nil && *f.MinBedrooms < 0 {
		return NewValidationError("minBedrooms must not be negative")
	}
	return nil
}

// IsEmpty reports whether no predicate is set.
func (f PropertyFilter) IsEmpty() bool {
	return f.Status == nil && f.Type == nil && f.PriceMin == nil && f.PriceMax == nil &&
		f.Category == nil && f.AreaMin == nil && f.AreaMax == nil && f.MinBedrooms == nil
}

// Matches evaluates the filter against one property. The SQL store builds
// the same predicates as a WHERE clause.
func (f PropertyFilter) Matches(p Property) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.AreaMin != nil && p.Area < *f.AreaMin {
		return false
	}
	if f.AreaMax != nil && p.Area > *f.AreaMax {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	return true
}
