package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.PropertyFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filter:    domain.PropertyFilter{},
			wantWhere: "",
			wantArgs:  []interface{}{},
		},
		{
			name: "status and bedrooms",
			filter: domain.PropertyFilter{
				Status:      ptr(domain.PropertyStatusAvailable),
				MinBedrooms: ptr(3),
			},
			wantWhere: "WHERE p.status = $1 AND p.bedrooms >= $2",
			wantArgs:  []interface{}{"AVAILABLE", 3},
		},
		{
			name: "every predicate",
			filter: domain.PropertyFilter{
				Status:      ptr(domain.PropertyStatusRented),
				Type:        ptr(domain.PropertyTypeLand),
				PriceMin:    ptr(10.0),
				PriceMax:    ptr(20.0),
				Category:    ptr("Rural"),
				AreaMin:     ptr(100.0),
				AreaMax:     ptr(500.0),
				MinBedrooms: ptr(0),
			},
			wantWhere: "WHERE p.status = $1 AND p.type = $2 AND p.price >= $3 AND p.price <= $4" +
				" AND p.category = $5 AND p.area >= $6 AND p.area <= $7 AND p.bedrooms >= $8",
			wantArgs: []interface{}{"RENTED", "LAND", 10.0, 20.0, "Rural", 100.0, 500.0, 0},
		},
		{
			name:      "only upper price bound",
			filter:    domain.PropertyFilter{PriceMax: ptr(99.5)},
			wantWhere: "WHERE p.price <= $1",
			wantArgs:  []interface{}{99.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := applyFilters(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCanonicalRelatedPair(t *testing.T) {
	a, b := canonical(domain.FamilyRelated, 9, 4)
	assert.Equal(t, int64(4), a)
	assert.Equal(t, int64(9), b)

	a, b = canonical(domain.FamilyAssigned, 9, 4)
	assert.Equal(t, int64(9), a, "only the related family is unordered")
	assert.Equal(t, int64(4), b)
}

func TestEveryFamilyHasAJoinTable(t *testing.T) {
	for _, family := range domain.AllFamilies() {
		_, err := tableFor(family)
		assert.NoError(t, err, family)
	}
	_, err := tableFor("friends")
	assert.Error(t, err)
}

func TestMembersQuery(t *testing.T) {
	related, _ := tableFor(domain.FamilyRelated)
	assert.Equal(t,
		"SELECT property_b FROM property_relations WHERE property_a = $1 UNION SELECT property_a FROM property_relations WHERE property_b = $1 ORDER BY 1",
		membersQuery(related, domain.FamilyRelated))

	interested, _ := tableFor(domain.FamilyInterested)
	assert.Equal(t,
		"SELECT user_id FROM property_interested_users WHERE property_id = $1 ORDER BY 1",
		membersQuery(interested, domain.FamilyInterested))
}
