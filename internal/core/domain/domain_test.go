package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validProperty() PropertyInput {
	return PropertyInput{
		Title:       "Loft A",
		Description: "Bright loft near the river",
		Price:       100000,
		Address:     "Rua das Flores, 10",
		Type:        PropertyTypeApartment,
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        64.5,
		Status:      PropertyStatusAvailable,
		Category:    "Residential",
	}
}

func TestPropertyInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *PropertyInput)
		wantErr string
	}{
		{name: "valid", mutate: func(in *PropertyInput) {}},
		{name: "missing title", mutate: func(in *PropertyInput) { in.Title = " " }, wantErr: "title is required"},
		{name: "zero price", mutate: func(in *PropertyInput) { in.Price = 0 }, wantErr: "price must be positive"},
		{name: "negative bedrooms", mutate: func(in *PropertyInput) { in.Bedrooms = -1 }, wantErr: "bedrooms must not be negative"},
		{name: "unknown type", mutate: func(in *PropertyInput) { in.Type = "CASTLE" }, wantErr: "type must be one of HOUSE, APARTMENT, LAND, COMMERCIAL"},
		{name: "bad image url", mutate: func(in *PropertyInput) { in.ImageURL = "not a url" }, wantErr: "imageUrl must be a valid URL"},
		{name: "image url ok", mutate: func(in *PropertyInput) { in.ImageURL = "https://cdn.example.com/a.jpg" }},
		{name: "short category", mutate: func(in *PropertyInput) { in.Category = "R" }, wantErr: "category must be between 2 and 50 characters"},
		{name: "zero owner", mutate: func(in *PropertyInput) { in.OwnerID = ptr(int64(0)) }, wantErr: "ownerId must be a positive identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProperty()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidationStopsAtFirstViolation(t *testing.T) {
	in := UserInput{}
	err := in.Validate()
	require.Error(t, err)
	assert.Equal(t, "email is required", err.Error())
}

func TestUserInputValidate(t *testing.T) {
	in := UserInput{
		Email:      "ana@example.com",
		Password:   "secret1",
		Name:       "Ana Souza",
		Phone:      "11987654321",
		NationalID: "11122233344",
	}
	assert.NoError(t, in.Validate())

	in.NationalID = "123"
	assert.EqualError(t, in.Validate(), "nationalId must have exactly 11 digits")

	in.NationalID = "11122233344"
	in.Name = "Ana 2"
	assert.EqualError(t, in.Validate(), "name must contain only letters and spaces")

	in.Name = "Ana"
	in.Password = "123"
	assert.EqualError(t, in.Validate(), "password must be between 6 and 255 characters")
}

func TestConsultantInputValidate(t *testing.T) {
	in := ConsultantInput{Name: "Joao Lima", Email: "c1@x.com"}
	assert.NoError(t, in.Validate(), "phone is optional")

	in.Phone = "123456789"
	assert.EqualError(t, in.Validate(), "phone must have 10 or 11 digits")

	in.Phone = "1234567890"
	in.Email = "not-an-email"
	assert.EqualError(t, in.Validate(), "email must be a valid email address")
}

func TestContactInputValidate(t *testing.T) {
	in := ContactInput{Email: "lead@x.com", Message: "Is it still available?"}
	assert.NoError(t, in.Validate())

	in.Status = "LOST"
	assert.ErrorIs(t, in.Validate(), ErrValidation)

	in.Status = ContactStatusClosed
	in.Message = "x"
	assert.EqualError(t, in.Validate(), "message must be between 2 and 1000 characters")
}

func TestContactApplyDefaultsStatus(t *testing.T) {
	var c Contact
	c.Apply(ContactInput{Email: "lead@x.com", Message: "hi there"})
	assert.Equal(t, ContactStatusPending, c.Status)

	c.Apply(ContactInput{Email: "lead@x.com", Message: "hi there", Status: ContactStatusAnswered})
	assert.Equal(t, ContactStatusAnswered, c.Status)
}

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.Apply(UserInput{Email: "a@x.com", Password: "secret1"}))

	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("secret2"))
}

func TestPropertyFilterMatches(t *testing.T) {
	p := Property{
		Status:   PropertyStatusAvailable,
		Type:     PropertyTypeHouse,
		Price:    250000,
		Category: "Residential",
		Area:     120,
		Bedrooms: 3,
	}

	tests := []struct {
		name   string
		filter PropertyFilter
		want   bool
	}{
		{name: "empty filter", filter: PropertyFilter{}, want: true},
		{name: "status and bedrooms", filter: PropertyFilter{Status: ptr(PropertyStatusAvailable), MinBedrooms: ptr(3)}, want: true},
		{name: "bedrooms above", filter: PropertyFilter{MinBedrooms: ptr(4)}, want: false},
		{name: "other status", filter: PropertyFilter{Status: ptr(PropertyStatusSold)}, want: false},
		{name: "price inclusive bounds", filter: PropertyFilter{PriceMin: ptr(250000.0), PriceMax: ptr(250000.0)}, want: true},
		{name: "price below min", filter: PropertyFilter{PriceMin: ptr(300000.0)}, want: false},
		{name: "category is exact", filter: PropertyFilter{Category: ptr("residential")}, want: false},
		{name: "area range", filter: PropertyFilter{AreaMin: ptr(100.0), AreaMax: ptr(119.9)}, want: false},
		{name: "type", filter: PropertyFilter{Type: ptr(PropertyTypeHouse)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestPropertyFilterValidate(t *testing.T) {
	assert.NoError(t, PropertyFilter{}.Validate())
	assert.ErrorIs(t, PropertyFilter{PriceMin: ptr(10.0), PriceMax: ptr(5.0)}.Validate(), ErrValidation)
	assert.ErrorIs(t, PropertyFilter{MinBedrooms: ptr(-1)}.Validate(), ErrValidation)
	assert.ErrorIs(t, PropertyFilter{Status: ptr(PropertyStatus("GONE"))}.Validate(), ErrValidation)
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](nil, PageRequest{Page: 0, Size: 10}, 0)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)

	page = NewPage([]int{1, 2, 3}, PageRequest{Page: 1, Size: 3}, 7)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(7), page.TotalCount)
	assert.Equal(t, 3, PageRequest{Page: 1, Size: 3}.Offset())
}

func TestPageRequestValidate(t *testing.T) {
	assert.NoError(t, PageRequest{Page: 0, Size: 20}.Validate(100))
	assert.ErrorIs(t, PageRequest{Page: -1, Size: 20}.Validate(100), ErrValidation)
	assert.ErrorIs(t, PageRequest{Page: 0, Size: 0}.Validate(100), ErrValidation)
	assert.ErrorIs(t, PageRequest{Page: 0, Size: 101}.Validate(100), ErrValidation)
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 60, PageRequest{Page: 3, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: 461168601842738791, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Size: 2}.Offset())
}

func TestErrorKinds(t *testing.T) {
	var err error = NewNotFoundError(KindConsultant, 7)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "consultant with id 7 not found", err.Error())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(7), nf.ID)

	err = NewConflictError(KindUser, "national ID", "11122233344")
	assert.ErrorIs(t, err, ErrConflict)

	assert.ErrorIs(t, ErrEmailNotFound, ErrUnauthorized)
	assert.ErrorIs(t, ErrIncorrectPassword, ErrUnauthorized)
	assert.NotEqual(t, ErrEmailNotFound.Error(), ErrIncorrectPassword.Error())
}

func TestAssociationFamilies(t *testing.T) {
	f, err := ParseAssociationFamily("commission")
	require.NoError(t, err)
	assert.Equal(t, KindConsultant, f.MemberKind())

	_, err = ParseAssociationFamily("friends")
	assert.ErrorIs(t, err, ErrValidation)

	owner, other := FamilyInterested.Ends(SideMember)
	assert.Equal(t, KindUser, owner)
	assert.Equal(t, KindProperty, other)
	assert.True(t, FamilyRelated.SelfReferential())
	assert.Len(t, AllFamilies(), 6)
}
