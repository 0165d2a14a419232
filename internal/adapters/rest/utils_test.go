package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewNotFoundError(domain.KindUser, 3), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.NewValidationError("bad")), http.StatusBadRequest},
		{domain.NewConflictError(domain.KindConsultant, "email", "a@b.com"), http.StatusConflict},
		{domain.ErrIncorrectPassword, http.StatusUnauthorized},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestParsePropertyFilter(t *testing.T) {
	query, err := url.ParseQuery("status=rented&type=LAND&minPrice=10.5&category=Rural&maxArea=300&minBedrooms=2")
	require.NoError(t, err)

	filter, err := parsePropertyFilter(query)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusRented, *filter.Status)
	assert.Equal(t, domain.PropertyTypeLand, *filter.Type)
	assert.Equal(t, 10.5, *filter.PriceMin)
	assert.Nil(t, filter.PriceMax)
	assert.Equal(t, "Rural", *filter.Category)
	assert.Nil(t, filter.AreaMin)
	assert.Equal(t, 300.0, *filter.AreaMax)
	assert.Equal(t, 2, *filter.MinBedrooms)

	empty, err := parsePropertyFilter(url.Values{})
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestParsePage(t *testing.T) {
	page, err := parsePage(url.Values{}, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.PageRequest{Page: 0, Size: 20}, page)

	page, err = parsePage(url.Values{"page": {"3"}, "size": {"7"}}, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.PageRequest{Page: 3, Size: 7}, page)

	_, err = parsePage(url.Values{"size": {"many"}}, 20)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
