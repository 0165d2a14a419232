package usecase

import (
	"context"
	"testing"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCombinesPredicatesWithAnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.seedProperties(t, 12, func(i int, in *domain.PropertyInput) {
		in.Bedrooms = i % 5
		if i%2 == 0 {
			in.Status = domain.PropertyStatusSold
		}
	})

	page, err := h.finder.Execute(ctx, domain.PropertyFilter{
		Status:      ptr(domain.PropertyStatusAvailable),
		MinBedrooms: ptr(3),
	}, domain.PageRequest{Page: 0, Size: 50})
	require.NoError(t, err)

	// odd i with i%5 >= 3: 3, 9
	require.Len(t, page.Items, 2)
	for _, p := range page.Items {
		assert.Equal(t, domain.PropertyStatusAvailable, p.Status)
		assert.GreaterOrEqual(t, p.Bedrooms, 3)
	}
	assert.Equal(t, int64(2), page.TotalCount)

	all, err := h.finder.Execute(ctx, domain.PropertyFilter{}, domain.PageRequest{Page: 0, Size: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(12), all.TotalCount, "no filter means no restriction")
}

func TestFilterPagesAreStable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.seedProperties(t, 23, func(i int, in *domain.PropertyInput) {
		if i%3 == 0 {
			in.Type = domain.PropertyTypeHouse
		}
	})

	filter := domain.PropertyFilter{Type: ptr(domain.PropertyTypeApartment)}
	first, err := h.finder.Execute(ctx, filter, domain.PageRequest{Page: 0, Size: 4})
	require.NoError(t, err)
	require.Equal(t, int64(15), first.TotalCount)
	require.Equal(t, 4, first.TotalPages)

	seen := make(map[int64]bool)
	var order []int64
	for page := 0; page < first.TotalPages; page++ {
		got, err := h.finder.Execute(ctx, filter, domain.PageRequest{Page: page, Size: 4})
		require.NoError(t, err)
		for _, p := range got.Items {
			assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
			seen[p.ID] = true
			order = append(order, p.ID)
		}
	}
	assert.Len(t, order, 15)
	assert.IsIncreasing(t, order)

	beyond, err := h.finder.Execute(ctx, filter, domain.PageRequest{Page: 10, Size: 4})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(15), beyond.TotalCount)
}

func TestFilterHugePageIndexIsPastTheEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedProperties(t, 3, nil)

	var page *domain.Page[domain.Property]
	require.NotPanics(t, func() {
		var err error
		page, err = h.finder.Execute(ctx, domain.PropertyFilter{}, domain.PageRequest{Page: 461168601842738791, Size: 20})
		require.NoError(t, err)
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestFilterRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.finder.Execute(ctx, domain.PropertyFilter{AreaMin: ptr(90.0), AreaMax: ptr(10.0)}, domain.PageRequest{Size: 10})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.finder.Execute(ctx, domain.PropertyFilter{}, domain.PageRequest{Size: 1000})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
