package usecase

import (
	"context"
	"testing"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignedScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c1 := h.consultant(t, "c1@x.com")
	p1 := h.property(t, "Loft A")

	c, err := h.graph.AddAssigned(ctx, c1.ID, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID}, c.Links.AssignedPropertyIDs)

	p, err := h.properties.Get(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{c1.ID}, p.Links.AssignedConsultantIDs)

	c, err = h.graph.RemoveAssigned(ctx, c1.ID, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, c.Links.AssignedPropertyIDs)

	p, err = h.properties.Get(ctx, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Links.AssignedConsultantIDs)

	_, err = h.graph.RemoveAssigned(ctx, c1.ID, p1.ID)
	assert.NoError(t, err, "removing an absent member is a no-op")
}

func TestSymmetryForEveryFamily(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c := h.consultant(t, "c@x.com")
	u := h.user(t, "u@x.com", "11122233344")
	p := h.property(t, "House One")
	other := h.property(t, "House Two")

	_, err := h.graph.AddAssigned(ctx, c.ID, p.ID)
	require.NoError(t, err)
	_, err = h.graph.AddHistorical(ctx, c.ID, p.ID)
	require.NoError(t, err)
	_, err = h.graph.AddCommission(ctx, c.ID, p.ID)
	require.NoError(t, err)
	_, err = h.graph.AddInterested(ctx, p.ID, u.ID)
	require.NoError(t, err)
	_, err = h.graph.AddTransacted(ctx, p.ID, u.ID)
	require.NoError(t, err)
	_, err = h.graph.AddRelated(ctx, p.ID, other.ID)
	require.NoError(t, err)

	gotP, err := h.properties.Get(ctx, p.ID)
	require.NoError(t, err)
	gotC, err := h.consultants.Get(ctx, c.ID)
	require.NoError(t, err)
	gotU, err := h.users.Get(ctx, u.ID)
	require.NoError(t, err)
	gotOther, err := h.properties.Get(ctx, other.ID)
	require.NoError(t, err)

	for _, family := range domain.ConsultantFamilies() {
		assert.Equal(t, []int64{c.ID}, gotP.Links.Members(family), family)
		assert.Equal(t, []int64{p.ID}, gotC.Links.Properties(family), family)
	}
	for _, family := range domain.UserFamilies() {
		assert.Equal(t, []int64{u.ID}, gotP.Links.Members(family), family)
		assert.Equal(t, []int64{p.ID}, gotU.Links.Properties(family), family)
	}
	assert.Equal(t, []int64{other.ID}, gotP.Links.RelatedPropertyIDs)
	assert.Equal(t, []int64{p.ID}, gotOther.Links.RelatedPropertyIDs)

	_, err = h.graph.RemoveRelated(ctx, other.ID, p.ID)
	require.NoError(t, err)
	gotP, err = h.properties.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, gotP.Links.RelatedPropertyIDs, "removal from either side clears both")
}

func TestAddIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u := h.user(t, "u@x.com", "11122233344")
	p := h.property(t, "Loft B")

	first, err := h.graph.AddInterested(ctx, p.ID, u.ID)
	require.NoError(t, err)
	second, err := h.graph.AddInterested(ctx, p.ID, u.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Links.InterestedUserIDs, second.Links.InterestedUserIDs)
	assert.Equal(t, []int64{u.ID}, second.Links.InterestedUserIDs)
}

func TestRelatedToSelfIsIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.property(t, "Loft C")
	got, err := h.graph.AddRelated(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Links.RelatedPropertyIDs)
}

func TestGraphResolvesOwnerBeforeOther(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.property(t, "Loft D")
	c := h.consultant(t, "c@x.com")

	_, err := h.graph.AddAssigned(ctx, 999, 888)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindConsultant, nf.Kind)
	assert.Equal(t, int64(999), nf.ID)

	_, err = h.graph.AddAssigned(ctx, c.ID, 888)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Property invalid or not found")

	_, err = h.graph.AddInterested(ctx, p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "User invalid or not found")

	_, err = h.graph.RemoveTransacted(ctx, 12345, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenericLinkFromEitherSide(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c := h.consultant(t, "c@x.com")
	p := h.property(t, "Loft E")

	require.NoError(t, h.graph.Link(ctx, domain.FamilyCommission, domain.SideProperty, p.ID, c.ID))
	props, err := h.graph.ConsultantProperties(ctx, c.ID, domain.FamilyCommission)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "Loft E", props[0].Title)

	require.NoError(t, h.graph.Unlink(ctx, domain.FamilyCommission, domain.SideMember, c.ID, p.ID))
	consultants, err := h.graph.PropertyConsultants(ctx, p.ID, domain.FamilyCommission)
	require.NoError(t, err)
	assert.Empty(t, consultants)
}

func TestListingsRejectUnknownOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.graph.ConsultantProperties(ctx, 42, domain.FamilyAssigned)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.graph.PropertyUsers(ctx, 42, domain.FamilyInterested)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.graph.ConsultantProperties(ctx, 42, domain.FamilyInterested)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInterestedCapacity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.property(t, "Popular Loft")
	links := h.store.Associations()
	for i := int64(1); i <= domain.MaxInterestedPerProperty; i++ {
		_, err := links.Add(ctx, domain.FamilyInterested, p.ID, 1000+i)
		require.NoError(t, err)
	}

	u := h.user(t, "late@x.com", "99988877766")
	_, err := h.graph.AddInterested(ctx, p.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.graph.RemoveInterested(ctx, p.ID, u.ID)
	assert.NoError(t, err)
}
