package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultantUniqueEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c1 := h.consultant(t, "c1@x.com")
	c2 := h.consultant(t, "c2@x.com")

	_, err := h.consultants.Create(ctx, domain.ConsultantInput{Name: "Other", Email: "c1@x.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	updated, err := h.consultants.Update(ctx, c1.ID, domain.ConsultantInput{Name: "Carla Souza", Email: "c1@x.com"})
	require.NoError(t, err, "own email is excluded from the duplicate check")
	assert.Equal(t, "Carla Souza", updated.Name)
	assert.Empty(t, updated.Phone, "update replaces every field")

	_, err = h.consultants.Update(ctx, c2.ID, domain.ConsultantInput{Name: "Carla", Email: "c1@x.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = h.consultants.Update(ctx, 99, domain.ConsultantInput{Name: "Carla", Email: "c9@x.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsultantDeleteDetachesReferences(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c := h.consultant(t, "c@x.com")
	p := h.property(t, "Loft A")
	in := userInput("u@x.com", "11122233344")
	in.ConsultantID = &c.ID
	u, err := h.users.Create(ctx, in)
	require.NoError(t, err)
	contact, err := h.contacts.Create(ctx, domain.ContactInput{Email: "lead@x.com", Message: "Call me", ConsultantID: &c.ID})
	require.NoError(t, err)

	_, err = h.graph.AddHistorical(ctx, c.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, h.consultants.Delete(ctx, c.ID))

	gotP, err := h.properties.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, gotP.Links.HistoricalConsultantIDs)

	gotU, err := h.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gotU.ConsultantID)

	gotContact, err := h.contacts.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, gotContact.ConsultantID)

	assert.ErrorIs(t, h.consultants.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestUserNationalIDConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u1 := h.user(t, "u1@x.com", "11122233344")
	_, err := h.users.Create(ctx, userInput("u2@x.com", "11122233344"))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "national ID", conflict.Field)

	_, err = h.users.Update(ctx, u1.ID, userInput("u1@x.com", "11122233344"))
	assert.NoError(t, err)
}

func TestUserRejectsUnknownConsultant(t *testing.T) {
	h := newHarness(t)
	in := userInput("u@x.com", "11122233344")
	in.ConsultantID = ptr(int64(77))

	_, err := h.users.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "consultant not found")
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "u@x.com", "11122233344")

	got, err := h.users.Login(ctx, "u@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, wrongPassword := h.users.Login(ctx, "u@x.com", "nope")
	_, unknownEmail := h.users.Login(ctx, "who@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, domain.ErrUnauthorized)
	assert.NotEqual(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserDeleteCascades(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	owner := h.user(t, "owner@x.com", "11122233344")
	buyer := h.user(t, "buyer@x.com", "55566677788")
	c := h.consultant(t, "c@x.com")

	in := propertyInput("Owned Loft")
	in.OwnerID = &owner.ID
	in.ConsultantIDs = []int64{c.ID}
	owned, err := h.properties.Create(ctx, in)
	require.NoError(t, err)
	other := h.property(t, "Other Loft")

	_, err = h.graph.AddRelated(ctx, owned.ID, other.ID)
	require.NoError(t, err)
	_, err = h.graph.AddInterested(ctx, owned.ID, buyer.ID)
	require.NoError(t, err)
	_, err = h.graph.AddInterested(ctx, other.ID, owner.ID)
	require.NoError(t, err)

	authored, err := h.contacts.Create(ctx, domain.ContactInput{Email: "owner@x.com", Message: "About the other loft", UserID: &owner.ID, PropertyID: &other.ID})
	require.NoError(t, err)
	onOwned, err := h.contacts.AddToProperty(ctx, owned.ID, domain.ContactInput{Email: "lead@x.com", Message: "Still available?"})
	require.NoError(t, err)

	require.NoError(t, h.users.Delete(ctx, owner.ID))

	_, err = h.properties.Get(ctx, owned.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = h.contacts.Get(ctx, authored.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = h.contacts.Get(ctx, onOwned.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gotOther, err := h.properties.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, gotOther.Links.RelatedPropertyIDs)
	assert.Empty(t, gotOther.Links.InterestedUserIDs)

	gotBuyer, err := h.users.Get(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBuyer.Links.InterestedPropertyIDs)

	gotC, err := h.consultants.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, gotC.Links.AssignedPropertyIDs)
}

func TestPropertyCreateAndUpdate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c1 := h.consultant(t, "c1@x.com")
	c2 := h.consultant(t, "c2@x.com")

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.properties.now = func() time.Time { return fixed }

	in := propertyInput("Loft A")
	in.ConsultantIDs = []int64{c1.ID}
	p, err := h.properties.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, fixed, p.RegisteredAt)
	assert.Equal(t, []int64{c1.ID}, p.Links.AssignedConsultantIDs)

	h.properties.now = func() time.Time { return fixed.Add(time.Hour) }
	in.Price = 120000
	in.ConsultantIDs = []int64{c2.ID}
	updated, err := h.properties.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, fixed, updated.RegisteredAt, "registration time never changes")
	assert.Equal(t, 120000.0, updated.Price)
	assert.Equal(t, []int64{c2.ID}, updated.Links.AssignedConsultantIDs)

	_, err = h.properties.Create(ctx, propertyInput("Loft A"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	in.ConsultantIDs = []int64{c2.ID, 404}
	_, err = h.properties.Update(ctx, p.ID, in)
	assert.EqualError(t, err, "consultant not found")

	again, err := h.properties.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{c2.ID}, again.Links.AssignedConsultantIDs, "failed update leaves state untouched")
}

func TestPropertyRejectsUnknownOwner(t *testing.T) {
	h := newHarness(t)
	in := propertyInput("Loft Z")
	in.OwnerID = ptr(int64(5))

	_, err := h.properties.Create(context.Background(), in)
	assert.EqualError(t, err, "owner not found")
}

func TestPropertyDeleteRemovesContactsAndLinks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := h.property(t, "Loft A")
	other := h.property(t, "Loft B")
	_, err := h.graph.AddRelated(ctx, other.ID, p.ID)
	require.NoError(t, err)
	contact, err := h.contacts.AddToProperty(ctx, p.ID, domain.ContactInput{Email: "lead@x.com", Message: "Hello there"})
	require.NoError(t, err)

	require.NoError(t, h.properties.Delete(ctx, p.ID))

	_, err = h.contacts.Get(ctx, contact.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	related, err := h.graph.RelatedProperties(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, related)

	assert.ErrorIs(t, h.properties.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestContactLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.contacts.now = func() time.Time { return created }

	p := h.property(t, "Loft A")
	c, err := h.contacts.AddToProperty(ctx, p.ID, domain.ContactInput{Email: "lead@x.com", Message: "Is it available?"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusPending, c.Status)
	assert.Equal(t, created, c.CreatedAt)
	require.Len(t, h.notifier.sent, 1)
	assert.Equal(t, c.ID, h.notifier.sent[0].ID)

	h.contacts.now = func() time.Time { return created.Add(24 * time.Hour) }
	updated, err := h.contacts.Update(ctx, c.ID, domain.ContactInput{
		Email:      "lead@x.com",
		Message:    "Is it available?",
		Status:     domain.ContactStatusAnswered,
		PropertyID: &p.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusAnswered, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)

	byProperty, err := h.contacts.ByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 1)

	_, err = h.contacts.ByUser(ctx, 31)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.contacts.AddToProperty(ctx, 31, domain.ContactInput{Email: "lead@x.com", Message: "Hello"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRejectsDanglingReferences(t *testing.T) {
	h := newHarness(t)
	_, err := h.contacts.Create(context.Background(), domain.ContactInput{
		Email:   "lead@x.com",
		Message: "Hello",
		UserID:  ptr(int64(3)),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "user not found")
	assert.Empty(t, h.notifier.sent)
}

func TestContactCapacityPerProperty(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.property(t, "Loft A")

	for i := 0; i < domain.MaxContactsPerProperty; i++ {
		_, err := h.contacts.AddToProperty(ctx, p.ID, domain.ContactInput{Email: "lead@x.com", Message: "Hello"})
		require.NoError(t, err)
	}
	_, err := h.contacts.AddToProperty(ctx, p.ID, domain.ContactInput{Email: "lead@x.com", Message: "Hello"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNotificationFailureDoesNotFailCreate(t *testing.T) {
	h := newHarness(t)
	h.notifier.NotifyFunc = func(ctx context.Context, contact domain.Contact) error {
		return errors.New("broker down")
	}

	c, err := h.contacts.Create(context.Background(), domain.ContactInput{Email: "lead@x.com", Message: "Hello"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}
