package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/MinYonhee/api-urban-valle/internal/adapters/memory"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"

	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	NotifyFunc func(ctx context.Context, contact domain.Contact) error
	sent       []domain.Contact
}

func (f *fakeNotifier) NotifyContactCreated(ctx context.Context, contact domain.Contact) error {
	f.sent = append(f.sent, contact)
	if f.NotifyFunc != nil {
		return f.NotifyFunc(ctx, contact)
	}
	return nil
}

type harness struct {
	store       *memory.Store
	graph       *RelationshipGraph
	finder      *FindPropertiesUseCase
	consultants *ConsultantService
	users       *UserService
	properties  *PropertyService
	contacts    *ContactService
	notifier    *fakeNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	props, cons, users, contacts, links := store.Properties(), store.Consultants(), store.Users(), store.Contacts(), store.Associations()
	notifier := &fakeNotifier{}

	return &harness{
		store:       store,
		graph:       NewRelationshipGraph(store, props, cons, users, contacts, links),
		finder:      NewFindPropertiesUseCase(props, 100),
		consultants: NewConsultantService(store, props, cons, users, contacts, links, 100),
		users:       NewUserService(store, props, cons, users, contacts, links, 100),
		properties:  NewPropertyService(store, props, cons, users, contacts, links, 100),
		contacts:    NewContactService(store, props, cons, users, contacts, links, notifier, 100),
		notifier:    notifier,
	}
}

func ptr[T any](v T) *T { return &v }

func (h *harness) consultant(t *testing.T, email string) *domain.Consultant {
	t.Helper()
	c, err := h.consultants.Create(context.Background(), domain.ConsultantInput{
		Name:  "Carla Mendes",
		Email: email,
		Phone: "11987654321",
	})
	require.NoError(t, err)
	return c
}

func userInput(email, nationalID string) domain.UserInput {
	return domain.UserInput{
		Email:      email,
		Password:   "secret1",
		Name:       "Bruno Alves",
		Phone:      "1198765432",
		NationalID: nationalID,
	}
}

func (h *harness) user(t *testing.T, email, nationalID string) *domain.User {
	t.Helper()
	u, err := h.users.Create(context.Background(), userInput(email, nationalID))
	require.NoError(t, err)
	return u
}

func propertyInput(title string) domain.PropertyInput {
	return domain.PropertyInput{
		Title:       title,
		Description: "Listing " + title,
		Price:       100000,
		Address:     "Av. Central, 100",
		Type:        domain.PropertyTypeApartment,
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        70,
		Status:      domain.PropertyStatusAvailable,
		Category:    "Residential",
	}
}

func (h *harness) property(t *testing.T, title string) *domain.Property {
	t.Helper()
	p, err := h.properties.Create(context.Background(), propertyInput(title))
	require.NoError(t, err)
	return p
}

func (h *harness) seedProperties(t *testing.T, n int, mutate func(i int, in *domain.PropertyInput)) {
	t.Helper()
	for i := 0; i < n; i++ {
		in := propertyInput(fmt.Sprintf("Listing %03d", i))
		if mutate != nil {
			mutate(i, &in)
		}
		_, err := h.properties.Create(context.Background(), in)
		require.NoError(t, err)
	}
}
