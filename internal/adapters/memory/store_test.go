package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	props := store.Properties()

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, props.Create(ctx, &domain.Property{Title: "Loft A"}))
		_, err := store.Associations().Add(ctx, domain.FamilyRelated, 1, 2)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := props.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	members, err := store.Associations().MembersOf(ctx, domain.FamilyRelated, 1)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestWithinTxNestedJoinsOuter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		return store.WithinTx(ctx, func(ctx context.Context) error {
			return store.Consultants().Create(ctx, &domain.Consultant{Name: "Ana", Email: "a@x.com"})
		})
	})
	require.NoError(t, err)

	c, err := store.Consultants().FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(1), c.ID)
}

func TestRelatedPairIsStoredOnce(t *testing.T) {
	links := NewStore().Associations()
	ctx := context.Background()

	added, err := links.Add(ctx, domain.FamilyRelated, 5, 2)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = links.Add(ctx, domain.FamilyRelated, 2, 5)
	require.NoError(t, err)
	assert.False(t, added, "reverse pair is the same row")

	fromFive, _ := links.MembersOf(ctx, domain.FamilyRelated, 5)
	fromTwo, _ := links.PropertiesOf(ctx, domain.FamilyRelated, 2)
	assert.Equal(t, []int64{2}, fromFive)
	assert.Equal(t, []int64{5}, fromTwo)

	require.NoError(t, links.DetachMember(ctx, domain.KindProperty, 2))
	fromFive, _ = links.MembersOf(ctx, domain.FamilyRelated, 5)
	assert.Empty(t, fromFive)
}

func TestDetachMemberOnlyTouchesItsFamilies(t *testing.T) {
	links := NewStore().Associations()
	ctx := context.Background()

	_, _ = links.Add(ctx, domain.FamilyAssigned, 1, 7)
	_, _ = links.Add(ctx, domain.FamilyCommission, 2, 7)
	_, _ = links.Add(ctx, domain.FamilyInterested, 1, 7)

	require.NoError(t, links.DetachMember(ctx, domain.KindConsultant, 7))

	assigned, _ := links.PropertiesOf(ctx, domain.FamilyAssigned, 7)
	commission, _ := links.PropertiesOf(ctx, domain.FamilyCommission, 7)
	interested, _ := links.PropertiesOf(ctx, domain.FamilyInterested, 7)
	assert.Empty(t, assigned)
	assert.Empty(t, commission)
	assert.Equal(t, []int64{1}, interested, "user 7 is a different entity")
}

func TestUniqueColumnsAreEnforced(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@x.com", NationalID: "11122233344"}))
	err := users.Create(ctx, &domain.User{Email: "b@x.com", NationalID: "11122233344"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConcurrentAddsConverge(t *testing.T) {
	links := NewStore().Associations()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = links.Add(ctx, domain.FamilyAssigned, 1, 3)
		}()
	}
	wg.Wait()

	count, err := links.CountMembers(ctx, domain.FamilyAssigned, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
