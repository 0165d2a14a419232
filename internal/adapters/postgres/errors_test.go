package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

func TestTranslateUniqueViolation(t *testing.T) {
	user := &domain.User{Email: "bruno@mail.com", NationalID: "11122233344"}

	tests := []struct {
		name       string
		constraint string
		values     uniqueValues
		wantKind   domain.EntityKind
		wantField  string
		wantValue  string
	}{
		{
			name:       "user national id",
			constraint: "users_national_id_key",
			values:     userUniqueValues(user),
			wantKind:   domain.KindUser,
			wantField:  "national ID",
			wantValue:  "11122233344",
		},
		{
			name:       "user email",
			constraint: "users_email_key",
			values:     userUniqueValues(user),
			wantKind:   domain.KindUser,
			wantField:  "email",
			wantValue:  "bruno@mail.com",
		},
		{
			name:       "property title",
			constraint: "properties_title_key",
			values:     propertyUniqueValues(&domain.Property{Title: "Loft A"}),
			wantKind:   domain.KindProperty,
			wantField:  "title",
			wantValue:  "Loft A",
		},
		{
			name:       "consultant email",
			constraint: "consultants_email_key",
			values:     consultantUniqueValues(&domain.Consultant{Email: "c1@x.com"}),
			wantKind:   domain.KindConsultant,
			wantField:  "email",
			wantValue:  "c1@x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: "23505", ConstraintName: tt.constraint}
			err := translateError(fmt.Errorf("insert: %w", pgErr), tt.values)

			var conflict *domain.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, tt.wantKind, conflict.Kind)
			assert.Equal(t, tt.wantField, conflict.Field)
			assert.Equal(t, tt.wantValue, conflict.Value)
		})
	}
}

func TestTranslateErrorLeavesOtherErrors(t *testing.T) {
	other := errors.New("connection reset")
	assert.Same(t, other, translateError(other, nil))

	fk := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, translateError(fk, nil), domain.ErrConflict)
}
