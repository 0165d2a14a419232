package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

const uniqueViolation = "23505"

// uniqueConstraints maps constraint names from the migrations to the entity
// field they protect.
var uniqueConstraints = map[string]struct {
	kind  domain.EntityKind
	field string
}{
	"properties_title_key":  {domain.KindProperty, "title"},
	"consultants_email_key": {domain.KindConsultant, "email"},
	"users_email_key":       {domain.KindUser, "email"},
	"users_national_id_key": {domain.KindUser, "national ID"},
}

// uniqueValues - the value written to each unique constraint, by constraint name.
type uniqueValues map[string]string

func propertyUniqueValues(p *domain.Property) uniqueValues {
	return uniqueValues{"properties_title_key": p.Title}
}

func consultantUniqueValues(c *domain.Consultant) uniqueValues {
	return uniqueValues{"consultants_email_key": c.Email}
}

func userUniqueValues(u *domain.User) uniqueValues {
	return uniqueValues{
		"users_email_key":       u.Email,
		"users_national_id_key": u.NationalID,
	}
}

// translateError turns a unique_violation into a ConflictError so a race
// between the service-level check and the insert still reports the right kind.
// The reported value is the one bound to the violated constraint.
func translateError(err error, values uniqueValues) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	if c, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
		return domain.NewConflictError(c.kind, c.field, values[pgErr.ConstraintName])
	}
	return domain.NewConflictError(domain.EntityKind(pgErr.TableName), pgErr.ConstraintName, "")
}
