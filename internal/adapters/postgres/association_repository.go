package postgres

import (
	"context"
	"fmt"

	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// joinTable describes where one association family lives.
type joinTable struct {
	name        string
	propertyCol string
	memberCol   string
}

var joinTables = map[domain.AssociationFamily]joinTable{
	domain.FamilyAssigned:   {"property_assigned_consultants", "property_id", "consultant_id"},
	domain.FamilyHistorical: {"property_historical_consultants", "property_id", "consultant_id"},
	domain.FamilyCommission: {"property_commission_consultants", "property_id", "consultant_id"},
	domain.FamilyInterested: {"property_interested_users", "property_id", "user_id"},
	domain.FamilyTransacted: {"property_transacted_users", "property_id", "user_id"},
	domain.FamilyRelated:    {"property_relations", "property_a", "property_b"},
}

func tableFor(family domain.AssociationFamily) (joinTable, error) {
	t, ok := joinTables[family]
	if !ok {
		return joinTable{}, fmt.Errorf("no join table for association %q", family)
	}
	return t, nil
}

// canonical orders a related pair so it is stored once.
func canonical(family domain.AssociationFamily, propertyID, memberID int64) (int64, int64) {
	if family.SelfReferential() && memberID < propertyID {
		return memberID, propertyID
	}
	return propertyID, memberID
}

// AssociationRepository - join-table storage of the association families.
type AssociationRepository struct {
	store *Store
}

// Add inserts the pair; an existing row is left alone and reported as unchanged.
func (r *AssociationRepository) Add(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error) {
	t, err := tableFor(family)
	if err != nil {
		return false, err
	}
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresAssociationRepository",
		"method":      "Add",
		"family":      string(family),
		"property_id": propertyID,
		"member_id":   memberID,
	})

	a, b := canonical(family, propertyID, memberID)
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", t.name, t.propertyCol, t.memberCol)

	cmdTag, err := r.store.conn(ctx).Exec(ctx, query, a, b)
	if err != nil {
		repoLogger.Error("Failed to add association", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to add %s association: %w", family, err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Association already exists, operation considered successful.", nil)
		return false, nil
	}
	return true, nil
}

// Remove deletes the pair; a missing row is not an error.
func (r *AssociationRepository) Remove(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error) {
	t, err := tableFor(family)
	if err != nil {
		return false, err
	}
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresAssociationRepository",
		"method":      "Remove",
		"family":      string(family),
		"property_id": propertyID,
		"member_id":   memberID,
	})

	a, b := canonical(family, propertyID, memberID)
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", t.name, t.propertyCol, t.memberCol)

	cmdTag, err := r.store.conn(ctx).Exec(ctx, query, a, b)
	if err != nil {
		repoLogger.Error("Failed to remove association", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to remove %s association: %w", family, err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Attempted to remove an association that did not exist.", nil)
		return false, nil
	}
	return true, nil
}

func (r *AssociationRepository) MembersOf(ctx context.Context, family domain.AssociationFamily, propertyID int64) ([]int64, error) {
	t, err := tableFor(family)
	if err != nil {
		return nil, err
	}
	return r.store.ids(ctx, membersQuery(t, family), propertyID)
}

func (r *AssociationRepository) PropertiesOf(ctx context.Context, family domain.AssociationFamily, memberID int64) ([]int64, error) {
	t, err := tableFor(family)
	if err != nil {
		return nil, err
	}
	if family.SelfReferential() {
		return r.store.ids(ctx, membersQuery(t, family), memberID)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY 1", t.propertyCol, t.name, t.memberCol)
	return r.store.ids(ctx, query, memberID)
}

func (r *AssociationRepository) CountMembers(ctx context.Context, family domain.AssociationFamily, propertyID int64) (int, error) {
	t, err := tableFor(family)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM (%s) m", membersQuery(t, family))
	total, err := r.store.count(ctx, query, propertyID)
	return int(total), err
}

func (r *AssociationRepository) DetachProperty(ctx context.Context, propertyID int64) error {
	for _, family := range domain.AllFamilies() {
		t, err := tableFor(family)
		if err != nil {
			return err
		}
		if err := r.deleteRows(ctx, t, detachPropertyWhere(t, family), propertyID); err != nil {
			return err
		}
	}
	return nil
}

func (r *AssociationRepository) DetachMember(ctx context.Context, kind domain.EntityKind, memberID int64) error {
	for _, family := range domain.AllFamilies() {
		if family.MemberKind() != kind {
			continue
		}
		t, err := tableFor(family)
		if err != nil {
			return err
		}
		where := fmt.Sprintf("%s = $1", t.memberCol)
		if family.SelfReferential() {
			where = detachPropertyWhere(t, family)
		}
		if err := r.deleteRows(ctx, t, where, memberID); err != nil {
			return err
		}
	}
	return nil
}

func (r *AssociationRepository) deleteRows(ctx context.Context, t joinTable, where string, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", t.name, where)
	if _, err := r.store.conn(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to detach from %s: %w", t.name, err)
	}
	return nil
}

// membersQuery selects the other end for a property; related pairs are read
// from both columns.
func membersQuery(t joinTable, family domain.AssociationFamily) string {
	if family.SelfReferential() {
		return fmt.Sprintf(
			"SELECT %[3]s FROM %[1]s WHERE %[2]s = $1 UNION SELECT %[2]s FROM %[1]s WHERE %[3]s = $1 ORDER BY 1",
			t.name, t.propertyCol, t.memberCol,
		)
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY 1", t.memberCol, t.name, t.propertyCol)
}

func detachPropertyWhere(t joinTable, family domain.AssociationFamily) string {
	if family.SelfReferential() {
		return fmt.Sprintf("%s = $1 OR %s = $1", t.propertyCol, t.memberCol)
	}
	return fmt.Sprintf("%s = $1", t.propertyCol)
}
