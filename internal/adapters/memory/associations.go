package memory

import (
	"context"
	"sort"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// AssociationRepository keeps join rows as a set. Related pairs are stored
// once with the smaller id on the property end.
type AssociationRepository struct {
	store *Store
}

func key(family domain.AssociationFamily, propertyID, memberID int64) linkKey {
	if family.SelfReferential() && memberID < propertyID {
		propertyID, memberID = memberID, propertyID
	}
	return linkKey{family: family, property: propertyID, member: memberID}
}

func (r *AssociationRepository) Add(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error) {
	defer r.store.lock(ctx)()
	k := key(family, propertyID, memberID)
	if _, ok := r.store.state.links[k]; ok {
		return false, nil
	}
	r.store.state.links[k] = struct{}{}
	return true, nil
}

func (r *AssociationRepository) Remove(ctx context.Context, family domain.AssociationFamily, propertyID, memberID int64) (bool, error) {
	defer r.store.lock(ctx)()
	k := key(family, propertyID, memberID)
	if _, ok := r.store.state.links[k]; !ok {
		return false, nil
	}
	delete(r.store.state.links, k)
	return true, nil
}

func (r *AssociationRepository) MembersOf(ctx context.Context, family domain.AssociationFamily, propertyID int64) ([]int64, error) {
	defer r.store.lock(ctx)()
	var ids []int64
	for k := range r.store.state.links {
		if k.family != family {
			continue
		}
		switch {
		case k.property == propertyID:
			ids = append(ids, k.member)
		case family.SelfReferential() && k.member == propertyID:
			ids = append(ids, k.property)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *AssociationRepository) PropertiesOf(ctx context.Context, family domain.AssociationFamily, memberID int64) ([]int64, error) {
	if family.SelfReferential() {
		return r.MembersOf(ctx, family, memberID)
	}

	defer r.store.lock(ctx)()
	var ids []int64
	for k := range r.store.state.links {
		if k.family == family && k.member == memberID {
			ids = append(ids, k.property)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *AssociationRepository) CountMembers(ctx context.Context, family domain.AssociationFamily, propertyID int64) (int, error) {
	ids, err := r.MembersOf(ctx, family, propertyID)
	return len(ids), err
}

func (r *AssociationRepository) DetachProperty(ctx context.Context, propertyID int64) error {
	defer r.store.lock(ctx)()
	for k := range r.store.state.links {
		if k.property == propertyID || (k.family.SelfReferential() && k.member == propertyID) {
			delete(r.store.state.links, k)
		}
	}
	return nil
}

func (r *AssociationRepository) DetachMember(ctx context.Context, kind domain.EntityKind, memberID int64) error {
	defer r.store.lock(ctx)()
	for k := range r.store.state.links {
		if k.family.MemberKind() != kind {
			continue
		}
		if k.member == memberID || (k.family.SelfReferential() && k.property == memberID) {
			delete(r.store.state.links, k)
		}
	}
	return nil
}
