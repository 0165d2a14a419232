package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type linkKey struct {
	family   domain.AssociationFamily
	property int64
	member   int64
}

type state struct {
	seq         map[domain.EntityKind]int64
	properties  map[int64]domain.Property
	consultants map[int64]domain.Consultant
	users       map[int64]domain.User
	contacts    map[int64]domain.Contact
	links       map[linkKey]struct{}
}

func newState() *state {
	return &state{
		seq:         make(map[domain.EntityKind]int64),
		properties:  make(map[int64]domain.Property),
		consultants: make(map[int64]domain.Consultant),
		users:       make(map[int64]domain.User),
		contacts:    make(map[int64]domain.Contact),
		links:       make(map[linkKey]struct{}),
	}
}

// clone copies the maps; entity values are copied on read and write, so a
// shallow copy of every map is a full snapshot.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.properties {
		c.properties[k] = v
	}
	for k, v := range s.consultants {
		c.consultants[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.contacts {
		c.contacts[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

func (s *state) next(kind domain.EntityKind) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

// Store - process-local entity store. A single mutex serialises every
// operation; a transaction holds it for its whole duration and restores a
// snapshot on failure.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

type txKeyType struct{}

var txKey = txKeyType{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey).(*Store)
	return ok && owner == s
}

// lock acquires the store unless ctx already runs inside its transaction.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx implements port.Transactor. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) Properties() *PropertyRepository    { return &PropertyRepository{store: s} }
func (s *Store) Consultants() *ConsultantRepository { return &ConsultantRepository{store: s} }
func (s *Store) Users() *UserRepository             { return &UserRepository{store: s} }
func (s *Store) Contacts() *ContactRepository       { return &ContactRepository{store: s} }
func (s *Store) Associations() *AssociationRepository {
	return &AssociationRepository{store: s}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a *int64, id int64) bool {
	return a != nil && *a == id
}

// sortedValues returns the map values ordered by id.
func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func paginate[T any](items []T, page domain.PageRequest) []T {
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end < start || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func byIDs[T any](m map[int64]T, ids []int64) []T {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]T, 0, len(sorted))
	var prev int64
	for i, id := range sorted {
		if i > 0 && id == prev {
			continue
		}
		prev = id
		if v, ok := m[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
