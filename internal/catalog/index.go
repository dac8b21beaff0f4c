// Package catalog holds the in-memory index of bookable entities.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// Filter is a conjunction of recognized predicates. Zero values mean "not
// applied".
type Filter struct {
	Kind         domain.EntityKind
	Category     string
	MinRating    float64
	MinPrice     *float64
	MaxPrice     *float64
	Search       string
	GroupSize    int
	VerifiedOnly bool
}

// Index maps entity id to entity, partitioned by kind. Reads take a
// consistent snapshot; Replace swaps the whole data set, so a collaborator
// can refresh the catalog without disturbing in-flight queries.
type Index struct {
	mu         sync.RWMutex
	entities   map[string]*domain.Entity
	byKind     map[domain.EntityKind][]string
	categories map[string]struct{}
}

func NewIndex() *Index {
	return &Index{
		entities:   make(map[string]*domain.Entity),
		byKind:     make(map[domain.EntityKind][]string),
		categories: make(map[string]struct{}),
	}
}

// Replace installs a new entity set. Ids within each kind are kept sorted
// so scans are deterministic.
func (x *Index) Replace(entities []*domain.Entity) error {
	ents := make(map[string]*domain.Entity, len(entities))
	byKind := make(map[domain.EntityKind][]string)
	cats := make(map[string]struct{})

	for _, e := range entities {
		if !e.Kind.Valid() {
			return fmt.Errorf("entity %q: unknown kind %q", e.ID, e.Kind)
		}
		if _, dup := ents[e.ID]; dup {
			return fmt.Errorf("duplicate entity id %q", e.ID)
		}
		ents[e.ID] = e
		byKind[e.Kind] = append(byKind[e.Kind], e.ID)
		if e.Category != "" {
			cats[strings.ToLower(e.Category)] = struct{}{}
		}
	}
	for _, ids := range byKind {
		sort.Strings(ids)
	}

	x.mu.Lock()
	x.entities = ents
	x.byKind = byKind
	x.categories = cats
	x.mu.Unlock()
	return nil
}

// Categories returns the sorted set of categories present in the catalog.
func (x *Index) Categories() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]string, 0, len(x.categories))
	for c := range x.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Get returns the entity with the given id.
func (x *Index) Get(id string) (*domain.Entity, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	e, ok := x.entities[id]
	return e, ok
}

// Query returns entities matching every predicate of f, ordered by id.
// Unrecognized kind or category values fail with a ValidationError naming
// the field; ordering beyond id is the ranking pipeline's job.
func (x *Index) Query(f Filter) ([]*domain.Entity, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if f.Kind != "" && !f.Kind.Valid() {
		return nil, &domain.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", f.Kind)}
	}
	if f.Category != "" {
		if _, ok := x.categories[strings.ToLower(f.Category)]; !ok {
			return nil, &domain.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", f.Category)}
		}
	}
	if f.MinRating < 0 || f.MinRating > 5 {
		return nil, &domain.ValidationError{Field: "minRating", Reason: "must be within [0, 5]"}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, &domain.ValidationError{Field: "priceRange", Reason: "min exceeds max"}
	}
	if f.GroupSize < 0 {
		return nil, &domain.ValidationError{Field: "groupSize", Reason: "must be positive"}
	}

	var ids []string
	if f.Kind != "" {
		ids = x.byKind[f.Kind]
	} else {
		ids = make([]string, 0, len(x.entities))
		for id := range x.entities {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}

	var out []*domain.Entity
	for _, id := range ids {
		e := x.entities[id]
		if matches(e, f) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e *domain.Entity, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	if e.Rating < f.MinRating {
		return false
	}
	if f.MinPrice != nil && e.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && e.BasePrice > *f.MaxPrice {
		return false
	}
	if f.VerifiedOnly && !e.Verified {
		return false
	}
	if f.GroupSize > 0 && !e.GroupSize.Accepts(f.GroupSize) {
		return false
	}
	if f.Search != "" && !textMatch(e, f.Search) {
		return false
	}
	return true
}

// textMatch is a case-insensitive substring match over name, description,
// category and tags. No fuzziness; relevance ordering happens in ranking.
func textMatch(e *domain.Entity, term string) bool {
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(e.Name), t) ||
		strings.Contains(strings.ToLower(e.Description), t) ||
		strings.Contains(strings.ToLower(e.Category), t) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), t) {
			return true
		}
	}
	return false
}
