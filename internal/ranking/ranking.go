// Package ranking orders filtered catalog candidates.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/geo"
)

const (
	SortDistance  = "distance"
	SortRating    = "rating"
	SortPrice     = "price"
	SortName      = "name"
	SortRelevance = "relevance"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// neutralProximity stands in for the proximity factor when no origin is
// given, so origin-less queries still rank by rating and tag match.
const neutralProximity = 0.5

// Weights for the relevance composite; they should sum to 1.
type Weights struct {
	Distance float64
	Rating   float64
	Match    float64
}

func DefaultWeights() Weights {
	return Weights{Distance: 0.4, Rating: 0.3, Match: 0.3}
}

// Options configure one ranking pass.
type Options struct {
	SortBy    string
	Order     string
	Origin    *domain.Coordinate
	Interests []string
	MaxRadius float64 // meters considered for the proximity factor
	Weights   Weights
}

// Ranked decorates an entity with the signals computed for it.
type Ranked struct {
	*domain.Entity
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	Score          float64  `json:"score"`
}

// Rank orders candidates by opts.SortBy/Order. Ties always break by entity
// id, so identical inputs produce identical output order. Invalid sort keys
// fail with a ValidationError; the scoring itself never fails.
func Rank(candidates []*domain.Entity, opts Options) ([]Ranked, error) {
	switch opts.SortBy {
	case SortDistance, SortRating, SortPrice, SortName, SortRelevance:
	default:
		return nil, &domain.ValidationError{Field: "sortBy", Reason: fmt.Sprintf("unknown sort %q", opts.SortBy)}
	}
	switch opts.Order {
	case OrderAsc, OrderDesc:
	default:
		return nil, &domain.ValidationError{Field: "order", Reason: fmt.Sprintf("unknown order %q", opts.Order)}
	}
	if opts.MaxRadius <= 0 {
		return nil, &domain.ValidationError{Field: "maxRadius", Reason: "must be positive"}
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, e := range candidates {
		r := Ranked{Entity: e}
		if opts.Origin != nil {
			d := geo.Distance(*opts.Origin, e.Coordinate)
			r.DistanceMeters = &d
		}
		r.Score = score(r, opts)
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], opts.SortBy, opts.Order)
	})
	return ranked, nil
}

// less orders a before b for the chosen sort key. Entities without a
// computed distance sort last whatever the order; remaining ties break by
// entity id.
func less(a, b Ranked, sortBy, order string) bool {
	if sortBy == SortDistance && (a.DistanceMeters == nil || b.DistanceMeters == nil) {
		if a.DistanceMeters == nil && b.DistanceMeters == nil {
			return a.ID < b.ID
		}
		return a.DistanceMeters != nil
	}
	lt, eq := compare(a, b, sortBy)
	if eq {
		return a.ID < b.ID
	}
	if order == OrderDesc {
		return !lt
	}
	return lt
}

// score computes the relevance composite, clamped to [0, 1].
func score(r Ranked, opts Options) float64 {
	proximity := neutralProximity
	if r.DistanceMeters != nil {
		frac := *r.DistanceMeters / opts.MaxRadius
		if frac > 1 {
			frac = 1
		}
		proximity = 1 - frac
	}

	match := 0.0
	if len(opts.Interests) > 0 {
		match = float64(matchedTags(r.Tags, opts.Interests)) / float64(len(opts.Interests))
	}

	s := opts.Weights.Distance*proximity +
		opts.Weights.Rating*(r.Rating/5) +
		opts.Weights.Match*match
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func matchedTags(tags, interests []string) int {
	n := 0
	for _, interest := range interests {
		for _, tag := range tags {
			if strings.EqualFold(tag, interest) {
				n++
				break
			}
		}
	}
	return n
}

// compare returns (a < b, a == b) for the chosen sort key. For the distance
// key both sides must carry a computed distance; less handles the nil cases.
func compare(a, b Ranked, sortBy string) (bool, bool) {
	switch sortBy {
	case SortName:
		return a.Name < b.Name, a.Name == b.Name
	case SortRating:
		return a.Rating < b.Rating, a.Rating == b.Rating
	case SortPrice:
		return a.BasePrice < b.BasePrice, a.BasePrice == b.BasePrice
	case SortDistance:
		return *a.DistanceMeters < *b.DistanceMeters, *a.DistanceMeters == *b.DistanceMeters
	default: // SortRelevance
		return a.Score < b.Score, a.Score == b.Score
	}
}
