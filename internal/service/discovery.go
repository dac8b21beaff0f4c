package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/availability"
	"github.com/deccantrails/tourbooker/internal/cache"
	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/ranking"
	"github.com/deccantrails/tourbooker/internal/safety"
	"github.com/deccantrails/tourbooker/internal/service/ports"
)

// SearchQuery is a full search request: catalog filter, ranking options,
// an optional free-interval constraint for guides and pagination.
type SearchQuery struct {
	Filter  catalog.Filter
	Ranking ranking.Options
	FreeOn  *domain.Interval
	Limit   int
	Offset  int
}

// SearchResult is a ranked, paginated slice of the catalog plus facets.
type SearchResult struct {
	Items      []ranking.Ranked
	Total      int
	Categories []string
}

// GuideAvailability summarizes a guide's bookable state on a given day.
type GuideAvailability struct {
	GuideID        string
	Date           time.Time
	AvailableToday bool
	NextFreeSlot   *time.Time
	HourlyRate     float64
	Currency       string
}

// DiscoveryService answers the read side: search, guide availability and
// safety classification. Search results are cached briefly; anything that
// depends on live reservations bypasses the cache.
type DiscoveryService struct {
	catalog     *catalog.Index
	schedule    ports.ScheduleRepo
	safety      *safety.Lookup
	cache       *cache.SearchCache
	clock       ports.Clock
	maxRadius   float64
	weights     ranking.Weights
	horizonDays int
	logger      logger.Logger
}

func NewDiscoveryService(
	idx *catalog.Index,
	schedule ports.ScheduleRepo,
	safetyLookup *safety.Lookup,
	searchCache *cache.SearchCache,
	clock ports.Clock,
	maxRadius float64,
	weights ranking.Weights,
	horizonDays int,
	logger logger.Logger,
) *DiscoveryService {
	if weights == (ranking.Weights{}) {
		weights = ranking.DefaultWeights()
	}
	return &DiscoveryService{
		catalog:     idx,
		schedule:    schedule,
		safety:      safetyLookup,
		cache:       searchCache,
		clock:       clock,
		maxRadius:   maxRadius,
		weights:     weights,
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// SearchEntities filters, ranks and paginates the catalog. The FreeOn
// constraint drops guides whose schedule cannot host the interval.
func (s *DiscoveryService) SearchEntities(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.Limit < 0 {
		return nil, &domain.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if q.Offset < 0 {
		return nil, &domain.ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	if q.Ranking.MaxRadius == 0 {
		q.Ranking.MaxRadius = s.maxRadius
	}
	if q.Ranking.SortBy == "" {
		q.Ranking.SortBy = ranking.SortRelevance
	}
	if q.Ranking.Order == "" {
		if q.Ranking.SortBy == ranking.SortRelevance || q.Ranking.SortBy == ranking.SortRating {
			q.Ranking.Order = ranking.OrderDesc
		} else {
			q.Ranking.Order = ranking.OrderAsc
		}
	}
	if q.Ranking.Weights == (ranking.Weights{}) {
		q.Ranking.Weights = s.weights
	}

	cacheable := q.FreeOn == nil
	cacheKey := ""
	if cacheable {
		cacheKey = cache.SearchKey(q.Filter, q.Ranking, q.Limit, q.Offset)
		var cached SearchResult
		if s.cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	entities, err := s.catalog.Query(q.Filter)
	if err != nil {
		return nil, err
	}

	if q.FreeOn != nil {
		entities, err = s.filterFree(ctx, entities, *q.FreeOn)
		if err != nil {
			return nil, err
		}
	}

	ranked, err := ranking.Rank(entities, q.Ranking)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Total:      len(ranked),
		Categories: s.catalog.Categories(),
		Items:      paginate(ranked, q.Limit, q.Offset),
	}

	if cacheable {
		s.cache.Set(ctx, cacheKey, result)
	}
	return result, nil
}

// GuideAvailabilityOn reports whether the guide has any bookable time on
// the given day and, looking ahead over the horizon, where the next free
// slot starts.
func (s *DiscoveryService) GuideAvailabilityOn(ctx context.Context, guideID string, day time.Time) (*GuideAvailability, error) {
	entity, ok := s.catalog.Get(guideID)
	if !ok || entity.Kind != domain.KindGuide {
		return nil, &domain.NotFoundError{EntityType: "guide", ID: guideID}
	}

	booked, err := s.schedule.Booked(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	sched := *entity.Schedule
	sched.Booked = booked

	if day.IsZero() {
		day = s.clock.Now()
	}

	out := &GuideAvailability{
		GuideID:        guideID,
		Date:           day,
		AvailableToday: availability.AvailableOn(&sched, day),
		HourlyRate:     sched.HourlyRate,
		Currency:       sched.Currency,
	}
	if next, ok := availability.NextFreeSlot(&sched, s.clock.Now(), s.horizonDays); ok {
		out.NextFreeSlot = &next
	}
	return out, nil
}

// ClassifyLocation resolves a coordinate against the safety zones.
func (s *DiscoveryService) ClassifyLocation(point domain.Coordinate) (*domain.SafetyClassification, error) {
	if point.Latitude < -90 || point.Latitude > 90 {
		return nil, &domain.ValidationError{Field: "lat", Reason: "must be within [-90, 90]"}
	}
	if point.Longitude < -180 || point.Longitude > 180 {
		return nil, &domain.ValidationError{Field: "lng", Reason: "must be within [-180, 180]"}
	}
	classification := s.safety.Classify(point, s.clock.Now())
	return &classification, nil
}

// filterFree keeps non-guides untouched and drops guides that cannot host
// the interval against their template and live reservations.
func (s *DiscoveryService) filterFree(ctx context.Context, entities []*domain.Entity, iv domain.Interval) ([]*domain.Entity, error) {
	out := make([]*domain.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Kind != domain.KindGuide {
			out = append(out, e)
			continue
		}
		booked, err := s.schedule.Booked(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("load reservations for %s: %w", e.ID, err)
		}
		sched := *e.Schedule
		sched.Booked = booked
		if availability.IsFree(&sched, iv, "").Free {
			out = append(out, e)
		}
	}
	return out, nil
}

func paginate(items []ranking.Ranked, limit, offset int) []ranking.Ranked {
	if offset >= len(items) {
		return []ranking.Ranked{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
