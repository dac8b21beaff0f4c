package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deccantrails/tourbooker/internal/cache"
	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/ranking"
	"github.com/deccantrails/tourbooker/internal/safety"
	"github.com/deccantrails/tourbooker/internal/service/ports/mocks"
)

func discoveryFixtures(t *testing.T) *catalog.Index {
	t.Helper()
	guide := guideEntity()
	guide.Category = "heritage"
	guide.Rating = 4.8
	second := guideEntity()
	second.ID = "guide-002"
	second.Name = "Priya Sharma"
	second.Category = "food"
	second.Rating = 4.5
	attraction := attractionEntity()
	attraction.Category = "heritage"
	attraction.Rating = 4.7

	idx := catalog.NewIndex()
	require.NoError(t, idx.Replace([]*domain.Entity{guide, second, attraction}))
	return idx
}

func newDiscoveryService(t *testing.T, idx *catalog.Index) (*DiscoveryService, *mocks.MockScheduleRepo) {
	t.Helper()
	log := newTestLogger(t)
	schedule := mocks.NewMockScheduleRepo(t)
	zones := []domain.SafetyZone{
		{
			ID: "zone-old-city", Name: "Old City",
			Center:       domain.Coordinate{Latitude: 17.3616, Longitude: 78.4747},
			RadiusMeters: 2000,
			RiskLevel:    domain.RiskMedium,
			SafetyScore:  74,
		},
	}
	svc := NewDiscoveryService(
		idx, schedule, safety.NewLookup(zones),
		cache.NewSearchCache(nil, time.Minute, log),
		fixedClock{testNow},
		10000, ranking.DefaultWeights(), 7,
		log,
	)
	return svc, schedule
}

func TestDiscoveryService_SearchDefaults(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	res, err := svc.SearchEntities(context.Background(), SearchQuery{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Items, 3)
	assert.NotEmpty(t, res.Categories)
}

func TestDiscoveryService_SearchUsesConfiguredWeights(t *testing.T) {
	log := newTestLogger(t)
	svc := NewDiscoveryService(
		discoveryFixtures(t), mocks.NewMockScheduleRepo(t), safety.NewLookup(nil),
		cache.NewSearchCache(nil, time.Minute, log),
		fixedClock{testNow},
		10000, ranking.Weights{Rating: 1}, 7,
		log,
	)

	res, err := svc.SearchEntities(context.Background(), SearchQuery{})

	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	// Rating carries all the weight: guide-001 at 4.8 ranks first with
	// score 4.8/5.
	assert.Equal(t, "guide-001", res.Items[0].Entity.ID)
	assert.InDelta(t, 0.96, res.Items[0].Score, 1e-9)
}

func TestDiscoveryService_SearchPagination(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	q := SearchQuery{
		Ranking: ranking.Options{SortBy: ranking.SortRating, Order: ranking.OrderDesc},
		Limit:   2,
	}
	first, err := svc.SearchEntities(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, "guide-001", first.Items[0].Entity.ID)

	q.Offset = 2
	second, err := svc.SearchEntities(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "guide-002", second.Items[0].Entity.ID)

	q.Offset = 10
	third, err := svc.SearchEntities(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, third.Items)
	assert.Equal(t, 3, third.Total)
}

func TestDiscoveryService_SearchNegativePagination(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	_, err := svc.SearchEntities(context.Background(), SearchQuery{Limit: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "limit", verr.Field)

	_, err = svc.SearchEntities(context.Background(), SearchQuery{Offset: -1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "offset", verr.Field)
}

func TestDiscoveryService_SearchFreeOnDropsBusyGuides(t *testing.T) {
	svc, schedule := newDiscoveryService(t, discoveryFixtures(t))

	// guide-001 is booked over the requested slot, guide-002 is free.
	schedule.EXPECT().Booked(mock.Anything, "guide-001").
		Return([]domain.BookedInterval{{BookingID: "b1", Start: thursday(9), End: thursday(18)}}, nil)
	schedule.EXPECT().Booked(mock.Anything, "guide-002").Return(nil, nil)

	iv := domain.Interval{Start: thursday(10), End: thursday(12)}
	res, err := svc.SearchEntities(context.Background(), SearchQuery{
		Filter: catalog.Filter{Kind: domain.KindGuide},
		FreeOn: &iv,
	})

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "guide-002", res.Items[0].Entity.ID)
}

func TestDiscoveryService_SearchFreeOnKeepsNonGuides(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	iv := domain.Interval{Start: thursday(10), End: thursday(12)}
	res, err := svc.SearchEntities(context.Background(), SearchQuery{
		Filter: catalog.Filter{Kind: domain.KindAttraction},
		FreeOn: &iv,
	})

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "attraction-001", res.Items[0].Entity.ID)
}

func TestDiscoveryService_GuideAvailabilityOn(t *testing.T) {
	svc, schedule := newDiscoveryService(t, discoveryFixtures(t))

	schedule.EXPECT().Booked(mock.Anything, "guide-001").Return(nil, nil)

	out, err := svc.GuideAvailabilityOn(context.Background(), "guide-001", thursday(0))

	require.NoError(t, err)
	assert.True(t, out.AvailableToday)
	assert.Equal(t, 1500.0, out.HourlyRate)
	assert.Equal(t, "INR", out.Currency)
	require.NotNil(t, out.NextFreeSlot)
	// testNow is a Saturday outside working days, Monday 09:00 is next.
	assert.Equal(t, time.Date(2025, 9, 22, 9, 0, 0, 0, time.UTC), *out.NextFreeSlot)
}

func TestDiscoveryService_GuideAvailabilityOn_FullyBookedDay(t *testing.T) {
	svc, schedule := newDiscoveryService(t, discoveryFixtures(t))

	schedule.EXPECT().Booked(mock.Anything, "guide-001").
		Return([]domain.BookedInterval{{BookingID: "b1", Start: thursday(9), End: thursday(18)}}, nil)

	out, err := svc.GuideAvailabilityOn(context.Background(), "guide-001", thursday(0))

	require.NoError(t, err)
	assert.False(t, out.AvailableToday)
}

func TestDiscoveryService_GuideAvailabilityOn_NotAGuide(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	_, err := svc.GuideAvailabilityOn(context.Background(), "attraction-001", thursday(0))

	var nerr *domain.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "guide", nerr.EntityType)

	_, err = svc.GuideAvailabilityOn(context.Background(), "guide-999", thursday(0))
	require.ErrorAs(t, err, &nerr)
}

func TestDiscoveryService_ClassifyLocation(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	out, err := svc.ClassifyLocation(domain.Coordinate{Latitude: 17.3616, Longitude: 78.4747})

	require.NoError(t, err)
	assert.True(t, out.Covered)
	assert.Equal(t, domain.RiskMedium, out.RiskLevel)
	assert.Equal(t, 74, out.SafetyScore)
}

func TestDiscoveryService_ClassifyLocation_Validation(t *testing.T) {
	svc, _ := newDiscoveryService(t, discoveryFixtures(t))

	_, err := svc.ClassifyLocation(domain.Coordinate{Latitude: 91})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lat", verr.Field)

	_, err = svc.ClassifyLocation(domain.Coordinate{Longitude: -181})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lng", verr.Field)
}
