package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deccantrails/tourbooker/internal/domain"
)

var oldCity = domain.Coordinate{Latitude: 17.3616, Longitude: 78.4747}

func candidates() []*domain.Entity {
	return []*domain.Entity{
		{ID: "a", Name: "Charminar", Rating: 4.7, BasePrice: 25,
			Coordinate: oldCity, Tags: []string{"heritage", "photography"}},
		{ID: "b", Name: "Golconda Fort", Rating: 4.2, BasePrice: 40,
			Coordinate: domain.Coordinate{Latitude: 17.3833, Longitude: 78.4011}},
		{ID: "c", Name: "Hussain Sagar", Rating: 4.9, BasePrice: 50,
			Coordinate: domain.Coordinate{Latitude: 17.4239, Longitude: 78.4738},
			Tags:       []string{"nature"}},
	}
}

func defaultOpts() Options {
	return Options{
		SortBy:    SortRelevance,
		Order:     OrderDesc,
		MaxRadius: 10000,
		Weights:   DefaultWeights(),
	}
}

func TestRank_UnknownSortKey(t *testing.T) {
	_, err := Rank(candidates(), Options{SortBy: "popularity", Order: OrderAsc, MaxRadius: 1000})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sortBy", verr.Field)
}

func TestRank_UnknownOrder(t *testing.T) {
	_, err := Rank(candidates(), Options{SortBy: SortRating, Order: "sideways", MaxRadius: 1000})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "order", verr.Field)
}

func TestRank_RatingDesc(t *testing.T) {
	opts := defaultOpts()
	opts.SortBy = SortRating

	ranked, err := Rank([]*domain.Entity{
		{ID: "x", Rating: 4.7},
		{ID: "y", Rating: 4.2},
		{ID: "z", Rating: 4.9},
	}, opts)
	require.NoError(t, err)

	got := []float64{ranked[0].Rating, ranked[1].Rating, ranked[2].Rating}
	assert.Equal(t, []float64{4.9, 4.7, 4.2}, got)
}

func TestRank_TieBreaksByID(t *testing.T) {
	opts := defaultOpts()
	opts.SortBy = SortRating
	opts.Order = OrderAsc

	ranked, err := Rank([]*domain.Entity{
		{ID: "z", Rating: 4.5},
		{ID: "a", Rating: 4.5},
		{ID: "m", Rating: 4.5},
	}, opts)
	require.NoError(t, err)

	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "m", ranked[1].ID)
	assert.Equal(t, "z", ranked[2].ID)

	// Same tie-break in descending order: ranked output never depends on
	// input order.
	opts.Order = OrderDesc
	ranked, err = Rank([]*domain.Entity{
		{ID: "m", Rating: 4.5},
		{ID: "z", Rating: 4.5},
		{ID: "a", Rating: 4.5},
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].ID)
}

func TestRank_Deterministic(t *testing.T) {
	opts := defaultOpts()
	opts.Origin = &oldCity
	opts.Interests = []string{"heritage"}

	first, err := Rank(candidates(), opts)
	require.NoError(t, err)
	second, err := Rank(candidates(), opts)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRank_DistanceComputedOnlyWithOrigin(t *testing.T) {
	ranked, err := Rank(candidates(), defaultOpts())
	require.NoError(t, err)
	for _, r := range ranked {
		assert.Nil(t, r.DistanceMeters)
	}

	opts := defaultOpts()
	opts.Origin = &oldCity
	ranked, err = Rank(candidates(), opts)
	require.NoError(t, err)
	for _, r := range ranked {
		require.NotNil(t, r.DistanceMeters)
	}
}

func TestRank_RelevanceScore(t *testing.T) {
	opts := defaultOpts()
	opts.Origin = &oldCity
	opts.Interests = []string{"heritage", "photography"}

	ranked, err := Rank(candidates(), opts)
	require.NoError(t, err)

	// "a" sits at the origin with a full interest match and rating 4.7:
	// 0.4*1 + 0.3*(4.7/5) + 0.3*1 = 0.982
	require.Equal(t, "a", ranked[0].ID)
	assert.InDelta(t, 0.982, ranked[0].Score, 1e-9)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestRank_NeutralProximityWithoutOrigin(t *testing.T) {
	opts := defaultOpts()
	opts.Interests = []string{"heritage", "photography"}

	ranked, err := Rank(candidates(), opts)
	require.NoError(t, err)

	// Without an origin the proximity factor is fixed at 0.5 for everyone:
	// "a" scores 0.4*0.5 + 0.3*(4.7/5) + 0.3*1 = 0.782
	require.Equal(t, "a", ranked[0].ID)
	assert.InDelta(t, 0.782, ranked[0].Score, 1e-9)
}

func TestRank_BeyondMaxRadiusScoresZeroProximity(t *testing.T) {
	delhi := domain.Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	opts := defaultOpts()
	opts.Origin = &delhi

	ranked, err := Rank([]*domain.Entity{{ID: "a", Coordinate: oldCity, Rating: 5}}, opts)
	require.NoError(t, err)

	// Proximity saturates at the radius; only the rating term remains.
	assert.InDelta(t, 0.3, ranked[0].Score, 1e-9)
}

func TestRank_MissingDistanceSortsLastEitherOrder(t *testing.T) {
	d := 1200.0
	with := Ranked{Entity: &domain.Entity{ID: "a"}, DistanceMeters: &d}
	without := Ranked{Entity: &domain.Entity{ID: "b"}}

	assert.True(t, less(with, without, SortDistance, OrderAsc))
	assert.False(t, less(without, with, SortDistance, OrderAsc))
	assert.True(t, less(with, without, SortDistance, OrderDesc))
	assert.False(t, less(without, with, SortDistance, OrderDesc))
}

func TestRank_NameAsc(t *testing.T) {
	opts := defaultOpts()
	opts.SortBy = SortName
	opts.Order = OrderAsc

	ranked, err := Rank(candidates(), opts)
	require.NoError(t, err)
	assert.Equal(t, "Charminar", ranked[0].Name)
	assert.Equal(t, "Hussain Sagar", ranked[2].Name)
}

func TestRank_EmptyInput(t *testing.T) {
	ranked, err := Rank(nil, defaultOpts())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
