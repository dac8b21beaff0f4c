// Package geo provides great-circle math over domain coordinates.
package geo

import (
	"math"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used everywhere distances are
// computed, so radius filters and ranking agree with each other.
const EarthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance between a and b in
// meters.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// WithinRadius reports whether point lies within radiusMeters of origin.
func WithinRadius(origin, point domain.Coordinate, radiusMeters float64) bool {
	return Distance(origin, point) <= radiusMeters
}
