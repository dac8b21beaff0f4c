// Package safety classifies coordinates against the risk-zone reference
// data.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/geo"
)

// Lookup answers point classification over a fixed zone set. Zones are
// read-mostly; a refresh swaps the whole slice.
type Lookup struct {
	zones []domain.SafetyZone
}

func NewLookup(zones []domain.SafetyZone) *Lookup {
	return &Lookup{zones: zones}
}

// LoadZones reads the safety-zone seed file.
func LoadZones(path string) ([]domain.SafetyZone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read safety seed: %w", err)
	}
	var zones []domain.SafetyZone
	if err := json.Unmarshal(raw, &zones); err != nil {
		return nil, fmt.Errorf("decode safety seed: %w", err)
	}
	return zones, nil
}

// Classify returns the covering zone for point, or the nearest zone when
// none covers it. Alerts are filtered to those still valid at now. With no
// zones configured the classification is empty with low risk.
func (l *Lookup) Classify(point domain.Coordinate, now time.Time) domain.SafetyClassification {
	var (
		best     *domain.SafetyZone
		bestDist float64
		covered  bool
	)
	for i := range l.zones {
		z := &l.zones[i]
		d := geo.Distance(z.Center, point)
		inside := d <= z.RadiusMeters
		switch {
		case inside && (!covered || d < bestDist):
			best, bestDist, covered = z, d, true
		case !covered && (best == nil || d < bestDist):
			best, bestDist = z, d
		}
	}

	if best == nil {
		return domain.SafetyClassification{RiskLevel: domain.RiskLow, ActiveAlerts: []domain.SafetyAlert{}}
	}

	alerts := make([]domain.SafetyAlert, 0, len(best.Alerts))
	for _, a := range best.Alerts {
		if a.ValidUntil.After(now) {
			alerts = append(alerts, a)
		}
	}

	return domain.SafetyClassification{
		Zone:           best,
		Covered:        covered,
		DistanceMeters: bestDist,
		RiskLevel:      best.RiskLevel,
		SafetyScore:    best.SafetyScore,
		ActiveAlerts:   alerts,
	}
}
