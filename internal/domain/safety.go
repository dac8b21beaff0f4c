package domain

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SafetyAlert is a time-bounded advisory attached to a zone. Expired alerts
// are filtered at query time, never physically removed.
type SafetyAlert struct {
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	ValidUntil time.Time `json:"valid_until"`
}

// SafetyZone is read-mostly reference data: a circular risk region with a
// score and its advisories.
type SafetyZone struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Center       Coordinate    `json:"center"`
	RadiusMeters float64       `json:"radius_meters"`
	RiskLevel    RiskLevel     `json:"risk_level"`
	SafetyScore  int           `json:"safety_score"`
	Alerts       []SafetyAlert `json:"alerts,omitempty"`
}

// SafetyClassification annotates a point with the zone it falls in (or the
// nearest one) and the alerts still valid at query time. Advisory only; it
// never blocks a booking.
type SafetyClassification struct {
	Zone           *SafetyZone   `json:"zone,omitempty"`
	Covered        bool          `json:"covered"`
	DistanceMeters float64       `json:"distance_meters"`
	RiskLevel      RiskLevel     `json:"risk_level"`
	SafetyScore    int           `json:"safety_score"`
	ActiveAlerts   []SafetyAlert `json:"active_alerts"`
}
