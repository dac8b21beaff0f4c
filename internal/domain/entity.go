package domain

// EntityKind discriminates the bookable entity variants.
type EntityKind string

const (
	KindAttraction EntityKind = "attraction"
	KindRestaurant EntityKind = "restaurant"
	KindExperience EntityKind = "experience"
	KindGuide      EntityKind = "guide"
)

var AllKinds = []EntityKind{KindAttraction, KindRestaurant, KindExperience, KindGuide}

func (k EntityKind) Valid() bool {
	for _, v := range AllKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Coordinate is an immutable latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GroupRange bounds the accepted group size; Max == 0 means unbounded.
type GroupRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (g GroupRange) Accepts(size int) bool {
	if size < g.Min {
		return false
	}
	return g.Max == 0 || size <= g.Max
}

// Entity is the common record of everything the catalog can serve.
// Only the Guide variant carries a schedule; Kind is the discriminant.
type Entity struct {
	ID          string     `json:"id"`
	Kind        EntityKind `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Coordinate  Coordinate `json:"coordinate"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	BasePrice   float64    `json:"base_price"`
	Currency    string     `json:"currency"`
	Tags        []string   `json:"tags,omitempty"`
	Verified    bool       `json:"verified"`
	GroupSize   GroupRange `json:"group_size"`

	// Schedule is set iff Kind == KindGuide.
	Schedule *AvailabilitySchedule `json:"schedule,omitempty"`
}

// EntityRef points at a catalog entity without copying it.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}
