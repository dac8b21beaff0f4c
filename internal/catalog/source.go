package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// seedEntity is the on-disk shape of one catalog record. Guide records
// carry an availability block in the format the upstream data uses
// ("monday": "09:00-18:00", absent day = unavailable).
type seedEntity struct {
	ID          string            `json:"id"`
	Kind        domain.EntityKind `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	BasePrice   float64           `json:"basePrice"`
	Currency    string            `json:"currency"`
	Tags        []string          `json:"tags"`
	Verified    bool              `json:"verified"`
	MinGroup    int               `json:"minGroupSize"`
	MaxGroup    int               `json:"maxGroupSize"`

	Availability *struct {
		Schedule   map[string]string `json:"schedule"`
		HourlyRate float64           `json:"hourlyRate"`
		Currency   string            `json:"currency"`
	} `json:"availability,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// FileSource loads the initial entity set from a JSON seed file. It is the
// catalog data source collaborator; anything that can produce entities
// could replace it.
type FileSource struct {
	Path string
}

func (s FileSource) Load() ([]*domain.Entity, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seeds []seedEntity
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	entities := make([]*domain.Entity, 0, len(seeds))
	for _, seed := range seeds {
		e, err := seed.toEntity()
		if err != nil {
			return nil, fmt.Errorf("catalog seed %q: %w", seed.ID, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (s seedEntity) toEntity() (*domain.Entity, error) {
	if s.ID == "" || s.Name == "" {
		return nil, fmt.Errorf("id and name are required")
	}
	if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
		return nil, fmt.Errorf("coordinate out of range")
	}
	if s.Rating < 0 || s.Rating > 5 {
		return nil, fmt.Errorf("rating out of range")
	}

	e := &domain.Entity{
		ID:          s.ID,
		Kind:        s.Kind,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Coordinate:  domain.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude},
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		BasePrice:   s.BasePrice,
		Currency:    s.Currency,
		Tags:        s.Tags,
		Verified:    s.Verified,
		GroupSize:   domain.GroupRange{Min: s.MinGroup, Max: s.MaxGroup},
	}

	if s.Kind == domain.KindGuide {
		if s.Availability == nil {
			return nil, fmt.Errorf("guide without availability block")
		}
		weekly := make(domain.WeeklyTemplate, len(s.Availability.Schedule))
		for name, hours := range s.Availability.Schedule {
			day, ok := weekdays[name]
			if !ok {
				return nil, fmt.Errorf("unknown weekday %q", name)
			}
			window, err := domain.ParseDayWindow(hours)
			if err != nil {
				return nil, err
			}
			weekly[day] = window
		}
		e.Schedule = &domain.AvailabilitySchedule{
			Weekly:     weekly,
			HourlyRate: s.Availability.HourlyRate,
			Currency:   s.Availability.Currency,
		}
	}
	return e, nil
}
