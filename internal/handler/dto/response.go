package dto

import (
	"time"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/ranking"
)

type EntityResponse struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"review_count"`
	BasePrice      float64  `json:"base_price"`
	Currency       string   `json:"currency"`
	Tags           []string `json:"tags,omitempty"`
	Verified       bool     `json:"verified"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	Score          float64  `json:"score"`
}

type SearchResponse struct {
	Items      []EntityResponse `json:"items"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
}

type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type MessageResponse struct {
	From    string `json:"from"`
	Content string `json:"content"`
	SentAt  string `json:"sent_at"`
}

type BookingResponse struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	EntityKind    string            `json:"entity_kind"`
	EntityID      string            `json:"entity_id"`
	Interval      IntervalResponse  `json:"interval"`
	GroupSize     int               `json:"group_size"`
	State         string            `json:"state"`
	BasePrice     float64           `json:"base_price"`
	TotalPrice    float64           `json:"total_price"`
	Currency      string            `json:"currency"`
	PaymentStatus string            `json:"payment_status"`
	Messages      []MessageResponse `json:"messages,omitempty"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

type CancelResponse struct {
	Booking BookingResponse     `json:"booking"`
	Refund  *domain.RefundQuote `json:"refund,omitempty"`
}

type GuideAvailabilityResponse struct {
	GuideID        string  `json:"guide_id"`
	Date           string  `json:"date"`
	AvailableToday bool    `json:"available_today"`
	NextFreeSlot   *string `json:"next_free_slot,omitempty"`
	HourlyRate     float64 `json:"hourly_rate"`
	Currency       string  `json:"currency"`
}

type SafetyResponse struct {
	ZoneID         string               `json:"zone_id,omitempty"`
	ZoneName       string               `json:"zone_name,omitempty"`
	Covered        bool                 `json:"covered"`
	DistanceMeters float64              `json:"distance_meters"`
	RiskLevel      string               `json:"risk_level"`
	SafetyScore    int                  `json:"safety_score"`
	ActiveAlerts   []domain.SafetyAlert `json:"active_alerts"`
}

type ErrorResponse struct {
	Error               string            `json:"error"`
	Field               string            `json:"field,omitempty"`
	Current             string            `json:"current,omitempty"`
	Requested           string            `json:"requested,omitempty"`
	ConflictingInterval *IntervalResponse `json:"conflicting_interval,omitempty"`
}

func ToEntityResponse(r ranking.Ranked) EntityResponse {
	return EntityResponse{
		ID:             r.ID,
		Kind:           string(r.Kind),
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Latitude:       r.Coordinate.Latitude,
		Longitude:      r.Coordinate.Longitude,
		Rating:         r.Rating,
		ReviewCount:    r.ReviewCount,
		BasePrice:      r.BasePrice,
		Currency:       r.Currency,
		Tags:           r.Tags,
		Verified:       r.Verified,
		DistanceMeters: r.DistanceMeters,
		Score:          r.Score,
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	messages := make([]MessageResponse, 0, len(b.Messages))
	for _, m := range b.Messages {
		messages = append(messages, MessageResponse{
			From:    m.From,
			Content: m.Content,
			SentAt:  m.SentAt.Format(time.RFC3339),
		})
	}
	if len(messages) == 0 {
		messages = nil
	}

	return BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		EntityKind: string(b.EntityRef.Kind),
		EntityID:   b.EntityRef.ID,
		Interval: IntervalResponse{
			Start: b.Interval.Start.Format(time.RFC3339),
			End:   b.Interval.End.Format(time.RFC3339),
		},
		GroupSize:     b.GroupSize,
		State:         string(b.State),
		BasePrice:     b.Pricing.BasePrice,
		TotalPrice:    b.Pricing.TotalPrice,
		Currency:      b.Pricing.Currency,
		PaymentStatus: string(b.Pricing.PaymentStatus),
		Messages:      messages,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

func ToSafetyResponse(c *domain.SafetyClassification) SafetyResponse {
	resp := SafetyResponse{
		Covered:        c.Covered,
		DistanceMeters: c.DistanceMeters,
		RiskLevel:      string(c.RiskLevel),
		SafetyScore:    c.SafetyScore,
		ActiveAlerts:   c.ActiveAlerts,
	}
	if c.Zone != nil {
		resp.ZoneID = c.Zone.ID
		resp.ZoneName = c.Zone.Name
	}
	if resp.ActiveAlerts == nil {
		resp.ActiveAlerts = []domain.SafetyAlert{}
	}
	return resp
}
