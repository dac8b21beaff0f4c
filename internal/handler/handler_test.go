package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/handler/dto"
	hmocks "github.com/deccantrails/tourbooker/internal/handler/mocks"
	"github.com/deccantrails/tourbooker/internal/ranking"
	"github.com/deccantrails/tourbooker/internal/service"
)

func setupRouter(t *testing.T) (*hmocks.MockDiscoverySvc, *hmocks.MockBookingSvc, http.Handler) {
	t.Helper()
	discoverySvc := hmocks.NewMockDiscoverySvc(t)
	bookingSvc := hmocks.NewMockBookingSvc(t)

	h := NewHandler(discoverySvc, bookingSvc)

	r := ginext.New("test")
	api := r.Group("/api")
	{
		api.GET("/search", h.Search)
		api.GET("/guides/:id/availability", h.GuideAvailability)
		api.GET("/safety/classify", h.ClassifyLocation)
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/confirm", h.ConfirmBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/reschedule", h.RescheduleBooking)
		api.POST("/bookings/:id/complete", h.CompleteBooking)
		api.DELETE("/bookings/:id", h.DeleteBooking)
		api.POST("/bookings/:id/messages", h.AddBookingMessage)
	}

	return discoverySvc, bookingSvc, r
}

// --- Search ---

func TestHandler_Search_Success(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	result := &service.SearchResult{
		Items: []ranking.Ranked{
			{Entity: &domain.Entity{ID: "attraction-001", Kind: domain.KindAttraction, Name: "Charminar"}, Score: 0.9},
		},
		Total:      1,
		Categories: []string{"heritage"},
	}
	discoverySvc.EXPECT().SearchEntities(mock.Anything, mock.Anything).Return(result, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?kind=attraction&q=charminar", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Charminar", resp.Items[0].Name)
	assert.Equal(t, []string{"heritage"}, resp.Categories)
}

func TestHandler_Search_PassesQueryThrough(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	discoverySvc.EXPECT().SearchEntities(mock.Anything, mock.Anything).
		Return(&service.SearchResult{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/search?kind=guide&min_rating=4.5&lat=17.36&lng=78.47&interests=heritage,food&limit=5&offset=10&verified=true", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	call := discoverySvc.Calls[0]
	q := call.Arguments[1].(service.SearchQuery)
	assert.Equal(t, domain.KindGuide, q.Filter.Kind)
	assert.Equal(t, 4.5, q.Filter.MinRating)
	assert.True(t, q.Filter.VerifiedOnly)
	require.NotNil(t, q.Ranking.Origin)
	assert.Equal(t, 17.36, q.Ranking.Origin.Latitude)
	assert.Equal(t, []string{"heritage", "food"}, q.Ranking.Interests)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, 10, q.Offset)
}

func TestHandler_Search_InvalidNumber(t *testing.T) {
	_, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?min_rating=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Search_LatWithoutLng(t *testing.T) {
	_, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?lat=17.36", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Search_FreeInterval(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	discoverySvc.EXPECT().SearchEntities(mock.Anything, mock.Anything).Return(&service.SearchResult{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/search?free_start=2026-10-01T10:00:00Z&free_end=2026-10-01T12:00:00Z", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	q := discoverySvc.Calls[0].Arguments[1].(service.SearchQuery)
	require.NotNil(t, q.FreeOn)
	assert.Equal(t, time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC), q.FreeOn.Start)
}

func TestHandler_Search_FreeIntervalMissingEnd(t *testing.T) {
	_, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?free_start=2026-10-01T10:00:00Z", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Guide availability ---

func TestHandler_GuideAvailability_Success(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	next := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)
	avail := &service.GuideAvailability{
		GuideID:        "guide-001",
		Date:           time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		AvailableToday: true,
		NextFreeSlot:   &next,
		HourlyRate:     1500,
		Currency:       "INR",
	}
	discoverySvc.EXPECT().GuideAvailabilityOn(mock.Anything, "guide-001", mock.Anything).Return(avail, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/guides/guide-001/availability?date=2026-10-01", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.GuideAvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.AvailableToday)
	require.NotNil(t, resp.NextFreeSlot)
	assert.Equal(t, "2026-10-02T09:00:00Z", *resp.NextFreeSlot)
}

func TestHandler_GuideAvailability_BadDate(t *testing.T) {
	_, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/guides/guide-001/availability?date=01-10-2026", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GuideAvailability_NotFound(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	discoverySvc.EXPECT().GuideAvailabilityOn(mock.Anything, "guide-999", mock.Anything).
		Return(nil, &domain.NotFoundError{EntityType: "guide", ID: "guide-999"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/guides/guide-999/availability", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Safety ---

func TestHandler_ClassifyLocation_Success(t *testing.T) {
	discoverySvc, _, r := setupRouter(t)

	classification := &domain.SafetyClassification{
		Zone:        &domain.SafetyZone{ID: "zone-old-city", Name: "Old City"},
		Covered:     true,
		RiskLevel:   domain.RiskMedium,
		SafetyScore: 74,
	}
	discoverySvc.EXPECT().ClassifyLocation(domain.Coordinate{Latitude: 17.3616, Longitude: 78.4747}).
		Return(classification, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/safety/classify?lat=17.3616&lng=78.4747", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SafetyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Covered)
	assert.Equal(t, "Old City", resp.ZoneName)
	assert.Equal(t, 74, resp.SafetyScore)
	assert.NotNil(t, resp.ActiveAlerts)
}

func TestHandler_ClassifyLocation_MissingCoordinates(t *testing.T) {
	_, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/safety/classify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Bookings ---

func futureBooking(id string) *domain.Booking {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	return &domain.Booking{
		ID:        id,
		UserID:    "u1",
		EntityRef: domain.EntityRef{Kind: domain.KindGuide, ID: "guide-001"},
		Interval:  domain.Interval{Start: start, End: start.Add(2 * time.Hour)},
		GroupSize: 2,
		State:     domain.BookingStatePending,
		Pricing:   domain.Pricing{BasePrice: 1500, TotalPrice: 3000, Currency: "INR", PaymentStatus: domain.PaymentUnpaid},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestHandler_CreateBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking(uuid.New().String())
	bookingSvc.EXPECT().Create(mock.Anything, mock.Anything).Return(booking, nil)

	body, _ := json.Marshal(dto.CreateBookingRequest{
		UserID:     "u1",
		EntityKind: "guide",
		EntityID:   "guide-001",
		Start:      booking.Interval.Start.Format(time.RFC3339),
		End:        booking.Interval.End.Format(time.RFC3339),
		GroupSize:  2,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.State)
	assert.Equal(t, 3000.0, resp.TotalPrice)
}

func TestHandler_CreateBooking_BadBody(t *testing.T) {
	_, _, r := setupRouter(t)

	body := []byte(`{"user_id":""}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBooking_BadTimestamp(t *testing.T) {
	_, _, r := setupRouter(t)

	body := []byte(`{"user_id":"u1","entity_kind":"guide","entity_id":"guide-001","start":"tomorrow","end":"later","group_size":2}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBooking_Conflict(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	conflicting := domain.Interval{Start: start, End: start.Add(4 * time.Hour)}
	bookingSvc.EXPECT().Create(mock.Anything, mock.Anything).
		Return(nil, &domain.ConflictError{Resource: "guide guide-001", ConflictingInterval: &conflicting})

	body, _ := json.Marshal(dto.CreateBookingRequest{
		UserID:     "u1",
		EntityKind: "guide",
		EntityID:   "guide-001",
		Start:      start.Format(time.RFC3339),
		End:        start.Add(time.Hour).Format(time.RFC3339),
		GroupSize:  2,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.ConflictingInterval)
	assert.Equal(t, "2026-10-01T10:00:00Z", resp.ConflictingInterval.Start)
}

func TestHandler_GetBooking_NotFound(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookingSvc.EXPECT().Get(mock.Anything, "b404").
		Return(nil, &domain.NotFoundError{EntityType: "booking", ID: "b404"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b404", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListBookings_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookings := []*domain.Booking{futureBooking("b1"), futureBooking("b2")}
	bookingSvc.EXPECT().List(mock.Anything, mock.Anything).Return(bookings, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?user_id=u1&status=pending", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestHandler_ConfirmBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking("b1")
	booking.State = domain.BookingStateConfirmed
	booking.Pricing.PaymentStatus = domain.PaymentPaid
	bookingSvc.EXPECT().Confirm(mock.Anything, "b1", true).Return(booking, nil)

	body, _ := json.Marshal(dto.ConfirmBookingRequest{Paid: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.State)
	assert.Equal(t, "paid", resp.PaymentStatus)
}

func TestHandler_ConfirmBooking_InvalidState(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookingSvc.EXPECT().Confirm(mock.Anything, "b1", false).
		Return(nil, &domain.InvalidStateError{Current: domain.BookingStateCancelled, Requested: "confirm"})

	body := []byte(`{"paid":false}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Current)
	assert.Equal(t, "confirm", resp.Requested)
}

func TestHandler_CancelBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking("b1")
	booking.State = domain.BookingStateCancelled
	quote := &domain.RefundQuote{Amount: 3000, Percent: 100, Currency: "INR"}
	bookingSvc.EXPECT().Cancel(mock.Anything, "b1", true).Return(booking, quote, nil)

	body, _ := json.Marshal(dto.CancelBookingRequest{RefundConfirmed: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CancelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Booking.State)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, 100, resp.Refund.Percent)
}

func TestHandler_RescheduleBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking("b1")
	booking.State = domain.BookingStateConfirmed
	bookingSvc.EXPECT().Reschedule(mock.Anything, "b1", mock.Anything).Return(booking, nil)

	body, _ := json.Marshal(dto.RescheduleBookingRequest{
		Start: booking.Interval.Start.Format(time.RFC3339),
		End:   booking.Interval.End.Format(time.RFC3339),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/reschedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CompleteBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking("b1")
	booking.State = domain.BookingStateCompleted
	bookingSvc.EXPECT().Complete(mock.Anything, "b1").Return(booking, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.State)
}

func TestHandler_DeleteBooking_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookingSvc.EXPECT().Delete(mock.Anything, "b1").Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/b1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_DeleteBooking_InvalidState(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookingSvc.EXPECT().Delete(mock.Anything, "b1").
		Return(&domain.InvalidStateError{Current: domain.BookingStateConfirmed, Requested: "delete", Hint: "cancel instead"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/b1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_AddBookingMessage_Success(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	booking := futureBooking("b1")
	booking.Messages = []domain.Message{{From: "u1", Content: "see you there", SentAt: time.Now().UTC()}}
	bookingSvc.EXPECT().AddMessage(mock.Anything, "b1", "u1", "see you there").Return(booking, nil)

	body, _ := json.Marshal(dto.AddMessageRequest{From: "u1", Content: "see you there"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "see you there", resp.Messages[0].Content)
}

func TestHandler_HandleError_InternalError(t *testing.T) {
	_, bookingSvc, r := setupRouter(t)

	bookingSvc.EXPECT().Get(mock.Anything, "b1").Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
