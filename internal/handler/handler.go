package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wb-go/wbf/ginext"

	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/handler/dto"
	"github.com/deccantrails/tourbooker/internal/ranking"
	"github.com/deccantrails/tourbooker/internal/service"
	"github.com/deccantrails/tourbooker/internal/service/ports"
)

type DiscoverySvc interface {
	SearchEntities(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error)
	GuideAvailabilityOn(ctx context.Context, guideID string, day time.Time) (*service.GuideAvailability, error)
	ClassifyLocation(point domain.Coordinate) (*domain.SafetyClassification, error)
}

type BookingSvc interface {
	Create(ctx context.Context, input service.CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, q ports.BookingQuery) ([]*domain.Booking, error)
	Confirm(ctx context.Context, id string, paid bool) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, refundConfirmed bool) (*domain.Booking, *domain.RefundQuote, error)
	Reschedule(ctx context.Context, id string, newIv domain.Interval) (*domain.Booking, error)
	Complete(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	AddMessage(ctx context.Context, id, from, content string) (*domain.Booking, error)
}

type Handler struct {
	discoveryService DiscoverySvc
	bookingService   BookingSvc
}

func NewHandler(discoveryService DiscoverySvc, bookingService BookingSvc) *Handler {
	return &Handler{
		discoveryService: discoveryService,
		bookingService:   bookingService,
	}
}

// Search

func (h *Handler) Search(c *ginext.Context) {
	q := service.SearchQuery{
		Filter: catalog.Filter{
			Kind:         domain.EntityKind(c.Query("kind")),
			Category:     c.Query("category"),
			Search:       c.Query("q"),
			VerifiedOnly: c.Query("verified") == "true",
		},
		Ranking: ranking.Options{
			SortBy: c.Query("sort_by"),
			Order:  c.Query("order"),
		},
	}

	var err error
	if v := c.Query("min_rating"); v != "" {
		if q.Filter.MinRating, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid min_rating", Field: "min_rating"})
			return
		}
	}
	if v := c.Query("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid min_price", Field: "min_price"})
			return
		}
		q.Filter.MinPrice = &p
	}
	if v := c.Query("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid max_price", Field: "max_price"})
			return
		}
		q.Filter.MaxPrice = &p
	}
	if v := c.Query("group_size"); v != "" {
		if q.Filter.GroupSize, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid group_size", Field: "group_size"})
			return
		}
	}

	origin, err := parseOptionalCoordinate(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	q.Ranking.Origin = origin

	if v := c.Query("interests"); v != "" {
		q.Ranking.Interests = strings.Split(v, ",")
	}
	if v := c.Query("max_radius"); v != "" {
		if q.Ranking.MaxRadius, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid max_radius", Field: "max_radius"})
			return
		}
	}

	freeStart, freeEnd := c.Query("free_start"), c.Query("free_end")
	if freeStart != "" || freeEnd != "" {
		iv, err := parseInterval(freeStart, freeEnd)
		if err != nil {
			h.handleError(c, err)
			return
		}
		q.FreeOn = &iv
	}

	if v := c.Query("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid limit", Field: "limit"})
			return
		}
	}
	if v := c.Query("offset"); v != "" {
		if q.Offset, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid offset", Field: "offset"})
			return
		}
	}

	result, err := h.discoveryService.SearchEntities(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]dto.EntityResponse, 0, len(result.Items))
	for _, r := range result.Items {
		items = append(items, dto.ToEntityResponse(r))
	}
	c.JSON(http.StatusOK, dto.SearchResponse{
		Items:      items,
		Total:      result.Total,
		Categories: result.Categories,
	})
}

// Guides

func (h *Handler) GuideAvailability(c *ginext.Context) {
	guideID := c.Param("id")

	var day time.Time
	if v := c.Query("date"); v != "" {
		var err error
		if day, err = time.Parse("2006-01-02", v); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "invalid date format, expected YYYY-MM-DD", Field: "date",
			})
			return
		}
	}

	avail, err := h.discoveryService.GuideAvailabilityOn(c.Request.Context(), guideID, day)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.GuideAvailabilityResponse{
		GuideID:        avail.GuideID,
		Date:           avail.Date.Format("2006-01-02"),
		AvailableToday: avail.AvailableToday,
		HourlyRate:     avail.HourlyRate,
		Currency:       avail.Currency,
	}
	if avail.NextFreeSlot != nil {
		next := avail.NextFreeSlot.Format(time.RFC3339)
		resp.NextFreeSlot = &next
	}
	c.JSON(http.StatusOK, resp)
}

// Safety

func (h *Handler) ClassifyLocation(c *ginext.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid lat", Field: "lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid lng", Field: "lng"})
		return
	}

	classification, err := h.discoveryService.ClassifyLocation(domain.Coordinate{Latitude: lat, Longitude: lng})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSafetyResponse(classification))
}

// Bookings

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	iv, err := parseInterval(req.Start, req.End)
	if err != nil {
		h.handleError(c, err)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), service.CreateBookingInput{
		UserID:    req.UserID,
		EntityRef: domain.EntityRef{Kind: domain.EntityKind(req.EntityKind), ID: req.EntityID},
		Interval:  iv,
		GroupSize: req.GroupSize,
		Note:      req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) GetBooking(c *ginext.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) ListBookings(c *ginext.Context) {
	q := ports.BookingQuery{
		UserID: c.Query("user_id"),
		State:  domain.BookingState(c.Query("status")),
	}
	if c.Query("upcoming") == "true" {
		q.After = time.Now().UTC()
	}

	bookings, err := h.bookingService.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ConfirmBooking(c *ginext.Context) {
	var req dto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.Confirm(c.Request.Context(), c.Param("id"), req.Paid)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, refund, err := h.bookingService.Cancel(c.Request.Context(), c.Param("id"), req.RefundConfirmed)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CancelResponse{
		Booking: dto.ToBookingResponse(booking),
		Refund:  refund,
	})
}

func (h *Handler) RescheduleBooking(c *ginext.Context) {
	var req dto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	iv, err := parseInterval(req.Start, req.End)
	if err != nil {
		h.handleError(c, err)
		return
	}

	booking, err := h.bookingService.Reschedule(c.Request.Context(), c.Param("id"), iv)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) CompleteBooking(c *ginext.Context) {
	booking, err := h.bookingService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) DeleteBooking(c *ginext.Context) {
	if err := h.bookingService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"status": "deleted"})
}

func (h *Handler) AddBookingMessage(c *ginext.Context) {
	var req dto.AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.AddMessage(c.Request.Context(), c.Param("id"), req.From, req.Content)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	var (
		validationErr   *domain.ValidationError
		notFoundErr     *domain.NotFoundError
		conflictErr     *domain.ConflictError
		invalidStateErr *domain.InvalidStateError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: validationErr.Error(),
			Field: validationErr.Field,
		})

	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFoundErr.Error()})

	case errors.As(err, &conflictErr):
		resp := dto.ErrorResponse{Error: conflictErr.Error()}
		if conflictErr.ConflictingInterval != nil {
			resp.ConflictingInterval = &dto.IntervalResponse{
				Start: conflictErr.ConflictingInterval.Start.Format(time.RFC3339),
				End:   conflictErr.ConflictingInterval.End.Format(time.RFC3339),
			}
		}
		c.JSON(http.StatusConflict, resp)

	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:     invalidStateErr.Error(),
			Current:   string(invalidStateErr.Current),
			Requested: invalidStateErr.Requested,
		})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func parseOptionalCoordinate(c *ginext.Context) (*domain.Coordinate, error) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, &domain.ValidationError{Field: "lat,lng", Reason: "both must be given together"}
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: "lat", Reason: "must be a number"}
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: "lng", Reason: "must be a number"}
	}
	return &domain.Coordinate{Latitude: lat, Longitude: lng}, nil
}

func parseInterval(start, end string) (domain.Interval, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return domain.Interval{}, &domain.ValidationError{Field: "start", Reason: "expected RFC3339 timestamp"}
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return domain.Interval{}, &domain.ValidationError{Field: "end", Reason: "expected RFC3339 timestamp"}
	}
	return domain.Interval{Start: s.UTC(), End: e.UTC()}, nil
}
