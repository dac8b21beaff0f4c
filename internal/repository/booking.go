package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/service/ports"
)

const bookingColumns = `id, user_id, entity_kind, entity_id, start_at, end_at,
	group_size, state, base_price, total_price, currency, payment_status,
	messages, created_at, updated_at`

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	messages, err := json.Marshal(b.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.db.ExecWithRetry(
		ctx, r.strategy, query,
		b.ID, b.UserID, b.EntityRef.Kind, b.EntityRef.ID,
		b.Interval.Start, b.Interval.End, b.GroupSize, b.State,
		b.Pricing.BasePrice, b.Pricing.TotalPrice, b.Pricing.Currency, b.Pricing.PaymentStatus,
		messages, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &domain.ConflictError{Resource: "booking " + b.ID}
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{EntityType: "booking", ID: id}
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return b, nil
}

// Update persists the booking guarded by its expected current state. Zero
// rows affected means another writer moved the booking first; the caller
// gets a ConflictError and must re-read.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking, from domain.BookingState) error {
	messages, err := json.Marshal(b.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	query := `UPDATE bookings
			  SET start_at = $3, end_at = $4, state = $5,
			      base_price = $6, total_price = $7, currency = $8, payment_status = $9,
			      messages = $10, updated_at = $11
			  WHERE id = $1 AND state = $2`
	res, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		b.ID, from, b.Interval.Start, b.Interval.End, b.State,
		b.Pricing.BasePrice, b.Pricing.TotalPrice, b.Pricing.Currency, b.Pricing.PaymentStatus,
		messages, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ConflictError{Resource: "booking " + b.ID}
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.NotFoundError{EntityType: "booking", ID: id}
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, q ports.BookingQuery) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
			  WHERE ($1 = '' OR user_id = $1)
			    AND ($2 = '' OR state = $2)
			    AND ($3::timestamptz IS NULL OR start_at >= $3)
			  ORDER BY start_at DESC`

	var after *time.Time
	if !q.After.IsZero() {
		after = &q.After
	}

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, q.UserID, string(q.State), after)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

// CancelStalePending flips pending bookings past their TTL to cancelled.
// Pending bookings hold no schedule reservation, there is nothing else to
// release.
func (r *BookingRepository) CancelStalePending(ctx context.Context, olderThan time.Duration) ([]*domain.Booking, error) {
	query := `UPDATE bookings
			  SET state = $2, updated_at = NOW()
			  WHERE state = $1
			    AND created_at + make_interval(secs => $3) < NOW()
			  RETURNING ` + bookingColumns

	rows, err := r.db.QueryWithRetry(
		ctx, r.strategy, query,
		domain.BookingStatePending, domain.BookingStateCancelled,
		olderThan.Seconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("cancel stale pending: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// CompleteElapsed flips confirmed bookings whose interval ended before now
// and releases their schedule reservations in the same transaction.
func (r *BookingRepository) CompleteElapsed(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE bookings
			  SET state = $2, updated_at = NOW()
			  WHERE state = $1 AND end_at <= $3
			  RETURNING ` + bookingColumns

	rows, err := tx.QueryContext(ctx, query, domain.BookingStateConfirmed, domain.BookingStateCompleted, now)
	if err != nil {
		return nil, fmt.Errorf("complete elapsed: %w", err)
	}

	res, err := collectBookings(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if len(res) > 0 {
		ids := make([]string, len(res))
		for i, b := range res {
			ids[i] = b.ID
		}
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM guide_reservations WHERE booking_id = ANY($1)`,
			pq.Array(ids),
		); err != nil {
			return nil, fmt.Errorf("release completed reservations: %w", err)
		}
	}

	return res, tx.Commit()
}

func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	var b domain.Booking
	var messages []byte
	if err := scan(
		&b.ID, &b.UserID, &b.EntityRef.Kind, &b.EntityRef.ID,
		&b.Interval.Start, &b.Interval.End, &b.GroupSize, &b.State,
		&b.Pricing.BasePrice, &b.Pricing.TotalPrice, &b.Pricing.Currency, &b.Pricing.PaymentStatus,
		&messages, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		if err := json.Unmarshal(messages, &b.Messages); err != nil {
			return nil, fmt.Errorf("unmarshal messages: %w", err)
		}
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
