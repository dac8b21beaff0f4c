package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// ScheduleRepository persists guide interval reservations. Overlaps are
// rejected twice: a row-lock plus in-transaction check here, and a btree_gist
// exclusion constraint in the schema for anything that slips past.
type ScheduleRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewScheduleRepo(db *dbpg.DB) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *ScheduleRepository) Booked(ctx context.Context, guideID string) ([]domain.BookedInterval, error) {
	query := `SELECT booking_id, start_at, end_at
			  FROM guide_reservations
			  WHERE guide_id = $1
			  ORDER BY start_at`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, guideID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var res []domain.BookedInterval
	for rows.Next() {
		var bi domain.BookedInterval
		if err = rows.Scan(&bi.BookingID, &bi.Start, &bi.End); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res = append(res, bi)
	}
	return res, rows.Err()
}

func (r *ScheduleRepository) Reserve(ctx context.Context, guideID, bookingID string, iv domain.Interval) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err = r.insertLocked(ctx, tx, guideID, bookingID, iv, ""); err != nil {
		return err
	}
	return tx.Commit()
}

// Swap atomically replaces the booking's reservation with the new interval.
// The conflict check excludes the booking's own row, so moving within or
// adjacent to the old slot works.
func (r *ScheduleRepository) Swap(ctx context.Context, guideID, bookingID string, newIv domain.Interval) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM guide_reservations WHERE booking_id = $1`, bookingID,
	); err != nil {
		return fmt.Errorf("release old reservation: %w", err)
	}
	if err = r.insertLocked(ctx, tx, guideID, bookingID, newIv, bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ScheduleRepository) Release(ctx context.Context, bookingID string) error {
	_, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM guide_reservations WHERE booking_id = $1`, bookingID,
	)
	if err != nil {
		return fmt.Errorf("release reservation: %w", err)
	}
	return nil
}

// insertLocked locks the guide's reservation rows, re-checks for overlap and
// inserts. Must run inside a transaction.
func (r *ScheduleRepository) insertLocked(ctx context.Context, tx *sql.Tx, guideID, bookingID string, iv domain.Interval, excludeBookingID string) error {
	lockQuery := `SELECT booking_id, start_at, end_at
				  FROM guide_reservations
				  WHERE guide_id = $1 AND start_at < $3 AND end_at > $2
				  FOR UPDATE`
	rows, err := tx.QueryContext(ctx, lockQuery, guideID, iv.Start, iv.End)
	if err != nil {
		return fmt.Errorf("lock reservations: %w", err)
	}

	var conflict *domain.Interval
	for rows.Next() {
		var bi domain.BookedInterval
		if err = rows.Scan(&bi.BookingID, &bi.Start, &bi.End); err != nil {
			rows.Close()
			return fmt.Errorf("scan reservation: %w", err)
		}
		if bi.BookingID != excludeBookingID && conflict == nil {
			c := bi.Interval()
			conflict = &c
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("lock reservations: %w", err)
	}
	if conflict != nil {
		return &domain.ConflictError{Resource: "guide " + guideID, ConflictingInterval: conflict}
	}

	insert := `INSERT INTO guide_reservations (guide_id, booking_id, start_at, end_at)
			   VALUES ($1, $2, $3, $4)`
	if _, err = tx.ExecContext(ctx, insert, guideID, bookingID, iv.Start, iv.End); err != nil {
		var pgErr *pq.Error
		// 23P01 is raised by the exclusion constraint backstop.
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return &domain.ConflictError{Resource: "guide " + guideID, ConflictingInterval: &iv}
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}
