package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deccantrails/tourbooker/internal/domain"
)

var reservationRows = []string{"booking_id", "start_at", "end_at"}

func testInterval() domain.Interval {
	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	return domain.Interval{Start: start, End: start.Add(2 * time.Hour)}
}

func TestScheduleRepository_Booked(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	iv := testInterval()

	mock.ExpectQuery("SELECT (.+) FROM guide_reservations").
		WithArgs("guide-001").
		WillReturnRows(sqlmock.NewRows(reservationRows).AddRow("b1", iv.Start, iv.End))

	got, err := repo.Booked(context.Background(), "guide-001")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].BookingID)
	assert.Equal(t, iv, got[0].Interval())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Reserve(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	iv := testInterval()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs("guide-001", iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows(reservationRows))
	mock.ExpectExec("INSERT INTO guide_reservations").
		WithArgs("guide-001", "b1", iv.Start, iv.End).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Reserve(context.Background(), "guide-001", "b1", iv))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Reserve_OverlapConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	iv := testInterval()
	other := domain.Interval{Start: iv.Start.Add(-time.Hour), End: iv.Start.Add(time.Hour)}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs("guide-001", iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows(reservationRows).AddRow("other", other.Start, other.End))
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), "guide-001", "b1", iv)

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	require.NotNil(t, cerr.ConflictingInterval)
	assert.Equal(t, other, *cerr.ConflictingInterval)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Reserve_ExclusionBackstop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	iv := testInterval()

	// Row-lock check saw nothing but the gist exclusion constraint fired.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs("guide-001", iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows(reservationRows))
	mock.ExpectExec("INSERT INTO guide_reservations").
		WillReturnError(&pq.Error{Code: "23P01"})
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), "guide-001", "b1", iv)

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Swap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	newIv := testInterval()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM guide_reservations").
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs("guide-001", newIv.Start, newIv.End).
		WillReturnRows(sqlmock.NewRows(reservationRows))
	mock.ExpectExec("INSERT INTO guide_reservations").
		WithArgs("guide-001", "b1", newIv.Start, newIv.End).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Swap(context.Background(), "guide-001", "b1", newIv))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Swap_IgnoresOwnRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)
	newIv := testInterval()

	// The booking's own reservation still shows up under FOR UPDATE before
	// the delete commits elsewhere; it must not count as a conflict.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM guide_reservations").
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WithArgs("guide-001", newIv.Start, newIv.End).
		WillReturnRows(sqlmock.NewRows(reservationRows).AddRow("b1", newIv.Start, newIv.End))
	mock.ExpectExec("INSERT INTO guide_reservations").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Swap(context.Background(), "guide-001", "b1", newIv))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Release(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepo(db)

	mock.ExpectExec("DELETE FROM guide_reservations").
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Release(context.Background(), "b1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
