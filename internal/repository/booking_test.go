package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/service/ports"
)

func newMockDB(t *testing.T) (*dbpg.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &dbpg.DB{Master: db}, mock
}

var bookingRows = []string{
	"id", "user_id", "entity_kind", "entity_id", "start_at", "end_at",
	"group_size", "state", "base_price", "total_price", "currency", "payment_status",
	"messages", "created_at", "updated_at",
}

func sampleBooking() *domain.Booking {
	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:        "b1",
		UserID:    "u1",
		EntityRef: domain.EntityRef{Kind: domain.KindGuide, ID: "guide-001"},
		Interval:  domain.Interval{Start: start, End: start.Add(2 * time.Hour)},
		GroupSize: 2,
		State:     domain.BookingStatePending,
		Pricing:   domain.Pricing{BasePrice: 1500, TotalPrice: 3000, Currency: "INR", PaymentStatus: domain.PaymentUnpaid},
		CreatedAt: start.Add(-24 * time.Hour),
		UpdatedAt: start.Add(-24 * time.Hour),
	}
}

func addBookingRow(rows *sqlmock.Rows, b *domain.Booking) *sqlmock.Rows {
	return rows.AddRow(
		b.ID, b.UserID, string(b.EntityRef.Kind), b.EntityRef.ID,
		b.Interval.Start, b.Interval.End, b.GroupSize, string(b.State),
		b.Pricing.BasePrice, b.Pricing.TotalPrice, b.Pricing.Currency, string(b.Pricing.PaymentStatus),
		[]byte(`[]`), b.CreatedAt, b.UpdatedAt,
	)
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b := sampleBooking()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b := sampleBooking()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs("b1").
		WillReturnRows(addBookingRow(sqlmock.NewRows(bookingRows), b))

	got, err := repo.GetByID(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Interval, got.Interval)
	assert.Equal(t, b.Pricing.TotalPrice, got.Pricing.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs("b404").
		WillReturnRows(sqlmock.NewRows(bookingRows))

	_, err := repo.GetByID(context.Background(), "b404")

	var nerr *domain.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "b404", nerr.ID)
}

func TestBookingRepository_Update_StateGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b := sampleBooking()
	b.State = domain.BookingStateConfirmed

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), b, domain.BookingStatePending))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Update_ConflictOnZeroRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b := sampleBooking()

	// Another writer already moved the booking out of the expected state.
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), b, domain.BookingStateConfirmed)

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestBookingRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs("b404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "b404")

	var nerr *domain.NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestBookingRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b1, b2 := sampleBooking(), sampleBooking()
	b2.ID = "b2"

	rows := sqlmock.NewRows(bookingRows)
	addBookingRow(rows, b1)
	addBookingRow(rows, b2)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs("u1", "pending", nil).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), ports.BookingQuery{
		UserID: "u1",
		State:  domain.BookingStatePending,
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelStalePending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	b := sampleBooking()
	b.State = domain.BookingStateCancelled

	mock.ExpectQuery("UPDATE bookings").
		WithArgs("pending", "cancelled", float64(1800)).
		WillReturnRows(addBookingRow(sqlmock.NewRows(bookingRows), b))

	got, err := repo.CancelStalePending(context.Background(), 30*time.Minute)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.BookingStateCancelled, got[0].State)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CompleteElapsed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	now := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	b := sampleBooking()
	b.State = domain.BookingStateCompleted

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("confirmed", "completed", now).
		WillReturnRows(addBookingRow(sqlmock.NewRows(bookingRows), b))
	mock.ExpectExec("DELETE FROM guide_reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.CompleteElapsed(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CompleteElapsed_NothingToDo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db)
	now := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("confirmed", "completed", now).
		WillReturnRows(sqlmock.NewRows(bookingRows))
	mock.ExpectCommit()

	got, err := repo.CompleteElapsed(context.Background(), now)

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
