package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
)

func newTestService(t *testing.T) (*BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := NewBookingService(db,
		repository.NewScheduleRepo(db),
		repository.NewSeatRepo(db),
		repository.NewBookingRepo(db))
	return svc, mock, func() { db.Close() }
}

func scheduleRow(id uint64, fare float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "bus_id", "travel_date", "departure_time", "arrival_time", "fare", "status"}).
		AddRow(id, 3, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "08:30", "12:45", fare, model.ScheduleActive)
}

func bookingRow(id uint64, status string, fare float64, created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "schedule_id", "passenger_name", "passenger_phone",
		"total_fare", "booking_status", "qr_code", "created_at",
	}).AddRow(id, nil, 7, "Asha Rao", "9876500000", fare, status, "dG9rZW4", created)
}

func TestReserveDerivesFareAndCommitsOnce(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM schedules WHERE id").
		WithArgs(7).
		WillReturnRows(scheduleRow(7, 150))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101, 102).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "is_available"}).
			AddRow(101, 7, 1, true).
			AddRow(102, 7, 2, true))
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(101, 102).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(55, 101, 55, 102).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()
	// Read-back after commit for the response payload.
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(55).
		WillReturnRows(bookingRow(55, model.BookingConfirmed, 300, created))
	mock.ExpectQuery("FROM booking_seats bs").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_id", "seat_number"}).
			AddRow(1, 101, 1).
			AddRow(2, 102, 2))

	detail, err := svc.Reserve(context.Background(), ReserveInput{
		ScheduleID:     7,
		PassengerName:  "Asha Rao",
		PassengerPhone: "9876500000",
		SeatIDs:        []uint64{101, 102},
	})
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if detail.TotalFare != 300 {
		t.Fatalf("total fare %v, want 300 (150 per seat x 2)", detail.TotalFare)
	}
	if detail.Status != model.BookingConfirmed {
		t.Fatalf("status %q, want %q", detail.Status, model.BookingConfirmed)
	}
	if len(detail.Seats) != 2 {
		t.Fatalf("expected 2 seat associations, got %d", len(detail.Seats))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveRollsBackClaimWhenBookingInsertFails(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery("FROM schedules WHERE id").
		WithArgs(7).
		WillReturnRows(scheduleRow(7, 150))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "is_available"}).
			AddRow(101, 7, 1, true))
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(101).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("duplicate entry"))
	// The seat flip shares the transaction, so the rollback undoes it.
	mock.ExpectRollback()

	_, err := svc.Reserve(context.Background(), ReserveInput{
		ScheduleID:     7,
		PassengerName:  "Asha Rao",
		PassengerPhone: "9876500000",
		SeatIDs:        []uint64{101},
	})
	if err == nil {
		t.Fatal("expected insert failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveUnknownSchedule(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery("FROM schedules WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "travel_date", "departure_time", "arrival_time", "fare", "status"}))

	_, err := svc.Reserve(context.Background(), ReserveInput{
		ScheduleID: 99,
		SeatIDs:    []uint64{101},
	})
	if !errors.Is(err, repository.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestReserveSeatConflictNoCommit(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery("FROM schedules WHERE id").
		WithArgs(7).
		WillReturnRows(scheduleRow(7, 150))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "is_available"}).
			AddRow(101, 7, 1, false))
	mock.ExpectRollback()

	_, err := svc.Reserve(context.Background(), ReserveInput{
		ScheduleID:     7,
		PassengerName:  "Asha Rao",
		PassengerPhone: "9876500000",
		SeatIDs:        []uint64{101},
	})
	var conflict *repository.SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelReleasesSeatsAndDeletes(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(55))
	mock.ExpectQuery("SELECT seat_id FROM booking_seats").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(101).AddRow(102))
	mock.ExpectExec("UPDATE seats SET is_available = 1").
		WithArgs(101, 102).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM booking_seats").
		WithArgs(55).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(55).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Cancel(context.Background(), 55); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelMissingBookingNoSideEffect(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Cancel(context.Background(), 404)
	if !errors.Is(err, repository.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusAllowsConfirmedToCompleted(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(55).
		WillReturnRows(bookingRow(55, model.BookingConfirmed, 300, created))
	mock.ExpectExec("UPDATE bookings SET booking_status").
		WithArgs(model.BookingCompleted, 55).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(55).
		WillReturnRows(bookingRow(55, model.BookingCompleted, 300, created))
	mock.ExpectQuery("FROM booking_seats bs").
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_id", "seat_number"}).AddRow(1, 101, 1))

	detail, err := svc.SetStatus(context.Background(), 55, model.BookingCompleted)
	if err != nil {
		t.Fatalf("set status error: %v", err)
	}
	if detail.Status != model.BookingCompleted {
		t.Fatalf("status %q, want %q", detail.Status, model.BookingCompleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusRejectsTerminalTransition(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(55).
		WillReturnRows(bookingRow(55, model.BookingCancelled, 300, created))

	_, err := svc.SetStatus(context.Background(), 55, model.BookingCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	// No expectations registered: an unknown status must not reach the DB.
	_, err := svc.SetStatus(context.Background(), 55, "EXPIRED")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
