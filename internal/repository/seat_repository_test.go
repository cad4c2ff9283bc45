package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func seatRows(rows ...[]driverSeat) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"id", "schedule_id", "seat_number", "is_available"})
	for _, set := range rows {
		for _, s := range set {
			r.AddRow(s.id, s.scheduleID, s.number, s.available)
		}
	}
	return r
}

type driverSeat struct {
	id         uint64
	scheduleID uint64
	number     uint32
	available  bool
}

func TestClaimTxFlipsAvailableSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101, 102).
		WillReturnRows(seatRows([]driverSeat{
			{101, 7, 1, true},
			{102, 7, 2, true},
		}))
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(101, 102).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	seats, err := repo.ClaimTx(context.Background(), tx, 7, []uint64{101, 102})
	if err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("expected 2 claimed seats, got %d", len(seats))
	}
	for _, s := range seats {
		if s.IsAvailable {
			t.Fatalf("seat %d still marked available after claim", s.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimTxConflictOnTakenSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101, 102).
		WillReturnRows(seatRows([]driverSeat{
			{101, 7, 1, true},
			{102, 7, 2, false},
		}))
	mock.ExpectRollback()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	_, err = repo.ClaimTx(context.Background(), tx, 7, []uint64{101, 102})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if conflict.SeatNumber != 2 {
		t.Fatalf("conflict names seat number %d, want 2", conflict.SeatNumber)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimTxRejectsUnknownSeatIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Only one of the two requested ids belongs to the schedule.
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(7, 101, 999).
		WillReturnRows(seatRows([]driverSeat{
			{101, 7, 1, true},
		}))
	mock.ExpectRollback()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	_, err = repo.ClaimTx(context.Background(), tx, 7, []uint64{101, 999})
	if !errors.Is(err, ErrSeatsNotFound) {
		t.Fatalf("expected ErrSeatsNotFound, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimTxEmptySeatList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	if _, err := repo.ClaimTx(context.Background(), tx, 7, nil); !errors.Is(err, ErrSeatsNotFound) {
		t.Fatalf("expected ErrSeatsNotFound for empty seat list, got %v", err)
	}
	_ = tx.Rollback()
}

func TestReleaseTxMarksSeatsAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE seats SET is_available = 1").
		WithArgs(101, 102).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	if err := repo.ReleaseTx(context.Background(), tx, []uint64{101, 102}); err != nil {
		t.Fatalf("release error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseTxEmptyListNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := NewSeatRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	// No Exec expectation registered: touching the DB would fail the test.
	if err := repo.ReleaseTx(context.Background(), tx, nil); err != nil {
		t.Fatalf("release of empty list should be a no-op, got %v", err)
	}
	_ = tx.Rollback()
}

func TestEnsureForScheduleReturnsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Seats already exist, so no INSERT must be issued.
	mock.ExpectQuery("FROM seats WHERE schedule_id").
		WithArgs(7).
		WillReturnRows(seatRows([]driverSeat{
			{101, 7, 1, true},
			{102, 7, 2, false},
		}))

	repo := NewSeatRepo(db)
	seats, err := repo.EnsureForSchedule(context.Background(), 7, 40)
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("expected existing 2 seats back, got %d", len(seats))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureForScheduleCreatesFullInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM seats WHERE schedule_id").
		WithArgs(7).
		WillReturnRows(seatRows(nil))
	mock.ExpectExec("INSERT INTO seats").
		WillReturnResult(sqlmock.NewResult(1, 3))
	mock.ExpectQuery("FROM seats WHERE schedule_id").
		WithArgs(7).
		WillReturnRows(seatRows([]driverSeat{
			{1, 7, 1, true},
			{2, 7, 2, true},
			{3, 7, 3, true},
		}))

	repo := NewSeatRepo(db)
	seats, err := repo.EnsureForSchedule(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("expected 3 generated seats, got %d", len(seats))
	}
	for i, s := range seats {
		if s.SeatNumber != uint32(i+1) {
			t.Fatalf("seat %d has number %d, want %d", i, s.SeatNumber, i+1)
		}
		if !s.IsAvailable {
			t.Fatalf("generated seat %d should start available", s.SeatNumber)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
