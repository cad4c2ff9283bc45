// Package service holds the booking ledger: the orchestration that turns
// a seat-claim plus booking rows into one atomic reservation, and the
// compensating cancellation path. Handlers stay thin and delegate here so
// the transactional core can be exercised without HTTP.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
	"github.com/locotranz/bus-reservation/internal/utils"
)

// ErrInvalidStatus is returned by SetStatus for a status outside the
// closed booking status set.
var ErrInvalidStatus = errors.New("invalid booking status")

// ErrInvalidTransition is returned by SetStatus when the requested
// status is valid but not reachable from the booking's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// BookingService coordinates schedules, the seat inventory and booking
// persistence. All mutating operations run inside a single transaction
// so a failure after the seat claim rolls the claim back too; seats are
// never left stranded as unavailable without an owning booking.
type BookingService struct {
	db           *sql.DB
	scheduleRepo *repository.ScheduleRepo
	seatRepo     *repository.SeatRepo
	bookingRepo  *repository.BookingRepo
}

// NewBookingService constructs a BookingService. All dependencies must
// be non-nil.
func NewBookingService(db *sql.DB, scheduleRepo *repository.ScheduleRepo, seatRepo *repository.SeatRepo, bookingRepo *repository.BookingRepo) *BookingService {
	if db == nil || scheduleRepo == nil || seatRepo == nil || bookingRepo == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		db:           db,
		scheduleRepo: scheduleRepo,
		seatRepo:     seatRepo,
		bookingRepo:  bookingRepo,
	}
}

// ReserveInput carries a reservation request into the ledger. SeatIDs
// are seat identifiers, not seat numbers; UserID may be nil for
// anonymous bookings.
type ReserveInput struct {
	ScheduleID     uint64
	PassengerName  string
	PassengerPhone string
	UserID         *uint64
	SeatIDs        []uint64
}

// Reserve claims the requested seats and persists the booking with its
// seat associations as one atomic unit.
//
// Sequence: look up the schedule (repository.ErrScheduleNotFound when
// absent), claim the seats under row locks (repository.ErrSeatsNotFound
// or *repository.SeatConflictError propagate unchanged), derive the
// total fare from the schedule's per-seat fare, mint the reference
// token, then insert the booking and booking_seats rows. The claim and
// the inserts share one transaction, so any persistence failure rolls
// the seat flips back. No retry with alternate seats is attempted; that
// decision belongs to the caller.
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (*repository.BookingDetail, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	seats, err := s.seatRepo.ClaimTx(ctx, tx, in.ScheduleID, in.SeatIDs)
	if err != nil {
		return nil, err
	}
	totalFare := schedule.Fare * float64(len(seats))
	reference, err := utils.NewBookingReference(in.ScheduleID)
	if err != nil {
		return nil, err
	}
	booking := &model.Booking{
		UserID:         in.UserID,
		ScheduleID:     in.ScheduleID,
		PassengerName:  in.PassengerName,
		PassengerPhone: in.PassengerPhone,
		TotalFare:      totalFare,
		Status:         model.BookingConfirmed,
		QRCode:         &reference,
	}
	if err := s.bookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return nil, err
	}
	seatIDs := make([]uint64, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}
	if err := s.bookingRepo.CreateSeatsBulkTx(ctx, tx, booking.ID, seatIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	// Read the persisted shape back so the response carries the seat
	// association ids the inserts generated.
	return s.bookingRepo.GetDetail(ctx, booking.ID)
}

// Cancel removes a booking, releasing every seat it held. The release,
// the booking_seats deletion and the booking deletion form one atomic
// unit; cancelling a missing booking fails with
// repository.ErrBookingNotFound and has no side effect. This is the only
// path outside of transaction rollback by which a claimed seat returns
// to availability.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	seatIDs, err := s.bookingRepo.GetSeatIDsTx(ctx, tx, bookingID)
	if err != nil {
		return err
	}
	if err := s.seatRepo.ReleaseTx(ctx, tx, seatIDs); err != nil {
		return err
	}
	if err := s.bookingRepo.DeleteTx(ctx, tx, bookingID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetStatus updates the booking's status field. Statuses form a closed
// set with an explicit transition table; seat availability is never
// touched here. Returns the booking with seats resolved.
func (s *BookingService) SetStatus(ctx context.Context, bookingID uint64, status string) (*repository.BookingDetail, error) {
	if !model.ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionBooking(booking.Status, status) {
		return nil, ErrInvalidTransition
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetDetail(ctx, bookingID)
}
