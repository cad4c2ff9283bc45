package repository // repository defines data access for schedule seats

import (
	"context"
	"database/sql"
	"strings"

	"github.com/locotranz/bus-reservation/internal/model"
)

// SeatRepo provides persistence for the per-schedule seat inventory.
// Seats are generated in bulk once per schedule and afterwards mutated
// only by the claim and release paths, which always run inside a
// caller-owned transaction.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so orchestration code can open
// transactions spanning seats and bookings.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// EnsureForSchedule creates seats numbered 1..totalSeats for the
// schedule, all available. The operation is idempotent per schedule:
// when any seats already exist the existing set is returned unchanged.
// It is not safe against concurrent invocation for the same schedule;
// callers run it once at schedule setup, never on the passenger path.
func (r *SeatRepo) EnsureForSchedule(ctx context.Context, scheduleID uint64, totalSeats uint32) ([]model.Seat, error) {
	existing, err := r.listBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	if totalSeats == 0 {
		return []model.Seat{}, nil
	}
	// Multi-row insert; one placeholder triple per seat.
	query := `INSERT INTO seats (schedule_id, seat_number, is_available) VALUES `
	args := make([]interface{}, 0, int(totalSeats)*3)
	for n := uint32(1); n <= totalSeats; n++ {
		if n > 1 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, scheduleID, n, true)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return r.listBySchedule(ctx, scheduleID)
}

// listBySchedule returns every seat of a schedule ordered by seat number.
func (r *SeatRepo) listBySchedule(ctx context.Context, scheduleID uint64) ([]model.Seat, error) {
	const q = `SELECT id, schedule_id, seat_number, is_available
	           FROM seats WHERE schedule_id = ? ORDER BY seat_number`
	return r.querySeats(ctx, q, scheduleID)
}

// ListAvailable returns all currently claimable seats of a schedule,
// ordered by seat number for deterministic output. Read-only.
func (r *SeatRepo) ListAvailable(ctx context.Context, scheduleID uint64) ([]model.Seat, error) {
	const q = `SELECT id, schedule_id, seat_number, is_available
	           FROM seats WHERE schedule_id = ? AND is_available = 1 ORDER BY seat_number`
	return r.querySeats(ctx, q, scheduleID)
}

// GetByID returns a single seat or ErrSeatNotFound.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, schedule_id, seat_number, is_available FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.ScheduleID, &s.SeatNumber, &s.IsAvailable)
	if err == sql.ErrNoRows {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetAvailability force-sets a seat's availability flag. This is an
// operator surface for correcting inventory; the reservation path never
// uses it.
func (r *SeatRepo) SetAvailability(ctx context.Context, id uint64, available bool) (*model.Seat, error) {
	seat, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE seats SET is_available = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, available, id); err != nil {
		return nil, err
	}
	seat.IsAvailable = available
	return seat, nil
}

// Delete removes a single seat. Returns ErrSeatNotFound when no row was
// deleted.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// ClaimTx atomically claims exactly the given seat ids on a schedule.
// The selected rows are locked with FOR UPDATE for the duration of the
// check-and-flip, so two concurrent claims over overlapping seats cannot
// both observe them as available: the second blocks on the row locks and
// then sees the first claim's writes.
//
// Failure modes:
//   - ErrSeatsNotFound when the locked row count differs from the
//     requested id count (nonexistent ids, duplicates, or seats of a
//     different schedule);
//   - *SeatConflictError naming the first unavailable seat's number.
//
// On any failure no rows are modified; the caller's rollback discards
// the locks. On success every seat is flipped to unavailable and the
// claimed seats are returned ordered by seat number.
func (r *SeatRepo) ClaimTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, seatIDs []uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, ErrSeatsNotFound
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, scheduleID)
	for i, id := range seatIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := `SELECT id, schedule_id, seat_number, is_available
	          FROM seats
	          WHERE schedule_id = ? AND id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY seat_number
	          FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0, len(seatIDs))
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.SeatNumber, &s.IsAvailable); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// One check covers nonexistent ids, duplicates and wrong-schedule ids.
	if len(seats) != len(seatIDs) {
		return nil, ErrSeatsNotFound
	}
	for _, s := range seats {
		if !s.IsAvailable {
			return nil, &SeatConflictError{SeatNumber: s.SeatNumber}
		}
	}
	upd := `UPDATE seats SET is_available = 0
	        WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	if _, err := tx.ExecContext(ctx, upd, args[1:]...); err != nil {
		return nil, err
	}
	for i := range seats {
		seats[i].IsAvailable = false
	}
	return seats, nil
}

// ReleaseTx marks the given seats available again inside the provided
// transaction. It is the compensating action for a cancelled booking and
// is idempotent: releasing an already-available seat is a no-op.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs))
	for i, id := range seatIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := `UPDATE seats SET is_available = 1
	          WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// querySeats runs a seat-shaped query and scans the result set.
func (r *SeatRepo) querySeats(ctx context.Context, query string, args ...interface{}) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.SeatNumber, &s.IsAvailable); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}
