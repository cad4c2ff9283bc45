package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/locotranz/bus-reservation/internal/model"
)

// BookingRepo provides persistence for bookings and their seat
// association rows. Writes that are part of a reservation or
// cancellation run through the *Tx variants so the caller can keep the
// seat claim and the booking rows in one atomic unit.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingSeatDetail is one resolved seat association as returned to
// callers: the association row id, the seat id and its number.
type BookingSeatDetail struct {
	ID         uint64 `json:"id"`
	SeatID     uint64 `json:"seat_id"`
	SeatNumber uint32 `json:"seat_number"`
}

// BookingDetail is the persisted shape of a booking as exposed to the
// request layer: the booking fields plus its seat associations ordered
// by seat number.
type BookingDetail struct {
	ID             uint64              `json:"id"`
	UserID         *uint64             `json:"user_id"`
	ScheduleID     uint64              `json:"schedule_id"`
	PassengerName  string              `json:"passenger_name"`
	PassengerPhone string              `json:"passenger_phone"`
	TotalFare      float64             `json:"total_fare"`
	Status         string              `json:"booking_status"`
	Seats          []BookingSeatDetail `json:"seats"`
	QRCode         *string             `json:"qr_code,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// CreateTx inserts a booking within the scope of an existing
// transaction and populates the generated ID and creation timestamp on
// the provided record. The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (user_id, schedule_id, passenger_name, passenger_phone, total_fare, booking_status, qr_code)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var userID interface{}
	if b.UserID != nil {
		userID = *b.UserID
	}
	var qr interface{}
	if b.QRCode != nil {
		qr = *b.QRCode
	}
	result, err := tx.ExecContext(ctx, q, userID, b.ScheduleID, b.PassengerName, b.PassengerPhone,
		b.TotalFare, b.Status, qr)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the creation timestamp the database assigned.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// CreateSeatsBulkTx inserts one booking_seats row per claimed seat in a
// single statement. Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, seat_id) VALUES `
	args := make([]interface{}, 0, len(seatIDs)*2)
	for i, sid := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, bookingID, sid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns the bare booking record or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, schedule_id, passenger_name, passenger_phone,
	                  total_fare, booking_status, qr_code, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var userID sql.NullInt64
	var qr sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &userID, &b.ScheduleID, &b.PassengerName, &b.PassengerPhone,
		&b.TotalFare, &b.Status, &qr, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	if qr.Valid {
		token := qr.String
		b.QRCode = &token
	}
	return &b, nil
}

// GetDetail returns one booking with its seat associations resolved, or
// ErrBookingNotFound.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	det := detailFromBooking(b)
	const seatQ = `SELECT bs.id, bs.seat_id, se.seat_number
	               FROM booking_seats bs
	               JOIN seats se ON se.id = bs.seat_id
	               WHERE bs.booking_id = ?
	               ORDER BY se.seat_number`
	rows, err := r.db.QueryContext(ctx, seatQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sd BookingSeatDetail
		if err := rows.Scan(&sd.ID, &sd.SeatID, &sd.SeatNumber); err != nil {
			return nil, err
		}
		det.Seats = append(det.Seats, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return det, nil
}

// List returns bookings ordered newest first with their seat
// associations populated in a single follow-up query.
func (r *BookingRepo) List(ctx context.Context, skip, limit int) ([]BookingDetail, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT id, user_id, schedule_id, passenger_name, passenger_phone,
	                  total_fare, booking_status, qr_code, created_at
	           FROM bookings ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var b model.Booking
		var userID sql.NullInt64
		var qr sql.NullString
		if err := rows.Scan(
			&b.ID, &userID, &b.ScheduleID, &b.PassengerName, &b.PassengerPhone,
			&b.TotalFare, &b.Status, &qr, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			b.UserID = &uid
		}
		if qr.Valid {
			token := qr.String
			b.QRCode = &token
		}
		index[b.ID] = len(details)
		details = append(details, *detailFromBooking(&b))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Populate seats for all bookings in one query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQuery := `SELECT bs.booking_id, bs.id, bs.seat_id, se.seat_number
	              FROM booking_seats bs
	              JOIN seats se ON se.id = bs.seat_id
	              WHERE bs.booking_id IN (` + strings.Join(placeholders, ",") + `)
	              ORDER BY bs.booking_id, se.seat_number`
	srows, err := r.db.QueryContext(ctx, seatQuery, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var sd BookingSeatDetail
		if err := srows.Scan(&bid, &sd.ID, &sd.SeatID, &sd.SeatNumber); err != nil {
			return nil, err
		}
		idx, ok := index[bid]
		if !ok {
			continue
		}
		details[idx].Seats = append(details[idx].Seats, sd)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateStatus sets the booking status field only. Seat availability is
// never touched here; only cancellation releases seats.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE bookings SET booking_status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, status, id)
	return err
}

// GetSeatIDsTx returns the seat ids associated with a booking within a
// transaction, or ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) GetSeatIDsTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]uint64, error) {
	var exists uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, bookingID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := tx.QueryContext(ctx, `SELECT seat_id FROM booking_seats WHERE booking_id = ?`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seatIDs []uint64
	for rows.Next() {
		var sid uint64
		if err := rows.Scan(&sid); err != nil {
			return nil, err
		}
		seatIDs = append(seatIDs, sid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seatIDs, nil
}

// DeleteTx removes a booking and its seat association rows within the
// provided transaction. The caller is responsible for releasing the
// underlying seats first; the rows are removed together so a booking is
// never observable without its associations.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = ?`, bookingID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, bookingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// detailFromBooking copies the scalar fields of a booking into its
// response shape with an empty seat list.
func detailFromBooking(b *model.Booking) *BookingDetail {
	return &BookingDetail{
		ID:             b.ID,
		UserID:         b.UserID,
		ScheduleID:     b.ScheduleID,
		PassengerName:  b.PassengerName,
		PassengerPhone: b.PassengerPhone,
		TotalFare:      b.TotalFare,
		Status:         b.Status,
		Seats:          []BookingSeatDetail{},
		QRCode:         b.QRCode,
		CreatedAt:      b.CreatedAt,
	}
}
