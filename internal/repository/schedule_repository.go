package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/locotranz/bus-reservation/internal/model"
)

// ScheduleRepo provides CRUD operations for schedules. A schedule ties a
// bus to a travel date with a per-seat fare; the booking service looks
// schedules up to derive fares, and the search query feeds the public
// route search endpoint.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleColumns = `id, bus_id, travel_date, departure_time, arrival_time, fare, status`

// Create inserts a schedule record. On success the ID is populated.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	const q = `INSERT INTO schedules (bus_id, travel_date, departure_time, arrival_time, fare, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if s.Status == "" {
		s.Status = model.ScheduleActive
	}
	res, err := r.db.ExecContext(ctx, q, s.BusID, s.TravelDate.Format("2006-01-02"),
		s.DepartureTime, s.ArrivalTime, s.Fare, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID returns a schedule or ErrScheduleNotFound.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.Schedule, error) {
	const q = `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	s, err := scanSchedule(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	return s, err
}

// List returns schedules with offset pagination.
func (r *ScheduleRepo) List(ctx context.Context, skip, limit int) ([]model.Schedule, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY id LIMIT ? OFFSET ?`
	return r.querySchedules(ctx, q, limit, skip)
}

// SearchByRoute returns active schedules travelling between the given
// stops on the given date, joined through the buses table.
func (r *ScheduleRepo) SearchByRoute(ctx context.Context, source, destination string, travelDate time.Time) ([]model.Schedule, error) {
	const q = `SELECT s.id, s.bus_id, s.travel_date, s.departure_time, s.arrival_time, s.fare, s.status
	           FROM schedules s
	           JOIN buses b ON b.id = s.bus_id
	           WHERE b.source_stop = ? AND b.destination_stop = ?
	             AND s.travel_date = ? AND s.status = ?
	           ORDER BY s.departure_time`
	return r.querySchedules(ctx, q, source, destination, travelDate.Format("2006-01-02"), model.ScheduleActive)
}

// Update replaces all mutable fields of a schedule. Returns
// ErrScheduleNotFound when the schedule does not exist.
func (r *ScheduleRepo) Update(ctx context.Context, s *model.Schedule) error {
	if _, err := r.GetByID(ctx, s.ID); err != nil {
		return err
	}
	const q = `UPDATE schedules
	           SET bus_id = ?, travel_date = ?, departure_time = ?, arrival_time = ?, fare = ?, status = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, s.BusID, s.TravelDate.Format("2006-01-02"),
		s.DepartureTime, s.ArrivalTime, s.Fare, s.Status, s.ID)
	return err
}

// Delete removes a schedule and its seats. Seats never outlive their
// schedule, so they are deleted in the same statement batch.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE schedule_id = ?`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*model.Schedule, error) {
	var s model.Schedule
	if err := row.Scan(&s.ID, &s.BusID, &s.TravelDate, &s.DepartureTime, &s.ArrivalTime, &s.Fare, &s.Status); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) querySchedules(ctx context.Context, query string, args ...interface{}) ([]model.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
