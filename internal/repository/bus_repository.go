package repository

import (
	"context"
	"database/sql"

	"github.com/locotranz/bus-reservation/internal/model"
)

// BusRepo provides CRUD operations for buses.
type BusRepo struct {
	db *sql.DB
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo {
	return &BusRepo{db: db}
}

const busColumns = `id, bus_number, operator_name, bus_type, source_stop, destination_stop, total_seats`

// Create inserts a bus record. On success the ID is populated.
func (r *BusRepo) Create(ctx context.Context, b *model.Bus) error {
	const q = `INSERT INTO buses (bus_number, operator_name, bus_type, source_stop, destination_stop, total_seats)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.BusNumber, b.OperatorName, b.BusType,
		b.SourceStop, b.DestinationStop, b.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID returns a bus or ErrBusNotFound.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (*model.Bus, error) {
	const q = `SELECT ` + busColumns + ` FROM buses WHERE id = ?`
	var b model.Bus
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.BusNumber, &b.OperatorName, &b.BusType,
		&b.SourceStop, &b.DestinationStop, &b.TotalSeats,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBusNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns buses with offset pagination.
func (r *BusRepo) List(ctx context.Context, skip, limit int) ([]model.Bus, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT ` + busColumns + ` FROM buses ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	buses := make([]model.Bus, 0)
	for rows.Next() {
		var b model.Bus
		if err := rows.Scan(
			&b.ID, &b.BusNumber, &b.OperatorName, &b.BusType,
			&b.SourceStop, &b.DestinationStop, &b.TotalSeats,
		); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buses, nil
}

// Update replaces all mutable fields of a bus. Returns ErrBusNotFound
// when the bus does not exist.
func (r *BusRepo) Update(ctx context.Context, b *model.Bus) error {
	if _, err := r.GetByID(ctx, b.ID); err != nil {
		return err
	}
	const q = `UPDATE buses
	           SET bus_number = ?, operator_name = ?, bus_type = ?, source_stop = ?, destination_stop = ?, total_seats = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, b.BusNumber, b.OperatorName, b.BusType,
		b.SourceStop, b.DestinationStop, b.TotalSeats, b.ID)
	return err
}

// Delete removes a bus. Returns ErrBusNotFound when no row was deleted.
func (r *BusRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBusNotFound
	}
	return nil
}
