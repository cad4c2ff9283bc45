package repository

import (
	"context"
	"database/sql"

	"github.com/locotranz/bus-reservation/internal/model"
)

// PaymentRepo provides CRUD operations for payments. Payments reference
// exactly one booking; status is recorded as reported by the caller and
// never verified against an external processor.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `id, booking_id, amount, payment_method, status, transaction_id`

// Create inserts a payment record. On success the ID is populated.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (booking_id, amount, payment_method, status, transaction_id)
	           VALUES (?, ?, ?, ?, ?)`
	var txn interface{}
	if p.TransactionID != nil {
		txn = *p.TransactionID
	}
	res, err := r.db.ExecContext(ctx, q, p.BookingID, p.Amount, p.PaymentMethod, p.Status, txn)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID returns a payment or ErrPaymentNotFound.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`
	var p model.Payment
	var txn sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.Status, &txn)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if txn.Valid {
		t := txn.String
		p.TransactionID = &t
	}
	return &p, nil
}

// List returns payments with offset pagination.
func (r *PaymentRepo) List(ctx context.Context, skip, limit int) ([]model.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT ` + paymentColumns + ` FROM payments ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var txn sql.NullString
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.Status, &txn); err != nil {
			return nil, err
		}
		if txn.Valid {
			t := txn.String
			p.TransactionID = &t
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus sets the payment status field only. Returns
// ErrPaymentNotFound when the payment does not exist.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Payment, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE payments SET status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return nil, err
	}
	p.Status = status
	return p, nil
}

// Delete removes a payment. Returns ErrPaymentNotFound when no row was
// deleted.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
