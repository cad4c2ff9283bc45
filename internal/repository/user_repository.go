package repository

import (
	"context"
	"database/sql"

	"github.com/locotranz/bus-reservation/internal/model"
)

// UserRepo provides CRUD operations for user accounts. Passwords arrive
// here already hashed; the repository never sees plaintext.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, phone, COALESCE(password_hash, ''), role`

// Create inserts a user record. On success the ID is populated. An
// empty PasswordHash is stored as NULL.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)`
	if u.Role == "" {
		u.Role = "user"
	}
	var hash interface{}
	if u.PasswordHash != "" {
		hash = u.PasswordHash
	}
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.Phone, hash, u.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByID returns a user or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users with offset pagination.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Update replaces name, email and phone, and the password hash when a
// new one is provided. Returns ErrUserNotFound when the user does not
// exist.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	if _, err := r.GetByID(ctx, u.ID); err != nil {
		return err
	}
	if u.PasswordHash != "" {
		const q = `UPDATE users SET name = ?, email = ?, phone = ?, password_hash = ? WHERE id = ?`
		_, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.Phone, u.PasswordHash, u.ID)
		return err
	}
	const q = `UPDATE users SET name = ?, email = ?, phone = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.Phone, u.ID)
	return err
}

// Delete removes a user. Returns ErrUserNotFound when no row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
