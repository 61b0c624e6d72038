package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// mysqlErrDuplicateEntry is ER_DUP_ENTRY, raised when a unique index rejects a row.
const mysqlErrDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// UserRepository wraps DB access for user rows.
type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID loads one user or a NotFoundError.
func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "User"}
		}
		return models.User{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return u, nil
}

// GetByEmail loads one user by email or a NotFoundError.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "User"}
		}
		return models.User{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return u, nil
}

// EmailExists reports whether a row already uses the email. Callers treat this
// as an optimization; the unique index remains the authoritative guard.
func (r UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check email", Err: err}
	}
	return n > 0, nil
}

// Create inserts a user and returns its id. A duplicate email surfaces as a
// ConflictError even when the pre-check raced another request.
func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "User", Msg: "User already exists with this email", Err: err}
		}
		return 0, domain.InternalError{Msg: "failed to create user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read new user id", Err: err}
	}
	return id, nil
}

// UpdateUsername changes the username of one user.
func (r UserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET username = ? WHERE id = ?`, username, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to update username", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// distinguish "row gone" from "same value": reload
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
