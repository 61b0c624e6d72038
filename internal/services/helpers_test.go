package services

import (
	"database/sql"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"backend/internal/repositories"
)

func userRepoOn(db *sql.DB) repositories.UserRepository {
	return repositories.UserRepository{DB: db}
}

func tableRepoOn(db *sql.DB) repositories.TableRepository {
	return repositories.TableRepository{DB: db}
}

func storedUser(id int64, username, email, hash, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id, username, email, hash, role, now, now)
}

func nowRow() time.Time {
	return time.Now()
}

func storedTable(id int64, name, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "tablename", "status", "created_at", "updated_at"}).
		AddRow(id, name, status, now, now)
}
