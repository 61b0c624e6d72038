package db

import (
	"database/sql"
	"fmt"
)

// Unique indexes on users.email and cafe_tables.tablename are the authoritative
// uniqueness guard; service-level duplicate checks are an optimization only.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS cafe_tables (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		tablename VARCHAR(100) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'available',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_cafe_tables_tablename (tablename)
	)`,
}

// EnsureSchema creates the tables when they do not exist yet. Statements run
// one at a time because the DSN does not enable multiStatements.
func EnsureSchema(sqlDB *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable checks the active schema for a table of the given name.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	return err == nil && name.Valid
}
