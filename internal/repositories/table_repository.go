package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/query"
)

// tableFilterFields lists the filter fields with a matching column. Filter
// keys outside this list never reach SQL, and clause order stays stable.
var tableFilterFields = []string{"tablename", "status"}

// TableRepository wraps DB access for cafe_tables rows and implements
// query.Collection for the paginator.
type TableRepository struct {
	DB *sql.DB
}

const tableColumns = `id, tablename, status, created_at, updated_at`

func buildTableWhere(f query.Filter) (string, []any) {
	clauses := []string{}
	args := []any{}
	for _, field := range tableFilterFields {
		if v, ok := f[field]; ok {
			clauses = append(clauses, field+" = ?")
			args = append(args, v)
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Count returns the number of rows matching the filter.
func (r TableRepository) Count(ctx context.Context, f query.Filter) (int, error) {
	where, args := buildTableWhere(f)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM cafe_tables`+where, args...).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to count tables", Err: err}
	}
	return n, nil
}

// Find returns one page of rows, newest first.
func (r TableRepository) Find(ctx context.Context, f query.Filter, limit, offset int) ([]models.Table, error) {
	where, args := buildTableWhere(f)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+tableColumns+`
		FROM cafe_tables`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list tables", Err: err}
	}
	defer rows.Close()

	out := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.TableName, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan table row", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to read table rows", Err: err}
	}
	return out, nil
}

// FindAll returns every row matching the filter, newest first.
func (r TableRepository) FindAll(ctx context.Context, f query.Filter) ([]models.Table, error) {
	total, err := r.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []models.Table{}, nil
	}
	return r.Find(ctx, f, total, 0)
}

// GetByID loads one table or a NotFoundError.
func (r TableRepository) GetByID(ctx context.Context, id int64) (models.Table, error) {
	var t models.Table
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM cafe_tables WHERE id = ? LIMIT 1`, id).
		Scan(&t.ID, &t.TableName, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Table{}, domain.NotFoundError{Resource: "Table"}
		}
		return models.Table{}, domain.InternalError{Msg: "failed to load table", Err: err}
	}
	return t, nil
}

// NameExists reports whether a row already uses the name (pre-check only;
// the unique index stays authoritative).
func (r TableRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cafe_tables WHERE tablename = ?`, name).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Msg: "failed to check table name", Err: err}
	}
	return n > 0, nil
}

// Create inserts a table and returns its id.
func (r TableRepository) Create(ctx context.Context, t models.Table) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO cafe_tables (tablename, status) VALUES (?, ?)`, t.TableName, t.Status)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "Table", Msg: "Table already exists", Err: err}
		}
		return 0, domain.InternalError{Msg: "failed to create table", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read new table id", Err: err}
	}
	return id, nil
}

// Update writes tablename and status for one row.
func (r TableRepository) Update(ctx context.Context, t models.Table) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE cafe_tables SET tablename = ?, status = ? WHERE id = ?`,
		t.TableName, t.Status, t.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ConflictError{Resource: "Table", Msg: "Table already exists", Err: err}
		}
		return domain.InternalError{Msg: "failed to update table", Err: err}
	}
	return nil
}

// Delete removes one row; a missing row is a NotFoundError.
func (r TableRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cafe_tables WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete table", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "Table"}
	}
	return nil
}
