package services

import (
	"context"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/query"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// TableFilterFields is the whitelist for the table listing endpoint.
var TableFilterFields = []string{"tablename", "status"}

// TablePatch carries the optional fields of a partial table update.
// Nil means "leave unchanged".
type TablePatch struct {
	TableName *string `json:"tablename"`
	Status    *string `json:"status"`
}

// TableService composes table CRUD with the shared filter/paginator pieces.
type TableService struct {
	Tables    repositories.TableRepository
	RequestID string
}

// List returns one page of tables matching the whitelisted filter.
func (s TableService) List(ctx context.Context, req query.PageRequest, f query.Filter) (query.PageResult[models.Table], error) {
	return query.Paginate(ctx, req, f, s.Tables)
}

// Create inserts a table. The duplicate-name pre-check is advisory; the
// unique index decides when two creates race.
func (s TableService) Create(ctx context.Context, tablename, status string) (models.Table, error) {
	tablename = strings.TrimSpace(tablename)
	if tablename == "" {
		return models.Table{}, domain.ValidationError{Field: "tablename", Msg: "Table name is required"}
	}

	status = strings.TrimSpace(status)
	if status == "" {
		status = models.TableStatusAvailable
	}
	if !models.ValidTableStatus(status) {
		return models.Table{}, domain.ValidationError{Field: "status", Msg: status + " is not a valid status"}
	}

	exists, err := s.Tables.NameExists(ctx, tablename)
	if err != nil {
		return models.Table{}, err
	}
	if exists {
		return models.Table{}, domain.ConflictError{Resource: "Table", Msg: "Table already exists"}
	}

	id, err := s.Tables.Create(ctx, models.Table{TableName: tablename, Status: status})
	if err != nil {
		return models.Table{}, err
	}

	utils.LogEvent(s.RequestID, "tables", "create", "table_id="+strconv.FormatInt(id, 10))
	return s.Tables.GetByID(ctx, id)
}

// Update applies a partial patch to one table.
func (s TableService) Update(ctx context.Context, id int64, patch TablePatch) (models.Table, error) {
	table, err := s.Tables.GetByID(ctx, id)
	if err != nil {
		return models.Table{}, err
	}

	if patch.TableName != nil {
		name := strings.TrimSpace(*patch.TableName)
		if name == "" {
			return models.Table{}, domain.ValidationError{Field: "tablename", Msg: "Table name is required"}
		}
		table.TableName = name
	}
	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		if !models.ValidTableStatus(status) {
			return models.Table{}, domain.ValidationError{Field: "status", Msg: status + " is not a valid status"}
		}
		table.Status = status
	}

	if err := s.Tables.Update(ctx, table); err != nil {
		return models.Table{}, err
	}

	utils.LogEvent(s.RequestID, "tables", "update", "table_id="+strconv.FormatInt(id, 10))
	return s.Tables.GetByID(ctx, id)
}

// Delete removes one table.
func (s TableService) Delete(ctx context.Context, id int64) error {
	if err := s.Tables.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "tables", "delete", "table_id="+strconv.FormatInt(id, 10))
	return nil
}
