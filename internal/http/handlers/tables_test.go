package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"backend/internal/repositories"
)

func newTableHandler(t *testing.T) (TableHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	h := TableHandler{Tables: repositories.TableRepository{DB: db}, Debug: true}
	return h, mock, func() { db.Close() }
}

func tableRows(pairs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "tablename", "status", "created_at", "updated_at"})
	now := time.Now()
	for i := 0; i < len(pairs); i += 2 {
		rows.AddRow(int64(len(pairs)/2-i/2), pairs[i], pairs[i+1], now, now)
	}
	return rows
}

type listEnvelope struct {
	TotalCount     int              `json:"total_count"`
	PrevPageNumber *int             `json:"prev_page_number"`
	NextPageNumber *int             `json:"next_page_number"`
	Data           []map[string]any `json:"data"`
}

func TestListTablesEnvelope(t *testing.T) {
	h, mock, done := newTableHandler(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT(.+) FROM cafe_tables WHERE status").
		WithArgs("occupied").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("FROM cafe_tables WHERE status").
		WithArgs("occupied", 10, 0).
		WillReturnRows(tableRows("T2", "occupied", "T1", "occupied"))

	r := gin.New()
	r.GET("/api/tables", h.List)

	w := httptest.NewRecorder()
	// foo is not whitelisted and must never reach the query
	req := httptest.NewRequest(http.MethodGet, "/api/tables?page=1&limit=10&status=occupied&foo=bar", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var env listEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if env.TotalCount != 25 {
		t.Fatalf("total_count=%d", env.TotalCount)
	}
	if env.PrevPageNumber != nil {
		t.Fatalf("prev_page_number should be null, got %d", *env.PrevPageNumber)
	}
	if env.NextPageNumber == nil || *env.NextPageNumber != 2 {
		t.Fatalf("next_page_number should be 2, got %v", env.NextPageNumber)
	}
	if len(env.Data) != 2 {
		t.Fatalf("data length=%d", len(env.Data))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListTablesEmptyDataSerializesAsArray(t *testing.T) {
	h, mock, done := newTableHandler(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT(.+) FROM cafe_tables").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM cafe_tables ORDER BY created_at DESC").
		WithArgs(10, 0).
		WillReturnRows(tableRows())

	r := gin.New()
	r.GET("/api/tables", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("data must serialize as [], got %s", w.Body.String())
	}
}

func TestCreateTableConflictAnswers400(t *testing.T) {
	h, mock, done := newTableHandler(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT(.+) FROM cafe_tables WHERE tablename").
		WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	r := gin.New()
	r.POST("/api/tables", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tables", strings.NewReader(`{"tablename":"T1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Table already exists") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"statusCode":400`) {
		t.Fatalf("envelope missing statusCode: %s", w.Body.String())
	}
}

func TestUpdateTableRejectsBadID(t *testing.T) {
	h, _, done := newTableHandler(t)
	defer done()

	r := gin.New()
	r.PATCH("/api/tables/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/tables/abc", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid table id") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
