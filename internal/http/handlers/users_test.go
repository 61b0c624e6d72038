package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/auth"
	"backend/internal/repositories"
)

func newUserHandler(t *testing.T) (UserHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	h := UserHandler{
		Users:  repositories.UserRepository{DB: db},
		Tokens: auth.NewTokenService("test-secret", time.Hour),
		Hasher: auth.NewPasswordHasher(bcrypt.MinCost),
		Debug:  true,
	}
	return h, mock, func() { db.Close() }
}

func TestRegisterEndpointSuccess(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT(.+) FROM users WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := gin.New()
	r.POST("/api/users/register", h.Register)

	w := httptest.NewRecorder()
	body := `{"username":"alice","email":"a@example.com","password":"passw0rd!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "New user created successfully") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterEndpointMalformedBody(t *testing.T) {
	h, _, done := newUserHandler(t)
	defer done()

	r := gin.New()
	r.POST("/api/users/register", h.Register)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid request payload") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginEndpointReturnsAccessToken(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	hash, _ := h.Hasher.Hash("passw0rd!")
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(7, "alice", "a@example.com", hash, "user", now, now))

	r := gin.New()
	r.POST("/api/users/login", h.Login)

	w := httptest.NewRecorder()
	body := `{"email":"a@example.com","password":"passw0rd!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"accessToken":"`) {
		t.Fatalf("token missing from body: %s", w.Body.String())
	}
}

func TestLoginEndpointUnknownUser(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	r := gin.New()
	r.POST("/api/users/login", h.Login)

	w := httptest.NewRecorder()
	body := `{"email":"ghost@example.com","password":"passw0rd!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User does not exist") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
