package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"
)

// UserHandler mounts the account endpoints.
type UserHandler struct {
	Users  repositories.UserRepository
	Tokens *auth.TokenService
	Hasher auth.PasswordHasher
	Debug  bool
}

func (h UserHandler) service(c *gin.Context) services.UserService {
	return services.UserService{
		Users:     h.Users,
		Tokens:    h.Tokens,
		Hasher:    h.Hasher,
		RequestID: middleware.GetRequestID(c),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/register
func (h UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, h.Debug, &req) {
		return
	}

	if err := h.service(c).Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusCreated, "New user created successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/login
func (h UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, h.Debug, &req) {
		return
	}

	token, err := h.service(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// GET /api/users/profile
func (h UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondDomainError(c, h.Debug, domain.InternalError{Msg: "Error authenticating user"})
		return
	}

	user, err := h.service(c).Profile(c.Request.Context(), principal.ID)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusOK, "User Profile fetch success", user)
}

type editProfileRequest struct {
	Username string `json:"username"`
}

// PATCH /api/users/profile
func (h UserHandler) EditProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondDomainError(c, h.Debug, domain.InternalError{Msg: "Error authenticating user"})
		return
	}

	var req editProfileRequest
	if !BindJSONOrError(c, h.Debug, &req) {
		return
	}

	user, err := h.service(c).UpdateUsername(c.Request.Context(), principal, principal.ID, req.Username)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusOK, "Username updated successfully", user)
}
