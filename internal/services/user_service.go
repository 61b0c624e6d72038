package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordPolicyMsg = "Password must be 8-15 characters long, include at least one number and one special character"

// validPassword enforces 8-15 chars with at least one digit and one special
// character. Spelled out because RE2 has no lookahead.
func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 15 {
		return false
	}
	hasDigit, hasSpecial := false, false
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}
	return hasDigit && hasSpecial
}

// UserService composes the account operations: register, login, profile,
// and the owner-only username edit.
type UserService struct {
	Users     repositories.UserRepository
	Tokens    *auth.TokenService
	Hasher    auth.PasswordHasher
	RequestID string
}

// Register validates input, hashes the password, and inserts the account.
// The duplicate pre-check gives a friendly error; the unique index on email
// still decides under concurrent registration.
func (s UserService) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return domain.ValidationError{Msg: "All fields are required"}
	}
	if !emailPattern.MatchString(email) {
		return domain.ValidationError{Field: "email", Msg: "Invalid email format"}
	}
	if !validPassword(password) {
		return domain.ValidationError{Field: "password", Msg: passwordPolicyMsg}
	}

	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ConflictError{Resource: "User", Msg: "User already exists with this email"}
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	if _, err := s.Users.Create(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "users", "register", "email="+email)
	return nil
}

// Login verifies credentials and issues a bearer token.
func (s UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.ValidationError{Msg: "All fields are required"}
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NotFoundError{Resource: "User", Msg: "User does not exist", Err: err}
		}
		return "", err
	}

	if !s.Hasher.Compare(user.PasswordHash, password) {
		return "", domain.ValidationError{Msg: "Incorrect password"}
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "login", "email="+email)
	return token, nil
}

// Profile returns the principal's own record.
func (s UserService) Profile(ctx context.Context, principalID int64) (models.User, error) {
	return s.Users.GetByID(ctx, principalID)
}

// UpdateUsername edits the username of targetID. Only the owner may edit:
// a principal whose id differs from the target fails with Forbidden.
func (s UserService) UpdateUsername(ctx context.Context, principal domain.Principal, targetID int64, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, domain.ValidationError{Field: "username", Msg: "Username is required to update"}
	}

	user, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return models.User{}, err
	}

	if principal.ID != user.ID {
		return models.User{}, domain.ForbiddenError{Msg: "You are not allowed to edit this profile"}
	}

	if err := s.Users.UpdateUsername(ctx, user.ID, username); err != nil {
		return models.User{}, err
	}
	user.Username = username

	utils.LogEvent(s.RequestID, "users", "update_username", "user_id="+strconv.FormatInt(user.ID, 10))
	return user, nil
}
