package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

const principalKey = "principal"

// PrincipalStore loads the account behind a verified token subject.
type PrincipalStore interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// RequireAuth resolves the request principal from the Authorization header.
// Missing, malformed, invalid, and expired credentials all answer 401 so
// clients cannot probe token validity. A verified subject whose account no
// longer exists answers 404.
func RequireAuth(tokens *auth.TokenService, store PrincipalStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortEnvelope(c, http.StatusUnauthorized, "Access denied")
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			tokenString = header
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			abortEnvelope(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := store.GetByID(c.Request.Context(), userID)
		if err != nil {
			if domain.IsNotFound(err) {
				abortEnvelope(c, http.StatusNotFound, "User not found")
				return
			}
			abortEnvelope(c, http.StatusInternalServerError, "Error authenticating user")
			return
		}

		c.Set(principalKey, domain.Principal{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RequireRoles allows only principals whose role is in allowedRoles.
// RequireAuth must run earlier in the chain.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortEnvelope(c, http.StatusUnauthorized, "Access denied")
			return
		}
		if _, ok := allowed[strings.ToLower(p.Role)]; !ok {
			abortEnvelope(c, http.StatusForbidden, "You are not allowed to access this resource")
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal attached by RequireAuth.
// Downstream handlers treat its presence as the only auth precondition.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func abortEnvelope(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    message,
		"detail":     nil,
	})
}
