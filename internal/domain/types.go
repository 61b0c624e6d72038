package domain

// Role values stored on user rows.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated identity resolved for the current request.
// It lives for one request only and is never persisted.
type Principal struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}
