package models

import "time"

// Table statuses.
const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
)

// ValidTableStatus reports whether s is an accepted status value.
func ValidTableStatus(s string) bool {
	return s == TableStatusAvailable || s == TableStatusOccupied
}

// Table is a cafe table row.
type Table struct {
	ID        int64     `json:"id"`
	TableName string    `json:"tablename"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
