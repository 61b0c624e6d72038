package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/db"
)

// SystemHandler serves liveness and DB reachability probes.
type SystemHandler struct {
	DB *sql.DB
}

// GET /api/health
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func (h SystemHandler) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"schema": gin.H{
			"users":       db.HasTable(h.DB, "users"),
			"cafe_tables": db.HasTable(h.DB, "cafe_tables"),
		},
	})
}
