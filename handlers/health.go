package handlers

import (
	"context"
	"issuetracker/database"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	DB        string    `json:"db"`
}

// HealthCheck always answers 200; db reports whether the store answered a
// ping within one second.
func HealthCheck(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "up"

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			DB:        dbStatus,
		})
	}
}
