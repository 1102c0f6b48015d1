package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/barfly/server/internal/models"
)

// respondError renders the API error envelope. Expected conditions (empty
// results and the like) pass through quietly; anything unclassified is
// logged with full context and surfaced as a generic internal error.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	appErr, classified := models.AsAppError(err)
	if !classified || !appErr.Expected() {
		requestID, _ := c.Get("request_id")
		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(appErr.Status, gin.H{"error": appErr})
}
