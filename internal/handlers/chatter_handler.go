package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barfly/server/internal/middleware"
	"github.com/barfly/server/internal/models"
	"github.com/barfly/server/internal/services"
)

type postChatterRequest struct {
	Body string `json:"body"`
}

func PostChatter(cs *services.ChatterService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, logger, models.ErrUnauthenticated())
			return
		}

		var req postChatterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, logger, models.ErrInvalidChatter())
			return
		}

		if err := cs.Post(c.Request.Context(), c.Param("venueId"), identity, req.Body); err != nil {
			respondError(c, logger, err)
			return
		}

		// The chatter-posted event carries the content; nothing to echo.
		c.Status(http.StatusOK)
	}
}

func ListChatters(cs *services.ChatterService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatters, err := cs.List(c.Request.Context(), c.Param("venueId"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"chatters": chatters})
	}
}
