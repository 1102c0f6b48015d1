package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barfly/server/internal/middleware"
	"github.com/barfly/server/internal/models"
	"github.com/barfly/server/internal/services"
)

func SearchVenues(vs *services.VenueService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria := services.SearchCriteria{
			Location:  c.Query("location"),
			Latitude:  c.Query("latitude"),
			Longitude: c.Query("longitude"),
		}

		page := 0
		if raw := c.Query("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": &models.AppError{
					Status:  http.StatusBadRequest,
					Message: "Invalid page parameter.",
				}})
				return
			}
			page = parsed
		}

		result, err := vs.Search(c.Request.Context(), criteria, page)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func ViewVenue(vs *services.VenueService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID := c.Param("venueId")

		detail, err := vs.FetchDetail(c.Request.Context(), venueID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"venue": detail})
	}
}

func IsAttending(vs *services.VenueService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, logger, models.ErrUnauthenticated())
			return
		}

		attending, err := vs.IsAttending(c.Request.Context(), c.Param("venueId"), identity.UserID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"attending": attending})
	}
}

func ToggleAttend(vs *services.VenueService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, logger, models.ErrUnauthenticated())
			return
		}

		if _, err := vs.ToggleAttendance(c.Request.Context(), c.Param("venueId"), identity.UserID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusOK)
	}
}
