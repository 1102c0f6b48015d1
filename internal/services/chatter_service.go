package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/barfly/server/internal/bus"
	"github.com/barfly/server/internal/helpers"
	"github.com/barfly/server/internal/models"
)

type ChatterService struct {
	venues   models.VenueRepo
	chatters models.ChatterRepo
	bus      *bus.Bus
	logger   *slog.Logger
}

func NewChatterService(venues models.VenueRepo, chatters models.ChatterRepo, eventBus *bus.Bus, logger *slog.Logger) *ChatterService {
	return &ChatterService{
		venues:   venues,
		chatters: chatters,
		bus:      eventBus,
		logger:   logger,
	}
}

// Post appends a chatter to the venue's stream. Attendance is a hard
// precondition, and the body cap is enforced here at the single write path.
// The chatter-posted event goes out only after the save has completed.
func (cs *ChatterService) Post(ctx context.Context, venueID string, author helpers.Identity, body string) error {
	venue, err := cs.venues.FindByBusinessID(ctx, venueID)
	if err != nil {
		cs.logger.Error("failed to look up venue", "venue_id", venueID, "error", err)
		return models.ErrInternal()
	}
	if venue == nil {
		return models.ErrVenueNotFound()
	}

	if !venue.IsAttending(author.UserID) {
		return models.ErrNotAttending()
	}

	chatter := &models.Chatter{
		AuthorName: author.DisplayName,
		BusinessID: venueID,
		Body:       body,
		PostedAt:   time.Now().UTC(),
	}

	if err := models.Validate.Struct(chatter); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				if fieldErr.Field() == "Body" && fieldErr.Tag() == "max" {
					return models.ErrBodyTooLong()
				}
			}
		}
		return models.ErrInvalidChatter()
	}

	if err := cs.chatters.Insert(ctx, chatter); err != nil {
		cs.logger.Error("failed to save chatter", "venue_id", venueID, "error", err)
		return models.ErrInternal()
	}

	cs.bus.Publish(venueID, bus.Event{
		Type:    bus.ChatterPosted,
		VenueID: venueID,
		Author:  author.DisplayName,
		Body:    body,
	})

	return nil
}

// List returns the venue's unexpired chatters, newest first, capped at the
// stream limit. The TTL boundary is applied in the query so an entry past
// the retention window never surfaces, even before the store purges it.
func (cs *ChatterService) List(ctx context.Context, venueID string) ([]models.Chatter, error) {
	venue, err := cs.venues.FindByBusinessID(ctx, venueID)
	if err != nil {
		cs.logger.Error("failed to look up venue", "venue_id", venueID, "error", err)
		return nil, models.ErrInternal()
	}
	if venue == nil {
		return nil, models.ErrVenueNotFound()
	}

	since := time.Now().UTC().Add(-models.ChatterTTL)
	chatters, err := cs.chatters.ListRecent(ctx, venueID, since, models.ChatterListLimit)
	if err != nil {
		cs.logger.Error("failed to list chatters", "venue_id", venueID, "error", err)
		return nil, models.ErrInternal()
	}

	if len(chatters) == 0 {
		return nil, models.ErrNoChatters()
	}
	return chatters, nil
}
