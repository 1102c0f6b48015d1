package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/barfly/server/internal/bus"
	"github.com/barfly/server/internal/models"
	"github.com/barfly/server/internal/yelp"
)

// VenueProvider is the external venue-search/detail collaborator. yelp.Client
// implements it; tests substitute fakes.
type VenueProvider interface {
	Search(ctx context.Context, query yelp.SearchQuery) (*yelp.SearchResult, error)
	Business(ctx context.Context, businessID string) (*yelp.Business, error)
}

// SearchCriteria is either a free-text location or a coordinate pair.
type SearchCriteria struct {
	Location  string
	Latitude  string
	Longitude string
}

func (sc SearchCriteria) empty() bool {
	return strings.TrimSpace(sc.Location) == "" &&
		strings.TrimSpace(sc.Latitude) == "" &&
		strings.TrimSpace(sc.Longitude) == ""
}

type VenueService struct {
	venues   models.VenueRepo
	provider VenueProvider
	bus      *bus.Bus
	logger   *slog.Logger
}

func NewVenueService(venues models.VenueRepo, provider VenueProvider, eventBus *bus.Bus, logger *slog.Logger) *VenueService {
	return &VenueService{
		venues:   venues,
		provider: provider,
		bus:      eventBus,
		logger:   logger,
	}
}

// Search polls the provider for one page of venues, drops permanently closed
// ones, and merges each survivor with its local attendant count, registering
// venues seen for the first time. The provider's 21st result is only a
// lookahead; it is never returned to the caller.
func (vs *VenueService) Search(ctx context.Context, criteria SearchCriteria, page int) (*models.SearchPage, error) {
	if criteria.empty() {
		return nil, models.ErrInvalidQuery()
	}

	result, err := vs.provider.Search(ctx, yelp.SearchQuery{
		Location:  criteria.Location,
		Latitude:  criteria.Latitude,
		Longitude: criteria.Longitude,
		Page:      page,
	})
	if err != nil {
		return nil, vs.classifyProviderError(err, "search")
	}

	if result.Total == 0 {
		return nil, models.ErrNoResults()
	}

	lastPage := len(result.Businesses) < yelp.SearchLimit

	open := make([]yelp.Business, 0, yelp.PageSize)
	for _, business := range result.Businesses {
		if business.IsClosed {
			continue
		}
		open = append(open, business)
		if len(open) == yelp.PageSize {
			break
		}
	}

	venues := make([]models.VenueSummary, 0, len(open))
	for _, business := range open {
		going, err := vs.attendantCountOrRegister(ctx, business.ID)
		if err != nil {
			return nil, err
		}
		venues = append(venues, models.VenueSummary{
			ID:    business.ID,
			Name:  business.Name,
			Image: business.ImageURL,
			Going: going,
		})
	}

	return &models.SearchPage{Venues: venues, LastPage: lastPage}, nil
}

// FetchDetail fetches the venue's full provider attributes and attaches the
// live going count. A detail view is a discovery path of its own: an unknown
// open venue is registered as a side effect, but a closed one never is.
func (vs *VenueService) FetchDetail(ctx context.Context, venueID string) (*models.VenueDetail, error) {
	venue, err := vs.venues.FindByBusinessID(ctx, venueID)
	if err != nil {
		vs.logger.Error("failed to look up venue", "venue_id", venueID, "error", err)
		return nil, models.ErrInternal()
	}

	business, err := vs.provider.Business(ctx, venueID)
	if err != nil {
		return nil, vs.classifyProviderError(err, "detail")
	}

	if business.IsClosed {
		return nil, models.ErrVenueClosed()
	}

	going := 0
	if venue != nil {
		going = venue.AttendantCount()
	} else {
		if _, err := vs.register(ctx, venueID); err != nil {
			return nil, err
		}
	}

	return &models.VenueDetail{
		Name:    business.Name,
		Image:   business.ImageURL,
		YelpURL: business.URL,
		Price:   business.Price,
		Rating:  business.Rating,
		Address: strings.Join(business.Location.DisplayAddress, ", "),
		Phone:   business.Phone,
		Going:   going,
	}, nil
}

func (vs *VenueService) IsAttending(ctx context.Context, venueID, userID string) (bool, error) {
	venue, err := vs.venues.FindByBusinessID(ctx, venueID)
	if err != nil {
		vs.logger.Error("failed to look up venue", "venue_id", venueID, "error", err)
		return false, models.ErrInternal()
	}
	if venue == nil {
		return false, models.ErrVenueNotFound()
	}
	return venue.IsAttending(userID), nil
}

// ToggleAttendance flips the user's membership and reports true when they
// joined. The event is published only after the ledger write has completed,
// so a subscriber can never observe a change the store does not yet reflect.
func (vs *VenueService) ToggleAttendance(ctx context.Context, venueID, userID string) (bool, error) {
	joined, err := vs.venues.ToggleAttendance(ctx, venueID, userID)
	if err != nil {
		if appErr, ok := models.AsAppError(err); ok {
			return false, appErr
		}
		vs.logger.Error("failed to toggle attendance", "venue_id", venueID, "user_id", userID, "error", err)
		return false, models.ErrInternal()
	}

	eventType := bus.AttendantRemoved
	if joined {
		eventType = bus.AttendantAdded
	}
	vs.bus.Publish(venueID, bus.Event{Type: eventType, VenueID: venueID})

	return joined, nil
}

func (vs *VenueService) attendantCountOrRegister(ctx context.Context, businessID string) (int, error) {
	venue, err := vs.venues.FindByBusinessID(ctx, businessID)
	if err != nil {
		vs.logger.Error("failed to look up venue", "venue_id", businessID, "error", err)
		return 0, models.ErrInternal()
	}
	if venue != nil {
		return venue.AttendantCount(), nil
	}
	if _, err := vs.register(ctx, businessID); err != nil {
		return 0, err
	}
	return 0, nil
}

func (vs *VenueService) register(ctx context.Context, businessID string) (bool, error) {
	created, err := vs.venues.Register(ctx, businessID)
	if err != nil {
		vs.logger.Error("failed to register venue", "venue_id", businessID, "error", err)
		return false, models.ErrInternal()
	}
	if created {
		vs.logger.Info("found new business", "venue_id", businessID)
	}
	return created, nil
}

func (vs *VenueService) classifyProviderError(err error, operation string) error {
	var statusErr *yelp.StatusError
	if errors.As(err, &statusErr) {
		vs.logger.Error("venue provider call failed",
			"operation", operation,
			"status", statusErr.Code,
			"error", err,
		)
		return models.ErrUpstreamUnavailable(statusErr.Code)
	}
	vs.logger.Error("venue provider call failed", "operation", operation, "error", err)
	return models.ErrUpstreamUnavailable(0)
}
