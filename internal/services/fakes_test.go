package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/barfly/server/internal/models"
	"github.com/barfly/server/internal/yelp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues map[string]*models.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{venues: make(map[string]*models.Venue)}
}

func (f *fakeVenueRepo) seed(businessID string, attendants ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[businessID] = &models.Venue{BusinessID: businessID, Attendants: attendants}
}

func (f *fakeVenueRepo) FindByBusinessID(ctx context.Context, businessID string) (*models.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	venue, ok := f.venues[businessID]
	if !ok {
		return nil, nil
	}
	return &models.Venue{
		BusinessID: venue.BusinessID,
		Attendants: append([]string(nil), venue.Attendants...),
	}, nil
}

func (f *fakeVenueRepo) Register(ctx context.Context, businessID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.venues[businessID]; ok {
		return false, nil
	}
	f.venues[businessID] = &models.Venue{BusinessID: businessID, Attendants: []string{}}
	return true, nil
}

func (f *fakeVenueRepo) ToggleAttendance(ctx context.Context, businessID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	venue, ok := f.venues[businessID]
	if !ok {
		return false, models.ErrVenueNotFound()
	}
	for i, id := range venue.Attendants {
		if id == userID {
			venue.Attendants = append(venue.Attendants[:i], venue.Attendants[i+1:]...)
			return false, nil
		}
	}
	venue.Attendants = append(venue.Attendants, userID)
	return true, nil
}

type fakeChatterRepo struct {
	mu       sync.Mutex
	chatters []models.Chatter
}

func (f *fakeChatterRepo) Insert(ctx context.Context, chatter *models.Chatter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatters = append(f.chatters, *chatter)
	return nil
}

func (f *fakeChatterRepo) ListRecent(ctx context.Context, businessID string, since time.Time, limit int64) ([]models.Chatter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var recent []models.Chatter
	// Walk backwards so the result is newest-first with insertion order
	// breaking timestamp ties, the way the store query sorts.
	for i := len(f.chatters) - 1; i >= 0 && int64(len(recent)) < limit; i-- {
		chatter := f.chatters[i]
		if chatter.BusinessID != businessID || !chatter.PostedAt.After(since) {
			continue
		}
		recent = append(recent, chatter)
	}
	return recent, nil
}

func (f *fakeChatterRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chatters)
}

type fakeProvider struct {
	searchResult *yelp.SearchResult
	searchErr    error
	business     *yelp.Business
	businessErr  error
	lastQuery    yelp.SearchQuery
}

func (f *fakeProvider) Search(ctx context.Context, query yelp.SearchQuery) (*yelp.SearchResult, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeProvider) Business(ctx context.Context, businessID string) (*yelp.Business, error) {
	if f.businessErr != nil {
		return nil, f.businessErr
	}
	return f.business, nil
}

func openBusinesses(n int) []yelp.Business {
	businesses := make([]yelp.Business, n)
	for i := range businesses {
		businesses[i] = yelp.Business{
			ID:       "b" + string(rune('0'+i/10)) + string(rune('0'+i%10)),
			Name:     "Bar",
			ImageURL: "img",
		}
	}
	return businesses
}
