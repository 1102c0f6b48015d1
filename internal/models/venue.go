package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Venue is the locally persisted record for an externally sourced venue.
// Only the external business ID and the attendant set are stored; display
// attributes are fetched fresh from the provider on every request.
type Venue struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BusinessID string             `bson:"business_id" json:"id"`
	Attendants []string           `bson:"attendants" json:"-"`
}

// AttendantCount is the only way a going count is ever derived.
func (v *Venue) AttendantCount() int {
	return len(v.Attendants)
}

func (v *Venue) IsAttending(userID string) bool {
	for _, id := range v.Attendants {
		if id == userID {
			return true
		}
	}
	return false
}

// VenueSummary is one entry of a search result page, merged from provider
// attributes and the local attendant count.
type VenueSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Going int    `json:"going"`
}

type SearchPage struct {
	Venues   []VenueSummary `json:"venues"`
	LastPage bool           `json:"lastPage"`
}

// VenueDetail is the full provider view of a venue plus the live going count.
type VenueDetail struct {
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	YelpURL string  `json:"yelpUrl"`
	Price   string  `json:"price"`
	Rating  float64 `json:"rating"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Going   int     `json:"going"`
}
