package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ChatterTTL is the retention window after which a chatter expires,
	// enforced both by the store's TTL index and at query time.
	ChatterTTL = 24 * time.Hour

	// ChatterListLimit caps how many chatters a single list call returns.
	ChatterListLimit = 100

	// ChatterBodyLimit is the maximum chatter body length in characters.
	ChatterBodyLimit = 140
)

// Chatter is one short-lived public message posted against a venue.
type Chatter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AuthorName string             `bson:"author_name" json:"author" validate:"required"`
	BusinessID string             `bson:"business_id" json:"-" validate:"required"`
	Body       string             `bson:"body" json:"body" validate:"required,max=140"`
	PostedAt   time.Time          `bson:"posted_at" json:"-"`
}
