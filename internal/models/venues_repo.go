package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VenueRepo interface {
	// FindByBusinessID returns (nil, nil) when the venue has never been
	// registered locally.
	FindByBusinessID(ctx context.Context, businessID string) (*Venue, error)

	// Register creates the local record for a newly observed venue. It is
	// idempotent: racing callers leave exactly one record behind, guarded by
	// the unique index on business_id. Returns true if this call created it.
	Register(ctx context.Context, businessID string) (bool, error)

	// ToggleAttendance atomically flips the user's membership in the venue's
	// attendant set and reports true when the user joined, false when they
	// left. Returns ErrVenueNotFound for unregistered venues.
	ToggleAttendance(ctx context.Context, businessID, userID string) (bool, error)
}

func (mo *MongodbRepo) FindByBusinessID(ctx context.Context, businessID string) (*Venue, error) {
	var venue Venue
	err := mo.venues().FindOne(ctx, bson.M{"business_id": businessID}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find venue %s: %v", businessID, err)
	}
	return &venue, nil
}

func (mo *MongodbRepo) Register(ctx context.Context, businessID string) (bool, error) {
	res, err := mo.venues().UpdateOne(ctx,
		bson.M{"business_id": businessID},
		bson.M{"$setOnInsert": bson.M{
			"business_id": businessID,
			"attendants":  []string{},
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// A duplicate-key error means a racing caller won the upsert; the
		// record exists, which is the outcome we wanted.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to register venue %s: %v", businessID, err)
	}
	return res.UpsertedCount > 0, nil
}

func (mo *MongodbRepo) ToggleAttendance(ctx context.Context, businessID, userID string) (bool, error) {
	// Each update is guarded by the current membership state, so two
	// concurrent toggles from the same user can never both apply the same
	// direction. If a concurrent toggle slips between our two guarded
	// attempts, retry the flip against the new state.
	for attempt := 0; attempt < 3; attempt++ {
		res, err := mo.venues().UpdateOne(ctx,
			bson.M{"business_id": businessID, "attendants": userID},
			bson.M{"$pull": bson.M{"attendants": userID}},
		)
		if err != nil {
			return false, fmt.Errorf("failed to remove attendant from venue %s: %v", businessID, err)
		}
		if res.ModifiedCount == 1 {
			return false, nil
		}

		res, err = mo.venues().UpdateOne(ctx,
			bson.M{"business_id": businessID, "attendants": bson.M{"$ne": userID}},
			bson.M{"$addToSet": bson.M{"attendants": userID}},
		)
		if err != nil {
			return false, fmt.Errorf("failed to add attendant to venue %s: %v", businessID, err)
		}
		if res.ModifiedCount == 1 {
			return true, nil
		}

		// Neither guard matched: either the venue is unregistered or a
		// concurrent toggle changed the membership between the two updates.
		venue, err := mo.FindByBusinessID(ctx, businessID)
		if err != nil {
			return false, err
		}
		if venue == nil {
			return false, ErrVenueNotFound()
		}
	}
	return false, fmt.Errorf("failed to toggle attendance for venue %s: too much contention", businessID)
}
