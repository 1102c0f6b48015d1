package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatterRepo interface {
	Insert(ctx context.Context, chatter *Chatter) error

	// ListRecent returns the venue's chatters posted after since, newest
	// first, capped at limit. The since filter keeps expired chatters out of
	// responses even before the store's TTL sweep physically purges them.
	ListRecent(ctx context.Context, businessID string, since time.Time, limit int64) ([]Chatter, error)
}

func (mo *MongodbRepo) Insert(ctx context.Context, chatter *Chatter) error {
	if _, err := mo.chatters().InsertOne(ctx, chatter); err != nil {
		return fmt.Errorf("failed to save chatter for venue %s: %v", chatter.BusinessID, err)
	}
	return nil
}

func (mo *MongodbRepo) ListRecent(ctx context.Context, businessID string, since time.Time, limit int64) ([]Chatter, error) {
	// _id descends with insertion order, which breaks posted_at ties the way
	// they were inserted.
	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := mo.chatters().Find(ctx, bson.M{
		"business_id": businessID,
		"posted_at":   bson.M{"$gt": since},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find chatters for venue %s: %v", businessID, err)
	}
	defer cursor.Close(ctx)

	var chatters []Chatter
	if err := cursor.All(ctx, &chatters); err != nil {
		return nil, fmt.Errorf("failed to decode chatters for venue %s: %v", businessID, err)
	}
	return chatters, nil
}
