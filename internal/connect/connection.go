package connect

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
)

// supabase init
func InitSupabase() (*supabase.Client, error) {
	url := os.Getenv("SUPABASE_URL")
	key := os.Getenv("SUPABASE_URL_ANON_KEY")
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, err
	}
	SupabaseClient = client
	return client, nil
}

func Disconnect() {
	SupabaseClient = nil
}

// mongo init

func MongoDBConnect() (*mongo.Client, error) {
	uri := os.Getenv("MONGODB_URI")
	password := os.Getenv("MONGODB_PASSWORD")
	fullUri := strings.Replace(uri, "<password>", password, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(fullUri)

	var err error
	MongoDBClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := MongoDBClient.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	return MongoDBClient, nil
}

func MongoDBDisconnect() error {
	if MongoDBClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := MongoDBClient.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %v", err)
	}
	MongoDBClient = nil
	return nil
}

// EnsureIndexes creates the indexes the store contract depends on: venue
// registration races resolve through the unique business_id index, and
// chatters expire through the TTL index on posted_at.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName, venuesCol, chattersCol string, chatterTTL time.Duration) error {
	venues := client.Database(dbName).Collection(venuesCol)
	_, err := venues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "business_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create venues index: %v", err)
	}

	chatters := client.Database(dbName).Collection(chattersCol)
	_, err = chatters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "posted_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(chatterTTL.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to create chatters TTL index: %v", err)
	}

	_, err = chatters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "posted_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create chatters lookup index: %v", err)
	}

	return nil
}
