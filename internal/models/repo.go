package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DbName          = "barfly"
	VenuesColName   = "venues"
	ChattersColName = "chatters"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mo *MongodbRepo) venues() *mongo.Collection {
	return mo.mongodbClient.Database(DbName).Collection(VenuesColName)
}

func (mo *MongodbRepo) chatters() *mongo.Collection {
	return mo.mongodbClient.Database(DbName).Collection(ChattersColName)
}
