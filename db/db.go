package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	UserCollection      *mongo.Collection
	EventsCollection    *mongo.Collection
	NoticesCollection   *mongo.Collection
	InfoPagesCollection *mongo.Collection
	ModulesCollection   *mongo.Collection
	VideosCollection    *mongo.Collection
	PurchasesCollection *mongo.Collection
)

// Init connects the client and binds the named collections. Call once from
// main after configuration is loaded.
func Init(uri, dbName string) error {
	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return err
	}

	database := Client.Database(dbName)
	UserCollection = database.Collection("users")
	EventsCollection = database.Collection("events")
	NoticesCollection = database.Collection("notices")
	InfoPagesCollection = database.Collection("infopages")
	ModulesCollection = database.Collection("modules")
	VideosCollection = database.Collection("videos")
	PurchasesCollection = database.Collection("videopurchases")
	return nil
}

// EnsureIndexes creates the indexes the query paths depend on. The unique
// paymentid index is the idempotency barrier against replayed captures.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := PurchasesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"paymentid": 1},
			Options: options.Index().SetUnique(true).SetName("unique_paymentid"),
		},
		{Keys: bson.D{{Key: "userid", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "userid", Value: 1}, {Key: "videoids", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = EventsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "is_recurring", Value: 1}, {Key: "is_active", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = NoticesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
		{Keys: bson.M{"created_at": -1}},
	})
	if err != nil {
		return err
	}

	_, err = InfoPagesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"slug": 1},
		Options: options.Index().SetUnique(true).SetName("unique_slug"),
	})
	return err
}

// IsDuplicateKeyError reports whether an insert failed on a unique index.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
