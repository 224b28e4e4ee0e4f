package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func workerIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetName("uid_idx"),
		},
		// Listing: status filter plus the ranking sort
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "rating", Value: -1},
				{Key: "review_count", Value: -1},
			},
			Options: options.Index().SetName("status_rating_idx"),
		},
		{
			Keys: bson.D{
				{Key: "location.city", Value: 1},
				{Key: "status", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().SetName("city_status_category_idx"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "verified", Value: 1},
			},
			Options: options.Index().SetName("status_verified_idx"),
		},
	}
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetName("uid_idx"),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("email_unique"),
		},
	}
}

// EnsureIndexes creates the indexes backing the worker queries and seeker lookups.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	for colName, indexes := range map[string][]mongo.IndexModel{
		WorkersColName: workerIndexes(),
		UsersColName:   userIndexes(),
	} {
		col, err := mdb.GetCollection(ctx, colName)
		if err != nil {
			return fmt.Errorf("error getting collection: %v", err)
		}
		if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("error creating indexes on %s: %v", colName, err)
		}
	}
	return nil
}
