// Copyright 2026 movierec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"context"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB is the storage backend based on MongoDB.
type MongoDB struct {
	client            *mongo.Client
	dbName            string
	ratingsCollection string
	outputCollection  string
}

// Init collections and indices in MongoDB.
func (db *MongoDB) Init() error {
	ctx := context.Background()
	d := db.client.Database(db.dbName)
	// list collections
	collections, err := d.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return errors.Trace(err)
	}
	if !lo.Contains(collections, db.outputCollection) {
		if err = d.CreateCollection(ctx, db.outputCollection); err != nil {
			return errors.Trace(err)
		}
	}
	// create index
	_, err = d.Collection(db.outputCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1,
		},
		Options: options.Index().SetUnique(true),
	})
	return errors.Trace(err)
}

// Ping the MongoDB server.
func (db *MongoDB) Ping() error {
	return db.client.Ping(context.Background(), nil)
}

// Close connection to MongoDB.
func (db *MongoDB) Close() error {
	return db.client.Disconnect(context.Background())
}

// LoadRatings loads all rating rows from the ratings collection. Only the
// user_id, movie_id and rating fields are fetched.
func (db *MongoDB) LoadRatings(ctx context.Context) ([]Rating, error) {
	c := db.client.Database(db.dbName).Collection(db.ratingsCollection)
	count, err := c.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	opt := options.Find()
	opt.SetProjection(bson.M{"user_id": 1, "movie_id": 1, "rating": 1})
	r, err := c.Find(ctx, bson.M{}, opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer r.Close(ctx)
	bar := progressbar.Default(count, "load ratings")
	ratings := make([]Rating, 0, count)
	for r.Next(ctx) {
		var rating Rating
		if err = r.Decode(&rating); err != nil {
			return nil, errors.Trace(err)
		}
		ratings = append(ratings, rating)
		_ = bar.Add(1)
	}
	if err = r.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	_ = bar.Finish()
	return ratings, nil
}

// OverwriteUserRecommendations replaces the whole output collection. The old
// collection is dropped first, so a failed insert leaves the collection
// empty rather than mixed.
func (db *MongoDB) OverwriteUserRecommendations(ctx context.Context, recommendations []UserRecommendations) error {
	c := db.client.Database(db.dbName).Collection(db.outputCollection)
	if err := c.Drop(ctx); err != nil {
		return errors.Trace(err)
	}
	if len(recommendations) > 0 {
		rows := lo.Map(recommendations, func(r UserRecommendations, _ int) interface{} { return r })
		if _, err := c.InsertMany(ctx, rows); err != nil {
			return errors.Trace(err)
		}
	}
	// dropping the collection dropped its indices as well
	return db.Init()
}

// CountUserRecommendations returns the number of rows in the output collection.
func (db *MongoDB) CountUserRecommendations(ctx context.Context) (int64, error) {
	c := db.client.Database(db.dbName).Collection(db.outputCollection)
	count, err := c.CountDocuments(ctx, bson.M{})
	return count, errors.Trace(err)
}
