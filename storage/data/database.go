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
	"strings"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	MongoPrefix    = "mongodb://"
	MongoSrvPrefix = "mongodb+srv://"
)

// Rating is one rating row in the source collection. Only the three fields
// consumed by the trainer are projected; anything else in the documents is
// ignored.
type Rating struct {
	UserId  int32   `bson:"user_id"`
	MovieId int32   `bson:"movie_id"`
	Rating  float64 `bson:"rating"`
}

// Recommendation is one entry of a recommendation list. Scores are stored as
// float64 since BSON has no single-precision type.
type Recommendation struct {
	MovieId int32   `bson:"movie_id"`
	Rating  float64 `bson:"rating"`
}

// UserRecommendations is the persisted top-K recommendation list of one user.
type UserRecommendations struct {
	UserId          int32            `bson:"user_id"`
	Recommendations []Recommendation `bson:"recommendations"`
}

// Database is the storage backend for ratings and recommendations.
type Database interface {
	// Init collections and indices.
	Init() error
	// Ping the database.
	Ping() error
	// Close the connection.
	Close() error
	// LoadRatings loads all rating rows from the ratings collection,
	// projected to the three consumed fields.
	LoadRatings(ctx context.Context) ([]Rating, error)
	// OverwriteUserRecommendations replaces the whole output collection with
	// the given rows. The operation is destructive: prior contents are lost.
	OverwriteUserRecommendations(ctx context.Context, recommendations []UserRecommendations) error
	// CountUserRecommendations returns the number of rows in the output
	// collection.
	CountUserRecommendations(ctx context.Context) (int64, error)
}

// Open a connection to a database. Only MongoDB URIs are supported.
func Open(path, ratingsCollection, outputCollection string) (Database, error) {
	if strings.HasPrefix(path, MongoPrefix) || strings.HasPrefix(path, MongoSrvPrefix) {
		// connect to database, read preference and other options come from
		// the URI itself (e.g. readPreference=primaryPreferred)
		database := new(MongoDB)
		opts := options.Client()
		opts.ApplyURI(path)
		var err error
		if database.client, err = mongo.Connect(context.Background(), opts); err != nil {
			return nil, errors.Trace(err)
		}
		// parse DSN and extract database name, a dotted namespace like
		// movies.movie_ratings names both the database and the ratings
		// collection
		if cs, err := connstring.ParseAndValidate(path); err != nil {
			return nil, errors.Trace(err)
		} else {
			database.dbName = cs.Database
			database.ratingsCollection = ratingsCollection
			if before, after, found := strings.Cut(cs.Database, "."); found {
				database.dbName = before
				database.ratingsCollection = after
			}
		}
		database.outputCollection = outputCollection
		return database, nil
	}
	return nil, errors.NotSupportedf("database %s", path)
}
