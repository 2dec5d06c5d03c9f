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

package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/moviemind/movierec/base"
	"github.com/moviemind/movierec/base/floats"
	"github.com/moviemind/movierec/config"
	"github.com/moviemind/movierec/model"
	"github.com/moviemind/movierec/storage/data"
	"github.com/stretchr/testify/assert"
)

// mockDatabase keeps everything in memory. OverwriteUserRecommendations
// replaces the stored rows like the MongoDB drop and insert does.
type mockDatabase struct {
	ratings []data.Rating
	recs    []data.UserRecommendations
	writes  int
}

func (db *mockDatabase) Init() error {
	return nil
}

func (db *mockDatabase) Ping() error {
	return nil
}

func (db *mockDatabase) Close() error {
	return nil
}

func (db *mockDatabase) LoadRatings(ctx context.Context) ([]data.Rating, error) {
	return db.ratings, nil
}

func (db *mockDatabase) OverwriteUserRecommendations(ctx context.Context, recommendations []data.UserRecommendations) error {
	db.recs = append([]data.UserRecommendations(nil), recommendations...)
	db.writes++
	return nil
}

func (db *mockDatabase) CountUserRecommendations(ctx context.Context) (int64, error) {
	return int64(len(db.recs)), nil
}

var _ data.Database = &mockDatabase{}

// newMockDatabase generates ratings from a rank-4 factor model for 30 users
// and 40 movies.
func newMockDatabase() *mockDatabase {
	const (
		nUsers  = 30
		nMovies = 40
		k       = 4
	)
	rng := base.NewRandomGenerator(6)
	userFactor := rng.NormalMatrix(nUsers, k, 0.5, 0.5)
	movieFactor := rng.NormalMatrix(nMovies, k, 0.5, 0.5)
	db := new(mockDatabase)
	for u := 0; u < nUsers; u++ {
		for m := 0; m < nMovies; m++ {
			db.ratings = append(db.ratings, data.Rating{
				UserId:  int32(u + 1001),
				MovieId: int32(m + 2001),
				Rating:  float64(floats.Dot(userFactor[u], movieFactor[m])),
			})
		}
	}
	return db
}

func newTestConfig() *config.Config {
	conf := config.GetDefaultConfig()
	conf.Train.RandomSeed = 42
	conf.Recommend.Jobs = 4
	return conf
}

func TestPipeline_Run(t *testing.T) {
	database := newMockDatabase()
	p := New(newTestConfig())
	buf := new(bytes.Buffer)
	p.output = buf
	assert.NoError(t, p.run(context.Background(), database))

	// the RMSE line is printed before the previews
	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Root-mean-square error = "))
	assert.NotEqual(t, "Root-mean-square error = ", lines[0])

	// the recommendation lists were persisted
	assert.Equal(t, 1, database.writes)
	assert.NotEmpty(t, database.recs)
	assert.LessOrEqual(t, len(database.recs), 30)
	rated := make(map[int32]map[int32]bool)
	for _, row := range database.ratings {
		if rated[row.UserId] == nil {
			rated[row.UserId] = make(map[int32]bool)
		}
		rated[row.UserId][row.MovieId] = true
	}
	for _, rec := range database.recs {
		assert.LessOrEqual(t, len(rec.Recommendations), 10)
		for i, r := range rec.Recommendations {
			if i > 0 {
				assert.GreaterOrEqual(t, rec.Recommendations[i-1].Rating, r.Rating)
			}
			// rated pairs never show up
			assert.False(t, rated[rec.UserId][r.MovieId])
		}
	}
}

func TestPipeline_RunTwice(t *testing.T) {
	database := newMockDatabase()
	p := New(newTestConfig())
	p.output = new(bytes.Buffer)
	assert.NoError(t, p.run(context.Background(), database))
	firstRun := len(database.recs)
	// the second run replaces the stored rows instead of appending
	assert.NoError(t, p.run(context.Background(), database))
	assert.Equal(t, 2, database.writes)
	assert.Equal(t, firstRun, len(database.recs))
}

func TestCastUserRecommendations(t *testing.T) {
	lists := []model.TopList{
		{Id: 1, Recommended: []model.Recommended{{Id: 10, Score: 4.5}, {Id: 11, Score: 0.1}}},
		{Id: 2, Recommended: []model.Recommended{}},
	}
	rows := CastUserRecommendations(lists)
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, int32(1), rows[0].UserId)
	assert.Equal(t, int32(10), rows[0].Recommendations[0].MovieId)
	// widening is exact
	assert.Equal(t, 4.5, rows[0].Recommendations[0].Rating)
	assert.Equal(t, float64(float32(0.1)), rows[0].Recommendations[1].Rating)
	assert.Empty(t, rows[1].Recommendations)
}
