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

// Package pipeline runs the batch training job: load ratings from the
// document store, split, fit ALS, report RMSE, generate top-K recommendation
// lists and write the per-user lists back to the store.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/moviemind/movierec/base/log"
	"github.com/moviemind/movierec/config"
	"github.com/moviemind/movierec/model"
	"github.com/moviemind/movierec/storage/data"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// preview table sizing, matching the data frame dumps of the historical script
const (
	previewRows     = 20
	previewCellSize = 60
)

// Pipeline is one batch training run over a storage backend.
type Pipeline struct {
	conf   *config.Config
	output io.Writer
}

// New creates a Pipeline. Results are printed to stdout.
func New(conf *config.Config) *Pipeline {
	return &Pipeline{conf: conf, output: os.Stdout}
}

// Run executes the batch job from loading to persistence. The storage handle
// is closed on every path, including failures.
func (p *Pipeline) Run(ctx context.Context) error {
	// connect to the document store
	database, err := data.Open(p.conf.Database.DataStore,
		p.conf.Database.RatingsCollection, p.conf.Database.OutputCollection)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Logger().Error("failed to close database", zap.Error(err))
		}
	}()
	if err := database.Ping(); err != nil {
		return errors.Trace(err)
	}
	return p.run(ctx, database)
}

func (p *Pipeline) run(ctx context.Context, database data.Database) error {
	// load ratings
	rows, err := database.LoadRatings(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	dataset := model.NewMapIndexDataset()
	for _, row := range rows {
		dataset.AddRating(row.UserId, row.MovieId, float32(row.Rating), true)
	}
	log.Logger().Info("loaded ratings",
		zap.String("data_store", log.RedactDBURL(p.conf.Database.DataStore)),
		zap.Int("ratings", dataset.Count()),
		zap.Int("users", dataset.UserCount()),
		zap.Int("movies", dataset.ItemCount()))

	// split into training set and test set
	seed := p.conf.Train.RandomSeed
	if seed < 0 {
		seed = model.TimeSeed()
	}
	trainSet, testSet := model.RatioSplit(dataset, p.conf.Train.TestRatio, seed)

	// build the recommendation model using ALS on the training set
	als := model.NewALS(model.Params{
		model.NFactors:    p.conf.Train.NFactors,
		model.NEpochs:     p.conf.Train.NEpochs,
		model.Reg:         float32(p.conf.Train.Reg),
		model.RandomState: seed,
	})
	fitConfig := model.NewFitConfig().
		SetJobs(p.conf.Recommend.Jobs).
		SetVerbose(p.conf.Train.Verbose)
	if err := als.Fit(trainSet, fitConfig); err != nil {
		return errors.Trace(err)
	}

	// evaluate the model by computing the RMSE on the test set, cold-start
	// rows are dropped inside the evaluator
	rmse := model.EvaluateRegression(als, testSet, model.RMSE)[0]
	if _, err := fmt.Fprintf(p.output, "Root-mean-square error = %v\n", rmse); err != nil {
		return errors.Trace(err)
	}

	// generate top-K recommendations
	topK := p.conf.Recommend.TopK
	jobs := p.conf.Recommend.Jobs
	userRecs, err := model.RecommendItemsForAllUsers(als, dataset, topK, jobs)
	if err != nil {
		return errors.Trace(err)
	}
	movieRecs, err := model.RecommendUsersForAllItems(als, dataset, topK, jobs)
	if err != nil {
		return errors.Trace(err)
	}
	userSubset := lo.Slice(dataset.UserIndex.GetIds(), 0, p.conf.Recommend.SubsetSize)
	userSubsetRecs, err := model.RecommendItemsForUsers(als, dataset, userSubset, topK, jobs)
	if err != nil {
		return errors.Trace(err)
	}
	movieSubset := lo.Slice(dataset.ItemIndex.GetIds(), 0, p.conf.Recommend.SubsetSize)
	movieSubsetRecs, err := model.RecommendUsersForItems(als, dataset, movieSubset, topK, jobs)
	if err != nil {
		return errors.Trace(err)
	}

	// persist the per-user lists, scores widen from float32 to float64 since
	// the store has no single-precision type
	if err := database.OverwriteUserRecommendations(ctx, CastUserRecommendations(userRecs)); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("wrote recommendations",
		zap.String("collection", p.conf.Database.OutputCollection),
		zap.Int("users", len(userRecs)))

	// preview tables
	if err := p.show("user_id", userRecs); err != nil {
		return errors.Trace(err)
	}
	if err := p.show("movie_id", movieRecs); err != nil {
		return errors.Trace(err)
	}
	if err := p.show("user_id", userSubsetRecs); err != nil {
		return errors.Trace(err)
	}
	if err := p.show("movie_id", movieSubsetRecs); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// CastUserRecommendations converts model output to storage rows, widening
// scores to double precision. Widening a float32 to a float64 is exact.
func CastUserRecommendations(lists []model.TopList) []data.UserRecommendations {
	return lo.Map(lists, func(list model.TopList, _ int) data.UserRecommendations {
		return data.UserRecommendations{
			UserId: list.Id,
			Recommendations: lo.Map(list.Recommended, func(r model.Recommended, _ int) data.Recommendation {
				return data.Recommendation{MovieId: r.Id, Rating: float64(r.Score)}
			}),
		}
	})
}

// show prints a truncated preview table of recommendation lists.
func (p *Pipeline) show(subjectColumn string, lists []model.TopList) error {
	table := tablewriter.NewWriter(p.output)
	table.Header(subjectColumn, "recommendations")
	for i, list := range lists {
		if i >= previewRows {
			break
		}
		if err := table.Append([]string{
			fmt.Sprint(list.Id),
			truncateCell(formatRecommended(list.Recommended)),
		}); err != nil {
			return errors.Trace(err)
		}
	}
	if err := table.Render(); err != nil {
		return errors.Trace(err)
	}
	if len(lists) > previewRows {
		if _, err := fmt.Fprintf(p.output, "only showing top %d rows\n\n", previewRows); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func formatRecommended(recommended []model.Recommended) string {
	var builder strings.Builder
	builder.WriteString("[")
	for i, r := range recommended {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fmt.Sprintf("(%d, %.4f)", r.Id, r.Score))
	}
	builder.WriteString("]")
	return builder.String()
}

func truncateCell(s string) string {
	if len(s) <= previewCellSize {
		return s
	}
	return s[:previewCellSize-3] + "..."
}
