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

package model

import (
	"github.com/chewxy/math32"
)

// Evaluator is a metric over predicted and observed ratings.
type Evaluator func(predictions, truth []float32) float32

// EvaluateRegression scores a fitted model against a test set. Rows whose
// prediction is NaN — the user or the item was never seen during training —
// are dropped before the metrics are computed (cold-start drop). One score is
// returned per evaluator; every score is NaN if all rows were dropped.
func EvaluateRegression(estimator MatrixFactorization, testSet *DataSet, evaluators ...Evaluator) []float32 {
	predictions := make([]float32, 0, testSet.Count())
	truth := make([]float32, 0, testSet.Count())
	for i := 0; i < testSet.Count(); i++ {
		userIndex, itemIndex, rating := testSet.Get(i)
		if !estimator.IsUserPredictable(userIndex) || !estimator.IsItemPredictable(itemIndex) {
			continue
		}
		predictions = append(predictions, estimator.InternalPredict(userIndex, itemIndex))
		truth = append(truth, rating)
	}
	scores := make([]float32, len(evaluators))
	for i, evaluator := range evaluators {
		if len(predictions) == 0 {
			scores[i] = math32.NaN()
		} else {
			scores[i] = evaluator(predictions, truth)
		}
	}
	return scores
}

// RMSE is root mean square error.
func RMSE(predictions, truth []float32) float32 {
	sum := float32(0)
	for i := range predictions {
		diff := predictions[i] - truth[i]
		sum += diff * diff
	}
	return math32.Sqrt(sum / float32(len(predictions)))
}

// MAE is mean absolute error.
func MAE(predictions, truth []float32) float32 {
	sum := float32(0)
	for i := range predictions {
		sum += math32.Abs(predictions[i] - truth[i])
	}
	return sum / float32(len(predictions))
}
