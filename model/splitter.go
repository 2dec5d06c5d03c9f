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
	"time"

	"github.com/moviemind/movierec/base"
)

// TimeSeed returns a seed derived from the wall clock. Splits seeded this way
// are not reproducible between runs.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// RatioSplit splits ratings into a training set and a test set by uniform
// random sampling. The two sets are disjoint and share the indices of the
// parent data set. The size of the test set is testRatio of the parent data
// set, rounded down.
func RatioSplit(dataset *DataSet, testRatio float64, seed int64) (train, test *DataSet) {
	rng := base.NewRandomGenerator(seed)
	testSize := int(float64(dataset.Count()) * testRatio)
	perm := rng.Perm(dataset.Count())
	test = dataset.SubSet(perm[:testSize])
	train = dataset.SubSet(perm[testSize:])
	return
}
