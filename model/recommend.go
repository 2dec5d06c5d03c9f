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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/moviemind/movierec/base"
	"github.com/moviemind/movierec/base/heap"
	"github.com/moviemind/movierec/base/parallel"
	"github.com/samber/lo"
)

// Recommended pairs an external ID with its predicted rating.
type Recommended struct {
	Id    int32
	Score float32
}

// TopList is the top-K recommendation list of one subject, sorted by
// predicted rating in descending order.
type TopList struct {
	Id          int32
	Recommended []Recommended
}

// RecommendItemsForAllUsers generates up to n item recommendations for every
// user seen during training. Items the user already rated in the source data
// set never appear in the list.
func RecommendItemsForAllUsers(estimator MatrixFactorization, source *DataSet, n, jobs int) ([]TopList, error) {
	return RecommendItemsForUsers(estimator, source, estimator.GetUserIndex().GetIds(), n, jobs)
}

// RecommendItemsForUsers generates up to n item recommendations for each user
// in userIds. Users unknown to the model or without training ratings are
// skipped.
func RecommendItemsForUsers(estimator MatrixFactorization, source *DataSet, userIds []int32, n, jobs int) ([]TopList, error) {
	results := make([]*TopList, len(userIds))
	err := parallel.Parallel(len(userIds), jobs, func(_, position int) error {
		userIndex := estimator.GetUserIndex().ToNumber(userIds[position])
		if !estimator.IsUserPredictable(userIndex) {
			return nil
		}
		rated := mapset.NewThreadUnsafeSet[int32]()
		if int(userIndex) < len(source.UserItems) {
			rated.Append(source.UserItems[userIndex]...)
		}
		filter := heap.NewTopKFilter[int32, float32](n)
		for itemIndex := int32(0); itemIndex < estimator.GetItemIndex().Len(); itemIndex++ {
			if !estimator.IsItemPredictable(itemIndex) || rated.Contains(itemIndex) {
				continue
			}
			filter.Push(itemIndex, estimator.InternalPredict(userIndex, itemIndex))
		}
		results[position] = collect(estimator.GetItemIndex(), userIds[position], filter)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return compact(results), nil
}

// RecommendUsersForAllItems generates up to n user recommendations for every
// item seen during training. Users who already rated the item in the source
// data set never appear in the list.
func RecommendUsersForAllItems(estimator MatrixFactorization, source *DataSet, n, jobs int) ([]TopList, error) {
	return RecommendUsersForItems(estimator, source, estimator.GetItemIndex().GetIds(), n, jobs)
}

// RecommendUsersForItems generates up to n user recommendations for each item
// in itemIds. Items unknown to the model or without training ratings are
// skipped.
func RecommendUsersForItems(estimator MatrixFactorization, source *DataSet, itemIds []int32, n, jobs int) ([]TopList, error) {
	results := make([]*TopList, len(itemIds))
	err := parallel.Parallel(len(itemIds), jobs, func(_, position int) error {
		itemIndex := estimator.GetItemIndex().ToNumber(itemIds[position])
		if !estimator.IsItemPredictable(itemIndex) {
			return nil
		}
		rated := mapset.NewThreadUnsafeSet[int32]()
		if int(itemIndex) < len(source.ItemUsers) {
			rated.Append(source.ItemUsers[itemIndex]...)
		}
		filter := heap.NewTopKFilter[int32, float32](n)
		for userIndex := int32(0); userIndex < estimator.GetUserIndex().Len(); userIndex++ {
			if !estimator.IsUserPredictable(userIndex) || rated.Contains(userIndex) {
				continue
			}
			filter.Push(userIndex, estimator.InternalPredict(userIndex, itemIndex))
		}
		results[position] = collect(estimator.GetUserIndex(), itemIds[position], filter)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return compact(results), nil
}

// collect drains a top-K filter into a TopList with external IDs.
func collect(index *base.Index, subjectId int32, filter *heap.TopKFilter[int32, float32]) *TopList {
	indices, scores := filter.PopAll()
	list := &TopList{Id: subjectId, Recommended: make([]Recommended, len(indices))}
	for i := range indices {
		list.Recommended[i] = Recommended{Id: index.ToId(indices[i]), Score: scores[i]}
	}
	return list
}

// compact drops the slots of skipped cold subjects.
func compact(results []*TopList) []TopList {
	return lo.FilterMap(results, func(list *TopList, _ int) (TopList, bool) {
		if list == nil {
			return TopList{}, false
		}
		return *list, true
	})
}
