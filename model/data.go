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
	"github.com/moviemind/movierec/base"
)

// DataSet contains preprocessed rating triples for recommendation models.
// Ratings are stored three ways: as parallel triple slices for sequential
// scans, and as per-user and per-item posting lists for the alternating
// least-squares solves.
type DataSet struct {
	UserIndex *base.Index
	ItemIndex *base.Index
	// rating triples
	Users   []int32
	Items   []int32
	Ratings []float32
	// posting lists
	UserItems  [][]int32
	UserValues [][]float32
	ItemUsers  [][]int32
	ItemValues [][]float32
}

// NewMapIndexDataset creates an empty data set with map indices.
func NewMapIndexDataset() *DataSet {
	s := new(DataSet)
	s.UserIndex = base.NewMapIndex()
	s.ItemIndex = base.NewMapIndex()
	s.UserItems = make([][]int32, 0)
	s.UserValues = make([][]float32, 0)
	s.ItemUsers = make([][]int32, 0)
	s.ItemValues = make([][]float32, 0)
	return s
}

// AddRating adds a rating triple to the data set. When insertUserItem is
// false, triples referring to users or items missing from the indices are
// dropped silently.
func (dataset *DataSet) AddRating(userId, itemId int32, rating float32, insertUserItem bool) {
	if insertUserItem {
		dataset.UserIndex.Add(userId)
		dataset.ItemIndex.Add(itemId)
	}
	userIndex := dataset.UserIndex.ToNumber(userId)
	itemIndex := dataset.ItemIndex.ToNumber(itemId)
	if userIndex != base.NotId && itemIndex != base.NotId {
		dataset.addRatingByIndex(userIndex, itemIndex, rating)
	}
}

func (dataset *DataSet) addRatingByIndex(userIndex, itemIndex int32, rating float32) {
	dataset.Users = append(dataset.Users, userIndex)
	dataset.Items = append(dataset.Items, itemIndex)
	dataset.Ratings = append(dataset.Ratings, rating)
	for int(userIndex) >= len(dataset.UserItems) {
		dataset.UserItems = append(dataset.UserItems, make([]int32, 0))
		dataset.UserValues = append(dataset.UserValues, make([]float32, 0))
	}
	dataset.UserItems[userIndex] = append(dataset.UserItems[userIndex], itemIndex)
	dataset.UserValues[userIndex] = append(dataset.UserValues[userIndex], rating)
	for int(itemIndex) >= len(dataset.ItemUsers) {
		dataset.ItemUsers = append(dataset.ItemUsers, make([]int32, 0))
		dataset.ItemValues = append(dataset.ItemValues, make([]float32, 0))
	}
	dataset.ItemUsers[itemIndex] = append(dataset.ItemUsers[itemIndex], userIndex)
	dataset.ItemValues[itemIndex] = append(dataset.ItemValues[itemIndex], rating)
}

// Count returns the number of rating triples.
func (dataset *DataSet) Count() int {
	if len(dataset.Users) != len(dataset.Items) || len(dataset.Users) != len(dataset.Ratings) {
		panic("dataset: triple slices are not aligned")
	}
	return len(dataset.Ratings)
}

// UserCount returns the number of indexed users.
func (dataset *DataSet) UserCount() int {
	return int(dataset.UserIndex.Len())
}

// ItemCount returns the number of indexed items.
func (dataset *DataSet) ItemCount() int {
	return int(dataset.ItemIndex.Len())
}

// Get returns the i-th rating triple by <user index, item index, rating>.
func (dataset *DataSet) Get(i int) (int32, int32, float32) {
	return dataset.Users[i], dataset.Items[i], dataset.Ratings[i]
}

// GlobalMean computes the mean of all ratings.
func (dataset *DataSet) GlobalMean() float32 {
	if dataset.Count() == 0 {
		return 0
	}
	sum := float32(0)
	for _, rating := range dataset.Ratings {
		sum += rating
	}
	return sum / float32(dataset.Count())
}

func createSliceOfSlice32(n int) ([][]int32, [][]float32) {
	indices := make([][]int32, n)
	values := make([][]float32, n)
	for i := range indices {
		indices[i] = make([]int32, 0)
		values[i] = make([]float32, 0)
	}
	return indices, values
}

// SubSet creates a data set from a subset of rating triples. The subset
// shares the user index and the item index of the parent data set.
func (dataset *DataSet) SubSet(indices []int) *DataSet {
	subset := new(DataSet)
	subset.UserIndex = dataset.UserIndex
	subset.ItemIndex = dataset.ItemIndex
	subset.UserItems, subset.UserValues = createSliceOfSlice32(dataset.UserCount())
	subset.ItemUsers, subset.ItemValues = createSliceOfSlice32(dataset.ItemCount())
	for _, i := range indices {
		subset.addRatingByIndex(dataset.Users[i], dataset.Items[i], dataset.Ratings[i])
	}
	return subset
}
