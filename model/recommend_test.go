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
	"testing"

	"github.com/chewxy/math32"
	"github.com/moviemind/movierec/base"
	"github.com/stretchr/testify/assert"
)

// mockMatrixFactorizationForRecommend predicts from a fixed score matrix and
// marks chosen users and items as cold.
type mockMatrixFactorizationForRecommend struct {
	BaseModel
	userIndex *base.Index
	itemIndex *base.Index
	scores    [][]float32
	coldUsers map[int32]bool
	coldItems map[int32]bool
}

func (m *mockMatrixFactorizationForRecommend) Fit(trainSet *DataSet, config *FitConfig) error {
	return nil
}

func (m *mockMatrixFactorizationForRecommend) Predict(userId, itemId int32) float32 {
	userIndex := m.userIndex.ToNumber(userId)
	itemIndex := m.itemIndex.ToNumber(itemId)
	if !m.IsUserPredictable(userIndex) || !m.IsItemPredictable(itemIndex) {
		return math32.NaN()
	}
	return m.InternalPredict(userIndex, itemIndex)
}

func (m *mockMatrixFactorizationForRecommend) InternalPredict(userIndex, itemIndex int32) float32 {
	return m.scores[userIndex][itemIndex]
}

func (m *mockMatrixFactorizationForRecommend) GetUserIndex() *base.Index {
	return m.userIndex
}

func (m *mockMatrixFactorizationForRecommend) GetItemIndex() *base.Index {
	return m.itemIndex
}

func (m *mockMatrixFactorizationForRecommend) IsUserPredictable(userIndex int32) bool {
	return userIndex >= 0 && userIndex < m.userIndex.Len() && !m.coldUsers[userIndex]
}

func (m *mockMatrixFactorizationForRecommend) IsItemPredictable(itemIndex int32) bool {
	return itemIndex >= 0 && itemIndex < m.itemIndex.Len() && !m.coldItems[itemIndex]
}

var _ MatrixFactorization = &mockMatrixFactorizationForRecommend{}

// newRecommendFixture builds three users (1..3), four items (10..13) and a
// score matrix where higher item and user indices score higher.
func newRecommendFixture() (*DataSet, *mockMatrixFactorizationForRecommend) {
	source := NewMapIndexDataset()
	source.AddRating(1, 10, 5, true)
	source.AddRating(1, 11, 4, true)
	source.AddRating(2, 11, 3, true)
	source.AddRating(2, 12, 2, true)
	source.AddRating(3, 13, 1, true)
	mock := &mockMatrixFactorizationForRecommend{
		userIndex: source.UserIndex,
		itemIndex: source.ItemIndex,
		scores: [][]float32{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
		},
		coldUsers: make(map[int32]bool),
		coldItems: make(map[int32]bool),
	}
	return source, mock
}

func TestRecommendItemsForAllUsers(t *testing.T) {
	source, mock := newRecommendFixture()
	lists, err := RecommendItemsForAllUsers(mock, source, 10, 1)
	assert.NoError(t, err)
	assert.Equal(t, []TopList{
		{Id: 1, Recommended: []Recommended{{13, 4}, {12, 3}}},
		{Id: 2, Recommended: []Recommended{{13, 8}, {10, 5}}},
		{Id: 3, Recommended: []Recommended{{12, 11}, {11, 10}, {10, 9}}},
	}, lists)
	// lists truncate to n
	lists, err = RecommendItemsForAllUsers(mock, source, 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, []Recommended{{12, 11}, {11, 10}}, lists[2].Recommended)
}

func TestRecommendUsersForAllItems(t *testing.T) {
	source, mock := newRecommendFixture()
	lists, err := RecommendUsersForAllItems(mock, source, 10, 1)
	assert.NoError(t, err)
	assert.Equal(t, []TopList{
		{Id: 10, Recommended: []Recommended{{3, 9}, {2, 5}}},
		{Id: 11, Recommended: []Recommended{{3, 10}}},
		{Id: 12, Recommended: []Recommended{{3, 11}, {1, 3}}},
		{Id: 13, Recommended: []Recommended{{2, 8}, {1, 4}}},
	}, lists)
}

func TestRecommend_Invariants(t *testing.T) {
	source, mock := newRecommendFixture()
	lists, err := RecommendItemsForAllUsers(mock, source, 2, 4)
	assert.NoError(t, err)
	for _, list := range lists {
		assert.LessOrEqual(t, len(list.Recommended), 2)
		userIndex := source.UserIndex.ToNumber(list.Id)
		for i, r := range list.Recommended {
			if i > 0 {
				assert.GreaterOrEqual(t, list.Recommended[i-1].Score, r.Score)
			}
			// rated pairs never show up
			assert.NotContains(t, source.UserItems[userIndex], source.ItemIndex.ToNumber(r.Id))
		}
	}
}

func TestRecommend_ColdStart(t *testing.T) {
	source, mock := newRecommendFixture()
	mock.coldUsers[source.UserIndex.ToNumber(3)] = true
	mock.coldItems[source.ItemIndex.ToNumber(13)] = true
	// cold items never show up, cold users are skipped
	lists, err := RecommendItemsForAllUsers(mock, source, 10, 1)
	assert.NoError(t, err)
	assert.Equal(t, []TopList{
		{Id: 1, Recommended: []Recommended{{12, 3}}},
		{Id: 2, Recommended: []Recommended{{10, 5}}},
	}, lists)
	// cold and unknown subjects yield no list at all
	itemLists, err := RecommendUsersForItems(mock, source, []int32{13, 999}, 10, 1)
	assert.NoError(t, err)
	assert.Empty(t, itemLists)
}
