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
	"github.com/bits-and-blooms/bitset"
	"github.com/moviemind/movierec/base"
)

type FitConfig struct {
	Jobs    int
	Verbose int
}

func NewFitConfig() *FitConfig {
	return &FitConfig{
		Jobs:    1,
		Verbose: 1,
	}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) SetJobs(jobs int) *FitConfig {
	config.Jobs = jobs
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// Model is the interface for all models.
type Model interface {
	SetParams(params Params)
	GetParams() Params
	// Fit a model with a train set and parameters.
	Fit(trainSet *DataSet, config *FitConfig) error
}

// MatrixFactorization is the interface for rating prediction models backed by
// latent user and item factors.
type MatrixFactorization interface {
	Model
	// Predict the rating given by a user (userId) to a item (itemId). NaN is
	// returned if the user or the item was never seen during training, so
	// callers can drop cold-start predictions.
	Predict(userId, itemId int32) float32
	// InternalPredict predicts a rating given by a user index and a item index.
	InternalPredict(userIndex, itemIndex int32) float32
	// GetUserIndex returns user index.
	GetUserIndex() *base.Index
	// GetItemIndex returns item index.
	GetItemIndex() *base.Index
	// IsUserPredictable returns false if the user has no training ratings and
	// its embedding vector was never trained.
	IsUserPredictable(userIndex int32) bool
	// IsItemPredictable returns false if the item has no training ratings and
	// its embedding vector was never trained.
	IsItemPredictable(itemIndex int32) bool
}

// BaseModel stores hyper-parameters and the random generator.
type BaseModel struct {
	Params      Params
	rng         base.RandomGenerator
	randomState int64
}

// SetParams sets hyper-parameters.
func (baseModel *BaseModel) SetParams(params Params) {
	baseModel.Params = params
	baseModel.randomState = baseModel.Params.GetInt64(RandomState, 0)
	baseModel.rng = base.NewRandomGenerator(baseModel.randomState)
}

// GetParams returns hyper-parameters.
func (baseModel *BaseModel) GetParams() Params {
	return baseModel.Params
}

// BaseMatrixFactorization holds indices, factors and trained flags shared by
// matrix factorization models.
type BaseMatrixFactorization struct {
	BaseModel
	UserIndex       *base.Index
	ItemIndex       *base.Index
	UserPredictable *bitset.BitSet
	ItemPredictable *bitset.BitSet
	// Model parameters
	UserFactor [][]float32 // p_u
	ItemFactor [][]float32 // q_i
}

// Init indices and trained flags from the train set.
func (baseModel *BaseMatrixFactorization) Init(trainSet *DataSet) {
	baseModel.UserIndex = trainSet.UserIndex
	baseModel.ItemIndex = trainSet.ItemIndex
	// set user trained flags
	baseModel.UserPredictable = bitset.New(uint(trainSet.UserCount()))
	for userIndex := 0; userIndex < trainSet.UserCount(); userIndex++ {
		if len(trainSet.UserItems[userIndex]) > 0 {
			baseModel.UserPredictable.Set(uint(userIndex))
		}
	}
	// set item trained flags
	baseModel.ItemPredictable = bitset.New(uint(trainSet.ItemCount()))
	for itemIndex := 0; itemIndex < trainSet.ItemCount(); itemIndex++ {
		if len(trainSet.ItemUsers[itemIndex]) > 0 {
			baseModel.ItemPredictable.Set(uint(itemIndex))
		}
	}
}

// GetUserIndex returns user index.
func (baseModel *BaseMatrixFactorization) GetUserIndex() *base.Index {
	return baseModel.UserIndex
}

// GetItemIndex returns item index.
func (baseModel *BaseMatrixFactorization) GetItemIndex() *base.Index {
	return baseModel.ItemIndex
}

// IsUserPredictable returns false if the user has no training ratings and its
// embedding vector was never trained.
func (baseModel *BaseMatrixFactorization) IsUserPredictable(userIndex int32) bool {
	if userIndex >= baseModel.UserIndex.Len() || userIndex < 0 {
		return false
	}
	return baseModel.UserPredictable.Test(uint(userIndex))
}

// IsItemPredictable returns false if the item has no training ratings and its
// embedding vector was never trained.
func (baseModel *BaseMatrixFactorization) IsItemPredictable(itemIndex int32) bool {
	if itemIndex >= baseModel.ItemIndex.Len() || itemIndex < 0 {
		return false
	}
	return baseModel.ItemPredictable.Test(uint(itemIndex))
}
