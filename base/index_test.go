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

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	index := NewMapIndex()
	assert.Zero(t, index.Len())
	// add IDs
	index.Add(100)
	index.Add(50)
	index.Add(25)
	index.Add(100)
	assert.Equal(t, int32(3), index.Len())
	assert.Equal(t, []int32{100, 50, 25}, index.GetIds())
	// ID -> index
	assert.Equal(t, int32(0), index.ToNumber(100))
	assert.Equal(t, int32(1), index.ToNumber(50))
	assert.Equal(t, int32(2), index.ToNumber(25))
	assert.Equal(t, NotId, index.ToNumber(0))
	// index -> ID
	assert.Equal(t, int32(100), index.ToId(0))
	assert.Equal(t, int32(50), index.ToId(1))
	assert.Equal(t, int32(25), index.ToId(2))
}

func TestIndex_Nil(t *testing.T) {
	var index *Index
	assert.Zero(t, index.Len())
}
