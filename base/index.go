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

// Index manages the map between sparse IDs and dense indices. A sparse ID is
// a user ID or movie ID as stored in the ratings collection. The dense index
// is the internal user index or item index optimized for faster parameter
// access and less memory usage.
type Index struct {
	Numbers map[int32]int32 // sparse ID -> dense index
	Ids     []int32         // dense index -> sparse ID
}

// NotId represents an ID doesn't exist.
const NotId = int32(-1)

// NewMapIndex creates a Index.
func NewMapIndex() *Index {
	set := new(Index)
	set.Numbers = make(map[int32]int32)
	set.Ids = make([]int32, 0)
	return set
}

// Len returns the number of indexed IDs.
func (idx *Index) Len() int32 {
	if idx == nil {
		return 0
	}
	return int32(len(idx.Ids))
}

// Add adds a new ID to the indexer.
func (idx *Index) Add(id int32) {
	if _, exist := idx.Numbers[id]; !exist {
		idx.Numbers[id] = int32(len(idx.Ids))
		idx.Ids = append(idx.Ids, id)
	}
}

// ToNumber converts a sparse ID to a dense index.
func (idx *Index) ToNumber(id int32) int32 {
	if denseId, exist := idx.Numbers[id]; exist {
		return denseId
	}
	return NotId
}

// ToId converts a dense index to a sparse ID.
func (idx *Index) ToId(index int32) int32 {
	return idx.Ids[index]
}

// GetIds returns all IDs in current index.
func (idx *Index) GetIds() []int32 {
	return idx.Ids
}
