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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubTo(t *testing.T) {
	a := []float32{5, 4, 3}
	b := []float32{1, 2, 3}
	dst := make([]float32, 3)
	SubTo(a, b, dst)
	assert.Equal(t, []float32{4, 2, 0}, dst)
	assert.Panics(t, func() { SubTo(a, b, make([]float32, 2)) })
}

func TestAdd(t *testing.T) {
	dst := []float32{1, 2, 3}
	Add(dst, []float32{10, 20, 30})
	assert.Equal(t, []float32{11, 22, 33}, dst)
	assert.Panics(t, func() { Add(dst, []float32{1}) })
}

func TestMulConst(t *testing.T) {
	dst := []float32{1, 2, 3}
	MulConst(dst, 2)
	assert.Equal(t, []float32{2, 4, 6}, dst)
}

func TestMulConstTo(t *testing.T) {
	dst := make([]float32, 3)
	MulConstTo([]float32{1, 2, 3}, 3, dst)
	assert.Equal(t, []float32{3, 6, 9}, dst)
	assert.Panics(t, func() { MulConstTo([]float32{1, 2, 3}, 3, make([]float32, 2)) })
}

func TestMulConstAddTo(t *testing.T) {
	dst := []float32{1, 2, 3}
	MulConstAddTo([]float32{1, 1, 1}, 2, dst)
	assert.Equal(t, []float32{3, 4, 5}, dst)
	assert.Panics(t, func() { MulConstAddTo([]float32{1, 1}, 2, dst) })
}

func TestDot(t *testing.T) {
	assert.Equal(t, float32(32), Dot([]float32{1, 2, 3}, []float32{4, 5, 6}))
	assert.Panics(t, func() { Dot([]float32{1, 2, 3}, []float32{4, 5}) })
}

func TestSum(t *testing.T) {
	assert.Equal(t, float32(6), Sum([]float32{1, 2, 3}))
	assert.Zero(t, Sum(nil))
}

func TestEuclidean(t *testing.T) {
	assert.Equal(t, float32(5), Euclidean([]float32{0, 0}, []float32{3, 4}))
	assert.Panics(t, func() { Euclidean([]float32{0}, []float32{3, 4}) })
}
