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

	"github.com/stretchr/testify/assert"
)

func TestParams_GetInt(t *testing.T) {
	p := Params{NEpochs: 5}
	assert.Equal(t, 5, p.GetInt(NEpochs, 10))
	assert.Equal(t, 10, p.GetInt(NFactors, 10))
	// type mismatch falls back to the default
	p = Params{NEpochs: "5"}
	assert.Equal(t, 10, p.GetInt(NEpochs, 10))
}

func TestParams_GetInt64(t *testing.T) {
	p := Params{RandomState: int64(42)}
	assert.Equal(t, int64(42), p.GetInt64(RandomState, 0))
	p = Params{RandomState: 42}
	assert.Equal(t, int64(42), p.GetInt64(RandomState, 0))
	assert.Equal(t, int64(0), p.GetInt64(NEpochs, 0))
}

func TestParams_GetFloat32(t *testing.T) {
	p := Params{Reg: float32(0.01)}
	assert.Equal(t, float32(0.01), p.GetFloat32(Reg, 0.06))
	p = Params{Reg: 0.01}
	assert.Equal(t, float32(0.01), p.GetFloat32(Reg, 0.06))
	p = Params{Reg: 1}
	assert.Equal(t, float32(1), p.GetFloat32(Reg, 0.06))
	assert.Equal(t, float32(0.06), p.GetFloat32(InitStdDev, 0.06))
}

func TestParams_Copy(t *testing.T) {
	p := Params{NEpochs: 5}
	q := p.Copy()
	q[NEpochs] = 10
	assert.Equal(t, 5, p.GetInt(NEpochs, 0))
	assert.Equal(t, 10, q.GetInt(NEpochs, 0))
}

func TestParams_Overwrite(t *testing.T) {
	p := Params{NEpochs: 5, NFactors: 10}
	merged := p.Overwrite(Params{NEpochs: 20, Reg: 0.01})
	assert.Equal(t, 20, merged.GetInt(NEpochs, 0))
	assert.Equal(t, 10, merged.GetInt(NFactors, 0))
	assert.Equal(t, float32(0.01), merged.GetFloat32(Reg, 0))
	// the receiver stays untouched
	assert.Equal(t, 5, p.GetInt(NEpochs, 0))
}
