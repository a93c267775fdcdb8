// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		tag   int
		valid bool
	}{
		{tag: -1, valid: false},
		{tag: 0, valid: false},
		{tag: 1, valid: true},
		{tag: 18999, valid: true},
		{tag: 19000, valid: false},
		{tag: 19500, valid: false},
		{tag: 19999, valid: false},
		{tag: 20000, valid: true},
		{tag: 536870911, valid: true},
		{tag: 536870912, valid: false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.valid, IsValidTag(tc.tag), "tag %d", tc.tag)
	}
}

func TestCloneSlice(t *testing.T) {
	t.Parallel()
	assert.Nil(t, cloneSlice([]int{}))
	assert.Nil(t, cloneSlice[int](nil))
	src := []int{1, 2, 3}
	dst := cloneSlice(src)
	dst[0] = 10
	assert.Equal(t, []int{1, 2, 3}, src)
}
