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

package interval_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/protoschema/internal/interval"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type in struct {
		start, end int
		value      string
	}
	type seg = interval.Segment[int, string]

	tests := []struct {
		name   string
		ranges []in
		want   []seg
	}{
		{
			name:   "single",
			ranges: []in{{100, 199, "a"}},
			want:   []seg{{100, 199, "a"}},
		},
		{
			name:   "disjoint-out-of-order",
			ranges: []in{{1000, 536870911, "b"}, {500, 500, "a"}},
			want:   []seg{{500, 500, "a"}, {1000, 536870911, "b"}},
		},
		{
			name:   "nested",
			ranges: []in{{1, 100, "outer"}, {10, 20, "inner"}},
			want:   []seg{{1, 100, "outer"}},
		},
		{
			name:   "enclosing",
			ranges: []in{{10, 20, "inner"}, {1, 100, "outer"}},
			want:   []seg{{1, 9, "outer"}, {10, 20, "inner"}, {21, 100, "outer"}},
		},
		{
			name:   "overlap",
			ranges: []in{{1, 10, "a"}, {5, 15, "b"}},
			want:   []seg{{1, 10, "a"}, {11, 15, "b"}},
		},
		{
			name:   "bridge",
			ranges: []in{{1, 2, "a"}, {5, 6, "b"}, {9, 9, "c"}, {0, 10, "d"}},
			want: []seg{
				{0, 0, "d"}, {1, 2, "a"}, {3, 4, "d"}, {5, 6, "b"},
				{7, 8, "d"}, {9, 9, "c"}, {10, 10, "d"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var x interval.Index[int, string]
			for _, r := range test.ranges {
				x.Insert(r.start, r.end, r.value)
			}
			assert.Equal(t, test.want, slices.Collect(x.Segments()))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	var x interval.Index[int, string]
	assert.True(t, x.Insert(500, 500, "single"))
	assert.True(t, x.Insert(1000, 536870911, "max"))

	lookup := func(point int) string {
		v, ok := x.Lookup(point)
		if !ok {
			return "<none>"
		}
		return v
	}
	assert.Equal(t, "<none>", lookup(499))
	assert.Equal(t, "single", lookup(500))
	assert.Equal(t, "<none>", lookup(501))
	assert.Equal(t, "<none>", lookup(999))
	assert.Equal(t, "max", lookup(1000))
	assert.Equal(t, "max", lookup(536870911))

	assert.False(t, x.Insert(1, 1000, "wide"))
	assert.Equal(t, "max", lookup(1000))
	assert.Equal(t, "wide", lookup(2))
	assert.Equal(t, "single", lookup(500))
}
