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

// Package interval provides a lookup structure for inclusive integer
// ranges.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as a range endpoint.
type Endpoint = constraints.Integer

// Segment is a maximal run of points owned by the same inserted range.
type Segment[K Endpoint, V any] struct {
	Start, End K // Inclusive.
	Value      V
}

// Index maps inclusive ranges, such as the extension ranges of a message,
// to values. Ranges may overlap; a point belongs to the first inserted
// range that covers it.
//
// A zero value is ready to use.
type Index[K Endpoint, V any] struct {
	// Keyed by segment end. Segments are pairwise disjoint.
	tree btree.Map[K, Segment[K, V]]
}

// Lookup returns the value of the first inserted range containing point.
func (x *Index[K, V]) Lookup(point K) (V, bool) {
	it := x.tree.Iter()
	if !it.Seek(point) || point < it.Value().Start {
		var zero V
		return zero, false
	}
	return it.Value().Value, true
}

// Insert adds the range [start, end] with the given value. Only the points
// not already covered are assigned to it.
//
// Returns true if the range was disjoint from all others in the index.
func (x *Index[K, V]) Insert(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	var gaps []Segment[K, V]
	next := start
	covered := false
	disjoint = true
	it := x.tree.Iter()
	for more := it.Seek(start); more; more = it.Next() {
		seg := it.Value()
		if seg.Start > end {
			break
		}
		disjoint = false
		if next < seg.Start {
			gaps = append(gaps, Segment[K, V]{Start: next, End: seg.Start - 1, Value: value})
		}
		if seg.End >= end {
			covered = true
			break
		}
		next = seg.End + 1
	}
	if !covered {
		gaps = append(gaps, Segment[K, V]{Start: next, End: end, Value: value})
	}

	for _, gap := range gaps {
		x.tree.Set(gap.End, gap)
	}
	return disjoint
}

// Segments returns an iterator over the index's segments in ascending
// order.
func (x *Index[K, V]) Segments() iter.Seq[Segment[K, V]] {
	return func(yield func(Segment[K, V]) bool) {
		it := x.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
