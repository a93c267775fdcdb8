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

const (
	// MinTag is the smallest legal field tag.
	MinTag = 1
	// MaxTag is the largest legal field tag, 2^29-1. It is also the value of
	// the "max" keyword in an extensions range.
	MaxTag = 1<<29 - 1
	// ReservedTagStart is the first tag of the range reserved for the
	// protobuf implementation.
	ReservedTagStart = 19000
	// ReservedTagEnd is the last tag of the reserved range, inclusive.
	ReservedTagEnd = 19999
)

// IsValidTag reports whether value may be used as a field tag: it must be
// within [MinTag, MaxTag] and outside [ReservedTagStart, ReservedTagEnd].
func IsValidTag(value int) bool {
	return (value >= MinTag && value < ReservedTagStart) ||
		(value > ReservedTagEnd && value <= MaxTag)
}

// cloneSlice copies s, normalizing empty slices to nil so that structural
// comparisons do not depend on how a caller spelled "nothing".
func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append([]T(nil), s...)
}

func equalSlices[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
