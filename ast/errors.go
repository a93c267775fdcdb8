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

import "fmt"

// ValidationKind identifies which structural invariant a ValidationError
// reports.
type ValidationKind int

const (
	// IllegalTag means a field tag is outside the legal range or inside the
	// reserved range.
	IllegalTag ValidationKind = iota + 1
	// DuplicateTag means two fields (or two enum values) share a tag.
	DuplicateTag
	// DuplicateEnumName means two enums nested in the same message declare
	// values with the same name.
	DuplicateEnumName
	// IllegalRange means an extensions range has an illegal bound or is
	// inverted.
	IllegalRange
	// IllegalLabel means a field was built without a known label.
	IllegalLabel
)

// ValidationError is returned by the New* factory functions when a node
// would violate one of its invariants.
//
// The message returned by Error is stable and meant to be shown to users
// verbatim.
type ValidationError struct {
	Kind ValidationKind
	// Scope is the fully-qualified name of the declaration being built. It is
	// empty for errors raised while building a field or a range.
	Scope string
	// Tag is the offending tag for IllegalTag and DuplicateTag errors, and
	// the range start for IllegalRange errors.
	Tag int
	// End is the range end for IllegalRange errors.
	End int
	// Name is the duplicated value name for DuplicateEnumName errors.
	Name string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case IllegalTag:
		return fmt.Sprintf("Illegal tag value: %d", e.Tag)
	case DuplicateTag:
		return fmt.Sprintf("Duplicate tag %d in %s", e.Tag, e.Scope)
	case DuplicateEnumName:
		return fmt.Sprintf("Duplicate enum name %s in scope %s", e.Name, e.Scope)
	case IllegalRange:
		return fmt.Sprintf("Illegal extensions range: %d to %d", e.Tag, e.End)
	case IllegalLabel:
		return fmt.Sprintf("Illegal label for field %s", e.Name)
	default:
		return fmt.Sprintf("invalid declaration %s", e.Scope)
	}
}
