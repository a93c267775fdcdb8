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
	"fmt"
	"math"
	"strconv"
)

// Value is the value of an option. It is a closed set: the only
// implementations are String, Bool, Int, Float, EnumConstant, List, *Map
// and *Option.
type Value interface {
	isValue()
}

// String is a string option value, with escapes already decoded.
type String string

// Bool is a boolean option value, written as true or false.
type Bool bool

// Int is an integer option value, written in decimal, hex or octal.
type Int int64

// Float is a floating point option value.
type Float float64

// EnumConstant is a bare identifier used as an option value. The parser
// cannot tell whether it names an enum value or something else, so it is
// kept opaque.
type EnumConstant string

// List is an ordered list of values, written [a, b, c].
type List struct {
	values []Value
}

// NewList returns a list holding the given values.
func NewList(values ...Value) List {
	return List{values: cloneSlice(values)}
}

// Len returns the number of values in the list.
func (l List) Len() int {
	return len(l.values)
}

// At returns the i-th value.
func (l List) At(i int) Value {
	return l.values[i]
}

// Values returns a copy of the list's values.
func (l List) Values() []Value {
	return cloneSlice(l.values)
}

// MapEntry is one key and value in a Map.
type MapEntry struct {
	// Key is the entry's key as written. Extension-style keys keep their
	// brackets, e.g. "[foo.bar]".
	Key   string
	Value Value
}

// Map is an ordered mapping from key to value, written { key: value }.
type Map struct {
	entries []MapEntry
}

// NewMap returns a map holding the given entries, in order.
func NewMap(entries ...MapEntry) *Map {
	return &Map{entries: cloneSlice(entries)}
}

// Len returns the number of entries in the map.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the map's entries, in order.
func (m *Map) Entries() []MapEntry {
	return cloneSlice(m.entries)
}

// Get returns the value for the first entry with the given key.
func (m *Map) Get(key string) (Value, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (String) isValue()       {}
func (Bool) isValue()         {}
func (Int) isValue()          {}
func (Float) isValue()        {}
func (EnumConstant) isValue() {}
func (List) isValue()         {}
func (*Map) isValue()         {}
func (*Option) isValue()      {}

// Option is a name and value pair. Options appear as declarations
// ("option java_package = "x";"), in bracketed lists after fields and enum
// values, and as values of other options.
type Option struct {
	name   string
	value  Value
	custom bool
}

// NewOption creates a built-in option, one whose name is written bare.
// The given value must not be nil.
func NewOption(name string, value Value) *Option {
	if value == nil {
		panic("ast: option value must not be nil")
	}
	return &Option{name: name, value: value}
}

// NewCustomOption creates a custom option, one whose name is an extension
// and is written in parentheses. The name is given without parentheses.
// The given value must not be nil.
func NewCustomOption(name string, value Value) *Option {
	opt := NewOption(name, value)
	opt.custom = true
	return opt
}

// Name returns the option's name, without parentheses.
func (o *Option) Name() string {
	return o.name
}

// Value returns the option's value.
func (o *Option) Value() Value {
	return o.value
}

// IsCustom reports whether the option's name is an extension name, i.e.
// was written in parentheses.
func (o *Option) IsCustom() bool {
	return o.custom
}

// Equal reports whether o and other are structurally equal.
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.name == other.name && o.custom == other.custom && EqualValues(o.value, other.value)
}

// EqualValues reports whether two option values are structurally equal.
func EqualValues(a, b Value) bool {
	switch a := a.(type) {
	case String, Bool, Int, EnumConstant:
		return a == b
	case Float:
		b, ok := b.(Float)
		return ok && (a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b))))
	case List:
		b, ok := b.(List)
		if !ok || len(a.values) != len(b.values) {
			return false
		}
		for i := range a.values {
			if !EqualValues(a.values[i], b.values[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := b.(*Map)
		if !ok || a == nil || b == nil {
			return ok && a == b
		}
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			if a.entries[i].Key != b.entries[i].Key || !EqualValues(a.entries[i].Value, b.entries[i].Value) {
				return false
			}
		}
		return true
	case *Option:
		b, ok := b.(*Option)
		return ok && a.Equal(b)
	default:
		return a == nil && b == nil
	}
}

// ValueText renders a scalar value the way it would be written in source,
// without quotes for strings. Aggregates render as an empty string.
func ValueText(v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case Bool:
		return strconv.FormatBool(bool(v))
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case EnumConstant:
		return string(v)
	default:
		return ""
	}
}

// FindOption returns the option in options with the given name. It returns
// false if there is no such option, and an error if more than one option
// has that name.
func FindOption(options []*Option, name string) (*Option, bool, error) {
	var found *Option
	for _, opt := range options {
		if opt.name != name {
			continue
		}
		if found != nil {
			return nil, false, fmt.Errorf("Multiple options match name: %s", name) //nolint:revive,stylecheck // message is part of the API
		}
		found = opt
	}
	return found, found != nil, nil
}

// OptionsAsMap collapses options into a map keyed by option name. Options
// whose value is a nested option (as produced by "(a.b).c = 1") are merged
// by name, so that "(a.b).c = 1" and "(a.b).d = 2" produce a single entry
// "a.b" with value {c: 1, d: 2}. For any other repeated name the last
// value wins.
func OptionsAsMap(options []*Option) *Map {
	var keys []string
	values := make(map[string]Value, len(options))
	for _, opt := range options {
		key := opt.name
		prev, seen := values[key]
		if !seen {
			keys = append(keys, key)
		}
		nested, ok := opt.value.(*Option)
		if !ok {
			values[key] = opt.value
			continue
		}
		entry := MapEntry{Key: nested.name, Value: nested.value}
		if m, ok := prev.(*Map); ok {
			values[key] = &Map{entries: append(m.Entries(), entry)}
		} else {
			values[key] = &Map{entries: []MapEntry{entry}}
		}
	}
	entries := make([]MapEntry, len(keys))
	for i, key := range keys {
		entries[i] = MapEntry{Key: key, Value: values[key]}
	}
	return NewMap(entries...)
}

// optionText returns the text of the named option's value, if present and
// unambiguous.
func optionText(options []*Option, name string) (string, bool) {
	opt, ok, err := FindOption(options, name)
	if err != nil || !ok {
		return "", false
	}
	return ValueText(opt.value), true
}
