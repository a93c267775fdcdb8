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

// EnumValueConfig holds the inputs to NewEnumValue.
type EnumValueConfig struct {
	Name          string
	Tag           int
	Documentation string
	Options       []*Option
}

// EnumValue is a named constant declared in an enum.
type EnumValue struct {
	name    string
	tag     int
	doc     string
	options []*Option
}

// NewEnumValue builds an enum value. Unlike field tags, enum value tags
// are not checked against IsValidTag: enum numbers follow protobuf enum
// rules, so zero, negative and reserved-range numbers are all accepted.
// Only uniqueness is enforced, by NewEnum.
func NewEnumValue(cfg EnumValueConfig) *EnumValue {
	return &EnumValue{
		name:    cfg.Name,
		tag:     cfg.Tag,
		doc:     cfg.Documentation,
		options: cloneSlice(cfg.Options),
	}
}

func (v *EnumValue) Name() string {
	return v.name
}

func (v *EnumValue) Tag() int {
	return v.tag
}

func (v *EnumValue) Documentation() string {
	return v.doc
}

func (v *EnumValue) Options() []*Option {
	return cloneSlice(v.options)
}

// Equal reports whether v and other are structurally equal.
func (v *EnumValue) Equal(other *EnumValue) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.name == other.name &&
		v.tag == other.tag &&
		v.doc == other.doc &&
		equalSlices(v.options, other.options)
}

// EnumConfig holds the inputs to NewEnum.
type EnumConfig struct {
	Name               string
	FullyQualifiedName string
	Documentation      string
	Options            []*Option
	Values             []*EnumValue
}

// Enum is an enum type declaration.
type Enum struct {
	name       string
	fqname     string
	doc        string
	options    []*Option
	values     []*EnumValue
	allowAlias bool
}

var _ Type = (*Enum)(nil)

// NewEnum builds an enum. Unless the enum has an allow_alias option set to
// true, no two values may share a tag.
func NewEnum(cfg EnumConfig) (*Enum, error) {
	allowAlias := parseAllowAlias(cfg.Options)
	if !allowAlias {
		tags := make(map[int]struct{}, len(cfg.Values))
		for _, value := range cfg.Values {
			if _, ok := tags[value.tag]; ok {
				return nil, &ValidationError{Kind: DuplicateTag, Scope: cfg.FullyQualifiedName, Tag: value.tag}
			}
			tags[value.tag] = struct{}{}
		}
	}
	return &Enum{
		name:       cfg.Name,
		fqname:     cfg.FullyQualifiedName,
		doc:        cfg.Documentation,
		options:    cloneSlice(cfg.Options),
		values:     cloneSlice(cfg.Values),
		allowAlias: allowAlias,
	}, nil
}

func parseAllowAlias(options []*Option) bool {
	opt, ok, err := FindOption(options, "allow_alias")
	if err != nil || !ok {
		return false
	}
	b, isBool := opt.value.(Bool)
	return isBool && bool(b)
}

func (e *Enum) Name() string {
	return e.name
}

func (e *Enum) FullyQualifiedName() string {
	return e.fqname
}

func (e *Enum) Documentation() string {
	return e.doc
}

func (e *Enum) Options() []*Option {
	return cloneSlice(e.options)
}

// NestedTypes always returns nil; enums cannot contain type declarations.
func (e *Enum) NestedTypes() []Type {
	return nil
}

func (e *Enum) Values() []*EnumValue {
	return cloneSlice(e.values)
}

// AllowAlias reports whether values of this enum may share a tag.
func (e *Enum) AllowAlias() bool {
	return e.allowAlias
}

// Equal reports whether other is an *Enum structurally equal to e.
func (e *Enum) Equal(other Type) bool {
	o, ok := other.(*Enum)
	if !ok || e == nil || o == nil {
		return ok && e == o
	}
	return e.name == o.name &&
		e.fqname == o.fqname &&
		e.doc == o.doc &&
		equalSlices(e.options, o.options) &&
		equalSlices(e.values, o.values)
}

func (*Enum) isType() {}

// validateValueUniquenessInScope fails if two enums directly nested in the
// same scope declare values with the same name. Enum values follow C++
// scoping rules: they are siblings of their enum, not children of it.
func validateValueUniquenessInScope(scope string, nested []Type) error {
	names := make(map[string]struct{})
	for _, typ := range nested {
		enum, ok := typ.(*Enum)
		if !ok {
			continue
		}
		for _, value := range enum.values {
			if _, ok := names[value.name]; ok {
				return &ValidationError{Kind: DuplicateEnumName, Scope: scope, Name: value.name}
			}
			names[value.name] = struct{}{}
		}
	}
	return nil
}
