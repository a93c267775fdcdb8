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

// Label is a field's cardinality.
type Label int

const (
	LabelOptional Label = iota + 1
	LabelRequired
	LabelRepeated
)

var labelNames = map[Label]string{
	LabelOptional: "optional",
	LabelRequired: "required",
	LabelRepeated: "repeated",
}

// String returns the keyword for l, as written in source.
func (l Label) String() string {
	if s, ok := labelNames[l]; ok {
		return s
	}
	return "unknown"
}

// LabelFromKeyword returns the label for the given keyword.
func LabelFromKeyword(keyword string) (Label, bool) {
	for l, s := range labelNames {
		if s == keyword {
			return l, true
		}
	}
	return 0, false
}

// FieldConfig holds the inputs to NewField.
type FieldConfig struct {
	Label Label
	// Type is a scalar type keyword or a message or enum name, as written.
	Type          string
	Name          string
	Tag           int
	Documentation string
	Options       []*Option
}

// Field is a field of a message or of an extend declaration.
type Field struct {
	label   Label
	typ     string
	name    string
	tag     int
	doc     string
	options []*Option
}

// NewField builds a field. It fails if the tag is not a valid field tag.
func NewField(cfg FieldConfig) (*Field, error) {
	if _, ok := labelNames[cfg.Label]; !ok {
		return nil, &ValidationError{Kind: IllegalLabel, Name: cfg.Name}
	}
	if !IsValidTag(cfg.Tag) {
		return nil, &ValidationError{Kind: IllegalTag, Tag: cfg.Tag}
	}
	return &Field{
		label:   cfg.Label,
		typ:     cfg.Type,
		name:    cfg.Name,
		tag:     cfg.Tag,
		doc:     cfg.Documentation,
		options: cloneSlice(cfg.Options),
	}, nil
}

func (f *Field) Label() Label {
	return f.label
}

// Type returns the field's type name as written in source. It may be a
// scalar type such as "int64" or "bytes", or an unresolved message or enum
// name.
func (f *Field) Type() string {
	return f.typ
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Tag() int {
	return f.tag
}

func (f *Field) Documentation() string {
	return f.doc
}

func (f *Field) Options() []*Option {
	return cloneSlice(f.options)
}

// IsDeprecated reports whether the deprecated option is present and its
// value is the text "true".
func (f *Field) IsDeprecated() bool {
	text, ok := optionText(f.options, "deprecated")
	return ok && text == "true"
}

// IsPacked reports whether the packed option is present and its value is
// the text "true".
func (f *Field) IsPacked() bool {
	text, ok := optionText(f.options, "packed")
	return ok && text == "true"
}

// Default returns the value of the default option, if present.
func (f *Field) Default() (Value, bool) {
	opt, ok, err := FindOption(f.options, "default")
	if err != nil || !ok {
		return nil, false
	}
	return opt.value, true
}

// Equal reports whether f and other are structurally equal.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.label == other.label &&
		f.typ == other.typ &&
		f.name == other.name &&
		f.tag == other.tag &&
		f.doc == other.doc &&
		equalSlices(f.options, other.options)
}

// validateFieldTagUniqueness fails if two fields share a tag. scope is the
// fully-qualified name of the declaration that owns the fields.
func validateFieldTagUniqueness(scope string, fields []*Field) error {
	tags := make(map[int]struct{}, len(fields))
	for _, field := range fields {
		if _, ok := tags[field.tag]; ok {
			return &ValidationError{Kind: DuplicateTag, Scope: scope, Tag: field.tag}
		}
		tags[field.tag] = struct{}{}
	}
	return nil
}
