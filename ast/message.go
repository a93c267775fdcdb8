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

import "github.com/bufbuild/protoschema/internal/interval"

// Type is a message or enum declaration. The only implementations are
// *Message and *Enum; use a type switch to get at variant-specific data.
type Type interface {
	// Name returns the simple name of the type.
	Name() string
	// FullyQualifiedName returns the package, the names of enclosing
	// messages and the simple name, joined with dots.
	FullyQualifiedName() string
	Documentation() string
	Options() []*Option
	// NestedTypes returns the types declared inside this one.
	NestedTypes() []Type
	// Equal reports whether the given type is structurally equal.
	Equal(Type) bool

	isType()
}

// ExtensionsConfig holds the inputs to NewExtensions.
type ExtensionsConfig struct {
	Documentation string
	Start, End    int
}

// Extensions is an inclusive range of tags that a message reserves for
// extension fields.
type Extensions struct {
	doc        string
	start, end int
}

// NewExtensions builds an extensions range. Both ends must be valid tags
// and start must not be greater than end. An end of MaxTag is written
// "max".
func NewExtensions(cfg ExtensionsConfig) (*Extensions, error) {
	if !IsValidTag(cfg.Start) || !IsValidTag(cfg.End) || cfg.Start > cfg.End {
		return nil, &ValidationError{Kind: IllegalRange, Tag: cfg.Start, End: cfg.End}
	}
	return &Extensions{doc: cfg.Documentation, start: cfg.Start, end: cfg.End}, nil
}

func (e *Extensions) Documentation() string {
	return e.doc
}

func (e *Extensions) Start() int {
	return e.start
}

func (e *Extensions) End() int {
	return e.end
}

// Contains reports whether tag falls inside the range.
func (e *Extensions) Contains(tag int) bool {
	return e.start <= tag && tag <= e.end
}

// Equal reports whether e and other are structurally equal.
func (e *Extensions) Equal(other *Extensions) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.doc == other.doc && e.start == other.start && e.end == other.end
}

// MessageConfig holds the inputs to NewMessage.
type MessageConfig struct {
	Name               string
	FullyQualifiedName string
	Documentation      string
	Fields             []*Field
	NestedTypes        []Type
	Extensions         []*Extensions
	Options            []*Option
}

// Message is a message type declaration.
type Message struct {
	name        string
	fqname      string
	doc         string
	fields      []*Field
	nestedTypes []Type
	extensions  []*Extensions
	options     []*Option

	extensionIndex interval.Index[int, *Extensions]
}

var _ Type = (*Message)(nil)

// NewMessage builds a message. It fails if two fields share a tag, or if
// two directly nested enums declare values with the same name.
func NewMessage(cfg MessageConfig) (*Message, error) {
	if err := validateFieldTagUniqueness(cfg.FullyQualifiedName, cfg.Fields); err != nil {
		return nil, err
	}
	if err := validateValueUniquenessInScope(cfg.FullyQualifiedName, cfg.NestedTypes); err != nil {
		return nil, err
	}
	msg := &Message{
		name:        cfg.Name,
		fqname:      cfg.FullyQualifiedName,
		doc:         cfg.Documentation,
		fields:      cloneSlice(cfg.Fields),
		nestedTypes: cloneSlice(cfg.NestedTypes),
		extensions:  cloneSlice(cfg.Extensions),
		options:     cloneSlice(cfg.Options),
	}
	for _, ext := range msg.extensions {
		msg.extensionIndex.Insert(ext.start, ext.end, ext)
	}
	return msg, nil
}

func (m *Message) Name() string {
	return m.name
}

func (m *Message) FullyQualifiedName() string {
	return m.fqname
}

func (m *Message) Documentation() string {
	return m.doc
}

func (m *Message) Options() []*Option {
	return cloneSlice(m.options)
}

func (m *Message) NestedTypes() []Type {
	return cloneSlice(m.nestedTypes)
}

func (m *Message) Fields() []*Field {
	return cloneSlice(m.fields)
}

func (m *Message) Extensions() []*Extensions {
	return cloneSlice(m.extensions)
}

// ExtensionsFor returns the first declared extensions range that contains
// tag.
func (m *Message) ExtensionsFor(tag int) (*Extensions, bool) {
	return m.extensionIndex.Lookup(tag)
}

// Equal reports whether other is a *Message structurally equal to m.
func (m *Message) Equal(other Type) bool {
	o, ok := other.(*Message)
	if !ok || m == nil || o == nil {
		return ok && m == o
	}
	return m.name == o.name &&
		m.fqname == o.fqname &&
		m.doc == o.doc &&
		equalSlices(m.fields, o.fields) &&
		equalSlices(m.nestedTypes, o.nestedTypes) &&
		equalSlices(m.extensions, o.extensions) &&
		equalSlices(m.options, o.options)
}

func (*Message) isType() {}
