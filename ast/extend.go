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

// ExtendConfig holds the inputs to NewExtendDeclaration.
type ExtendConfig struct {
	// Name is the extended message's name as written, possibly relative.
	Name               string
	FullyQualifiedName string
	Documentation      string
	Fields             []*Field
}

// ExtendDeclaration adds extension fields to another message.
type ExtendDeclaration struct {
	name   string
	fqname string
	doc    string
	fields []*Field
}

// NewExtendDeclaration builds an extend declaration. It fails if two of its
// fields share a tag.
func NewExtendDeclaration(cfg ExtendConfig) (*ExtendDeclaration, error) {
	if err := validateFieldTagUniqueness(cfg.FullyQualifiedName, cfg.Fields); err != nil {
		return nil, err
	}
	return &ExtendDeclaration{
		name:   cfg.Name,
		fqname: cfg.FullyQualifiedName,
		doc:    cfg.Documentation,
		fields: cloneSlice(cfg.Fields),
	}, nil
}

// Name returns the extended message's name as written.
func (e *ExtendDeclaration) Name() string {
	return e.name
}

func (e *ExtendDeclaration) FullyQualifiedName() string {
	return e.fqname
}

func (e *ExtendDeclaration) Documentation() string {
	return e.doc
}

func (e *ExtendDeclaration) Fields() []*Field {
	return cloneSlice(e.fields)
}

// Equal reports whether e and other are structurally equal.
func (e *ExtendDeclaration) Equal(other *ExtendDeclaration) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.name == other.name &&
		e.fqname == other.fqname &&
		e.doc == other.doc &&
		equalSlices(e.fields, other.fields)
}
