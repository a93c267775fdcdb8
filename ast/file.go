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

import "slices"

// FileConfig holds the inputs to NewFile.
type FileConfig struct {
	// Name is an opaque label for the file, usually its path. May be empty.
	Name string
	// Syntax is the value of the file's syntax statement, or empty if the
	// file has none.
	Syntax string
	// Package is the file's package, or empty if the file has none.
	Package            string
	Imports            []string
	PublicImports      []string
	Types              []Type
	Services           []*Service
	Options            []*Option
	ExtendDeclarations []*ExtendDeclaration
}

// File is the root of the tree for a single schema file.
type File struct {
	name          string
	syntax        string
	pkg           string
	imports       []string
	publicImports []string
	types         []Type
	services      []*Service
	options       []*Option
	extends       []*ExtendDeclaration
}

func NewFile(cfg FileConfig) *File {
	return &File{
		name:          cfg.Name,
		syntax:        cfg.Syntax,
		pkg:           cfg.Package,
		imports:       cloneSlice(cfg.Imports),
		publicImports: cloneSlice(cfg.PublicImports),
		types:         cloneSlice(cfg.Types),
		services:      cloneSlice(cfg.Services),
		options:       cloneSlice(cfg.Options),
		extends:       cloneSlice(cfg.ExtendDeclarations),
	}
}

func (f *File) Name() string {
	return f.name
}

// Syntax returns the value of the syntax statement, or empty.
func (f *File) Syntax() string {
	return f.syntax
}

// Package returns the package name, or empty if the file declares none.
func (f *File) Package() string {
	return f.pkg
}

// Imports returns the paths of the file's regular (and weak) imports, as
// written.
func (f *File) Imports() []string {
	return cloneSlice(f.imports)
}

// PublicImports returns the paths of the file's public imports, as written.
func (f *File) PublicImports() []string {
	return cloneSlice(f.publicImports)
}

// Types returns the top-level message and enum declarations, in source
// order.
func (f *File) Types() []Type {
	return cloneSlice(f.types)
}

func (f *File) Services() []*Service {
	return cloneSlice(f.services)
}

func (f *File) Options() []*Option {
	return cloneSlice(f.options)
}

// ExtendDeclarations returns every extend declaration in the file,
// including those nested in messages, in source order.
func (f *File) ExtendDeclarations() []*ExtendDeclaration {
	return cloneSlice(f.extends)
}

// Equal reports whether f and other are structurally equal.
func (f *File) Equal(other *File) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.name == other.name &&
		f.syntax == other.syntax &&
		f.pkg == other.pkg &&
		slices.Equal(f.imports, other.imports) &&
		slices.Equal(f.publicImports, other.publicImports) &&
		equalSlices(f.types, other.types) &&
		equalSlices(f.services, other.services) &&
		equalSlices(f.options, other.options) &&
		equalSlices(f.extends, other.extends)
}
