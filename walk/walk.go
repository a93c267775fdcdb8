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

// Package walk provides helper functions for traversing all declarations
// in a parsed file.
package walk

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoschema/ast"
)

// Field numbers in descriptor.proto, used to build source paths. A path
// built from these locates the corresponding element in the output of
// descriptor.ToFileDescriptorProto.
const (
	fileMessagesTag   = 4
	fileEnumsTag      = 5
	fileServicesTag   = 6
	fileExtensionsTag = 7

	messageFieldsTag          = 2
	messageNestedMessagesTag  = 3
	messageEnumsTag           = 4
	messageExtensionRangesTag = 5

	enumValuesTag     = 2
	serviceMethodsTag = 2
)

// Declaration is a node that may carry documentation: *ast.Message,
// *ast.Enum, *ast.EnumValue, *ast.Field, *ast.Extensions,
// *ast.ExtendDeclaration, *ast.Service or *ast.Method.
type Declaration interface {
	Documentation() string
}

// Declarations walks all declarations in the given file, calling fn for
// each one. Declarations are visited depth-first, parents before
// children, in the order they appear in the file.
//
// If fn returns an error, the walk is aborted and that error is returned.
func Declarations(file *ast.File, fn func(Declaration) error) error {
	return DeclarationsEnterAndExit(file, fn, nil)
}

// DeclarationsEnterAndExit is like Declarations, except it calls enter
// when a declaration is first visited and exit once all of its children
// have been visited. The exit function may be nil.
func DeclarationsEnterAndExit(file *ast.File, enter, exit func(Declaration) error) error {
	return DeclarationsWithPathEnterAndExit(
		file,
		func(_ protoreflect.FullName, _ protoreflect.SourcePath, d Declaration) error {
			return enter(d)
		},
		adaptExit(exit),
	)
}

func adaptExit(exit func(Declaration) error) func(protoreflect.FullName, protoreflect.SourcePath, Declaration) error {
	if exit == nil {
		return nil
	}
	return func(_ protoreflect.FullName, _ protoreflect.SourcePath, d Declaration) error {
		return exit(d)
	}
}

// DeclarationsWithPath is like Declarations, except it also passes the
// fully-qualified name of each declaration and its source path. Extension
// ranges and extend declarations have no name of their own; they are given
// the name of the message they belong to or extend.
//
// Extend declarations all map to the file's extension list, so the path of
// an extend declaration is that of the list, and the paths of their fields
// are numbered consecutively across all extend declarations in the file.
func DeclarationsWithPath(file *ast.File, fn func(protoreflect.FullName, protoreflect.SourcePath, Declaration) error) error {
	return DeclarationsWithPathEnterAndExit(file, fn, nil)
}

// DeclarationsWithPathEnterAndExit is like DeclarationsWithPath, with
// separate enter and exit functions as in DeclarationsEnterAndExit.
func DeclarationsWithPathEnterAndExit(file *ast.File, enter, exit func(protoreflect.FullName, protoreflect.SourcePath, Declaration) error) error {
	w := &walker{enter: enter, exit: exit}
	return w.walkFile(file)
}

type walker struct {
	enter, exit func(protoreflect.FullName, protoreflect.SourcePath, Declaration) error
}

func (w *walker) leaf(name string, path protoreflect.SourcePath, d Declaration) error {
	if err := w.enter(protoreflect.FullName(name), path, d); err != nil {
		return err
	}
	return w.leave(name, path, d)
}

func (w *walker) leave(name string, path protoreflect.SourcePath, d Declaration) error {
	if w.exit == nil {
		return nil
	}
	return w.exit(protoreflect.FullName(name), path, d)
}

func (w *walker) walkFile(file *ast.File) error {
	var path protoreflect.SourcePath
	if err := w.walkTypes(path, fileMessagesTag, fileEnumsTag, file.Types()); err != nil {
		return err
	}
	var fieldIndex int32
	for _, ext := range file.ExtendDeclarations() {
		extPath := append(path, fileExtensionsTag)
		if err := w.enter(protoreflect.FullName(ext.FullyQualifiedName()), extPath, ext); err != nil {
			return err
		}
		for _, fld := range ext.Fields() {
			if err := w.leaf(qualify(file.Package(), fld.Name()), append(extPath, fieldIndex), fld); err != nil {
				return err
			}
			fieldIndex++
		}
		if err := w.leave(ext.FullyQualifiedName(), extPath, ext); err != nil {
			return err
		}
	}
	for i, svc := range file.Services() {
		svcPath := append(path, fileServicesTag, int32(i))
		if err := w.enter(protoreflect.FullName(svc.FullyQualifiedName()), svcPath, svc); err != nil {
			return err
		}
		for j, mtd := range svc.Methods() {
			if err := w.leaf(qualify(svc.FullyQualifiedName(), mtd.Name()), append(svcPath, serviceMethodsTag, int32(j)), mtd); err != nil {
				return err
			}
		}
		if err := w.leave(svc.FullyQualifiedName(), svcPath, svc); err != nil {
			return err
		}
	}
	return nil
}

// walkTypes visits messages and enums in declaration order, numbering each
// kind separately as descriptors do.
func (w *walker) walkTypes(path protoreflect.SourcePath, messagesTag, enumsTag int32, types []ast.Type) error {
	var msgIndex, enumIndex int32
	for _, typ := range types {
		switch typ := typ.(type) {
		case *ast.Message:
			if err := w.walkMessage(append(path, messagesTag, msgIndex), typ); err != nil {
				return err
			}
			msgIndex++
		case *ast.Enum:
			if err := w.walkEnum(append(path, enumsTag, enumIndex), typ); err != nil {
				return err
			}
			enumIndex++
		}
	}
	return nil
}

func (w *walker) walkMessage(path protoreflect.SourcePath, msg *ast.Message) error {
	// clipped so that appends for children never share its array
	path = path[:len(path):len(path)]
	name := msg.FullyQualifiedName()
	if err := w.enter(protoreflect.FullName(name), path, msg); err != nil {
		return err
	}
	for i, fld := range msg.Fields() {
		if err := w.leaf(qualify(name, fld.Name()), append(path, messageFieldsTag, int32(i)), fld); err != nil {
			return err
		}
	}
	if err := w.walkTypes(path, messageNestedMessagesTag, messageEnumsTag, msg.NestedTypes()); err != nil {
		return err
	}
	for i, ext := range msg.Extensions() {
		if err := w.leaf(name, append(path, messageExtensionRangesTag, int32(i)), ext); err != nil {
			return err
		}
	}
	return w.leave(name, path, msg)
}

func (w *walker) walkEnum(path protoreflect.SourcePath, enum *ast.Enum) error {
	path = path[:len(path):len(path)]
	name := enum.FullyQualifiedName()
	if err := w.enter(protoreflect.FullName(name), path, enum); err != nil {
		return err
	}
	// enum values are siblings of their enum, not children
	scope := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		scope = name[:i]
	}
	for i, val := range enum.Values() {
		if err := w.leaf(qualify(scope, val.Name()), append(path, enumValuesTag, int32(i)), val); err != nil {
			return err
		}
	}
	return w.leave(name, path, enum)
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}
