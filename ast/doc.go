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

// Package ast defines the immutable model produced by parsing a protocol
// buffers schema: files, messages, enums, fields, extend declarations,
// services and options.
//
// Nodes are created with the New* factory functions, which take a config
// struct and validate the node's structural invariants (tag ranges, tag
// uniqueness, enum value name scoping). A factory either returns a fully
// built node or a *ValidationError; partially built nodes never escape.
// Nodes are never mutated after construction. Every slice passed into a
// factory is copied, and every slice returned from an accessor is a fresh
// copy, so callers may freely modify either.
//
// The root of a parsed tree is a *File. A tree has no back-references:
// fully-qualified names are computed once by the parser and stored as
// plain strings.
//
// Type names used by fields, methods and extend declarations are recorded
// exactly as written. Nothing in this package resolves them.
//
// Nodes compare structurally with their Equal methods. Position
// information is not part of the model; SourcePos and FileInfo exist so
// that the parser can report errors.
package ast
