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

// Package parser contains the logic for parsing protobuf schema source into
// the immutable tree defined by package ast.
//
// Parsing is a single pass: a lexer produces tokens on demand, and a
// recursive-descent parser consumes them, delegating option values to a
// small value grammar and attaching documentation comments to the
// declarations that follow them. Each node is validated as it is built, so
// a file either parses into a complete, valid tree or fails with the first
// error found.
//
// The parser never resolves imports or type names; both are recorded as
// written.
package parser
