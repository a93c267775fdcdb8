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

// Package protoschema parses protobuf schema source into an immutable,
// self-validating syntax tree, and prints trees back to canonical source.
//
// The sub-packages hold the individual pieces:
//   - parser turns the text of one file into an *ast.File.
//     Also see: parser.Parse
//   - ast is the tree model. Every node is built by a constructor that
//     checks its invariants, such as tag ranges and tag uniqueness.
//   - printer renders any node back to source text.
//     Also see: printer.Print
//   - walk visits every declaration in a file.
//   - descriptor converts a file into a descriptorpb.FileDescriptorProto.
//   - reporter is how errors and warnings reach the caller.
//
// This package ties them together for parsing many files at once, using
// multiple CPU cores.
//
// # Resolvers
//
// A Resolver is how the Parser locates the files it is asked to parse. It
// can answer with source text, or with an already parsed tree, in which
// case parsing is skipped. Imports are never followed: only the named
// files are parsed, and import paths stay opaque strings.
//
// # Parser
//
// A Parser accepts a list of file names and produces the list of trees.
// Only the Resolver field is required:
//
//	p := protoschema.Parser{
//	    Resolver: &protoschema.SourceResolver{
//	        Accessor: func(path string) (io.ReadCloser, error) {
//	            return os.Open(path)
//	        },
//	    },
//	}
//	files, err := p.ParseFiles(ctx, "foo.proto", "bar.proto")
//
// This minimal Parser uses default parallelism, equal to the number of CPU
// cores detected, and fails at the first error in any file. Both can be
// customized by setting other fields.
package protoschema
