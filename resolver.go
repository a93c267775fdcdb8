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

package protoschema

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/bufbuild/protoschema/ast"
)

// Resolver is used by the Parser to load the files it is asked to parse.
type Resolver interface {
	// FindFileByPath searches for the file with the given path. It returns
	// an error that wraps protoregistry.NotFound when no such file exists.
	FindFileByPath(path string) (SearchResult, error)
}

// SearchResult is what a Resolver returns for a path. One of the fields
// must be set; if both are, AST is used and Source is ignored.
type SearchResult struct {
	// Source is the schema source text. If it also implements io.Closer,
	// the Parser closes it once it has been read.
	Source io.Reader
	// AST is an already parsed tree. Its name must match the path that
	// was searched.
	AST *ast.File
}

// ResolverFunc is a simple function type that implements Resolver.
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

// FindFileByPath implements Resolver.
func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver is a slice of resolvers, consulted in order. The first
// one to find the file wins. If none do, the error from the first is
// returned.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

// FindFileByPath implements Resolver.
func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, fmt.Errorf("%s: %w", path, protoregistry.NotFound)
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver resolves paths into source text through an accessor
// function, which is how the caller decides where source comes from (the
// file system, an embed.FS, a network store).
type SourceResolver struct {
	// ImportPaths are directories searched, in order, for each path. When
	// empty, paths are passed to Accessor as they are.
	ImportPaths []string
	// Accessor opens the file with the given name. It is required. It
	// should return an error wrapping fs.ErrNotExist for a missing file, so
	// that the remaining import paths are tried.
	Accessor func(path string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

// FindFileByPath implements Resolver.
func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	if r.Accessor == nil {
		return SearchResult{}, errors.New("source resolver has no accessor")
	}
	if len(r.ImportPaths) == 0 {
		return r.open(path)
	}

	var e error
	for _, importPath := range r.ImportPaths {
		res, err := r.open(filepath.Join(importPath, path))
		if err != nil {
			if errors.Is(err, protoregistry.NotFound) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return res, nil
	}
	return SearchResult{}, e
}

func (r *SourceResolver) open(path string) (SearchResult, error) {
	reader, err := r.Accessor(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SearchResult{}, fmt.Errorf("%w: %w", protoregistry.NotFound, err)
		}
		return SearchResult{}, err
	}
	return SearchResult{Source: reader}, nil
}
