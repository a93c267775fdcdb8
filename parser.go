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
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/parser"
	"github.com/bufbuild/protoschema/reporter"
)

// Parser parses many schema files concurrently.
type Parser struct {
	// Resolves paths into source code or already parsed trees. This field
	// is required.
	Resolver Resolver
	// The maximum number of files parsed at once. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default
	// reporter is used, which fails at the first error and ignores all
	// warnings.
	//
	// The reporter is shared by all files being parsed, but it is never
	// called concurrently.
	Reporter reporter.Reporter
}

// Files is the result of ParseFiles, in the order the files were named.
type Files []*ast.File

// FindFileByPath returns the file with the given name, or nil.
func (f Files) FindFileByPath(path string) *ast.File {
	for _, file := range f {
		if file.Name() == path {
			return file
		}
	}
	return nil
}

// ParseFiles parses the named files. The returned slice holds the files in
// the order given; a name given more than once is parsed once and appears
// at each position.
//
// If the reporter swallows errors, every file is still parsed so that all
// of them are reported, and the result is reporter.ErrInvalidSource. Any
// other error cancels the remaining work and is returned.
func (p *Parser) ParseFiles(ctx context.Context, files ...string) (Files, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if p.Resolver == nil {
		return nil, errors.New("parser has no resolver")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := p.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		p:       p,
		h:       reporter.NewHandler(p.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		results: map[string]*result{},
	}

	results := make([]*result, len(files))
	for i, f := range files {
		results[i] = e.parse(ctx, f)
	}

	var firstErr error
	parsed := make(Files, len(files))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err == nil {
			parsed[i] = r.res
			continue
		}
		if !errors.Is(r.err, reporter.ErrInvalidSource) {
			return nil, r.err
		}
		if firstErr == nil {
			firstErr = r.err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return parsed, nil
}

type result struct {
	ready chan struct{}
	res   *ast.File
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(f *ast.File) {
	r.res = f
	close(r.ready)
}

type executor struct {
	p *Parser
	h *reporter.Handler
	s *semaphore.Weighted

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) parse(ctx context.Context, file string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[file]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[file] = r
	go func() {
		e.doParse(ctx, file, r)
	}()
	return r
}

func (e *executor) doParse(ctx context.Context, file string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	sr, err := e.p.Resolver.FindFileByPath(file)
	if err != nil {
		r.fail(err)
		return
	}

	f, err := e.asFile(file, sr)
	// the source is closed before the result is published, so that callers
	// see it closed once ParseFiles returns
	if c, ok := sr.Source.(io.Closer); ok {
		_ = c.Close()
	}
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(f)
}

func (e *executor) asFile(name string, r SearchResult) (*ast.File, error) {
	if r.AST != nil {
		if r.AST.Name() != name {
			return nil, fmt.Errorf("search result for %q returned tree for %q", name, r.AST.Name())
		}
		return r.AST, nil
	}
	if r.Source == nil {
		return nil, fmt.Errorf("search result for %q is empty", name)
	}
	data, err := io.ReadAll(r.Source)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return parser.Parse(name, data, e.h)
}
