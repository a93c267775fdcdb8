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

// Package reporter contains the types used for reporting errors and
// warnings found while parsing schema files.
package reporter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bufbuild/protoschema/ast"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, parsing aborts with that error. If the reporter
// returns nil, the file being parsed still fails, with ErrInvalidSource, but
// other files parsed with the same handler carry on and report their own
// errors.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// describe things that do not cause a parse to fail, such as an unrecognized
// syntax level.
type WarningReporter func(ErrorWithPos)

// Reporter is a type that handles reporting both errors and warnings.
type Reporter interface {
	// Error is called when the given error is encountered and needs to be
	// reported to the calling program. If this function returns non-nil
	// then the parse will abort with the returned error.
	Error(ErrorWithPos) error
	// Warning is called when the given warning is encountered.
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. A nil errs aborts on the first error; a nil warnings
// discards warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by the parser to report errors and warnings. It tracks
// whether any error has been reported, so a parse that continued past
// swallowed errors still fails with ErrInvalidSource.
//
// A Handler may be shared by parses running in separate goroutines.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports errors and warnings using
// the given reporter. If rep is nil, the first error aborts.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf handles an error with the given source position, creating
// the error with the given format and args.
//
// If the handler has already aborted, this returns the error that caused
// it. Otherwise the error is sent to the reporter and its result returned.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError handles the given error. If it carries a position it is sent
// to the reporter; any other error aborts immediately.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	var ewp ErrorWithPos
	if errors.As(err, &ewp) {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning sends a warning with the given position to the reporter.
func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reporter.Warning(errorWithSourcePos{pos: pos, underlying: err})
}

// HandleWarningf is like HandleWarning but builds the warning from format
// and args.
func (h *Handler) HandleWarningf(pos ast.SourcePos, format string, args ...any) {
	h.HandleWarning(pos, fmt.Errorf(format, args...))
}

// Error returns the handler's result. If any error was reported but the
// reporter swallowed it, this returns ErrInvalidSource.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the reporter, if any. Unlike
// Error, this returns nil when every reported error was swallowed.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
