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

package parser

import (
	"fmt"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/reporter"
)

// LexError is returned for malformed tokens: an unterminated string or
// block comment, an invalid character, a malformed number, or a bad escape
// sequence in a string literal.
type LexError struct {
	posError
}

// SyntaxError is returned when the tokens do not match the schema grammar,
// for example a missing semicolon or an unexpected keyword.
type SyntaxError struct {
	posError
}

// OptionSyntaxError is returned for a malformed option value, such as an
// unbalanced list or aggregate or a token that cannot start a value.
type OptionSyntaxError struct {
	posError
}

type posError struct {
	pos ast.SourcePos
	err error
}

func (e posError) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.err)
}

// GetPosition implements the reporter.ErrorWithPos interface.
func (e posError) GetPosition() ast.SourcePos {
	return e.pos
}

// Unwrap implements the reporter.ErrorWithPos interface.
func (e posError) Unwrap() error {
	return e.err
}

var (
	_ reporter.ErrorWithPos = (*LexError)(nil)
	_ reporter.ErrorWithPos = (*SyntaxError)(nil)
	_ reporter.ErrorWithPos = (*OptionSyntaxError)(nil)
)

func lexErrorf(pos ast.SourcePos, format string, args ...any) *LexError {
	return &LexError{posError{pos: pos, err: fmt.Errorf(format, args...)}}
}

func syntaxErrorf(pos ast.SourcePos, format string, args ...any) *SyntaxError {
	return &SyntaxError{posError{pos: pos, err: fmt.Errorf(format, args...)}}
}

func optionErrorf(pos ast.SourcePos, format string, args ...any) *OptionSyntaxError {
	return &OptionSyntaxError{posError{pos: pos, err: fmt.Errorf(format, args...)}}
}
