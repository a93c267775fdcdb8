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
	"math"
	"strings"

	"github.com/bufbuild/protoschema/ast"
)

// optionNamePart is one segment of an option name. A parenthesized
// segment names a custom option; a plain one is a run of dotted
// identifiers.
type optionNamePart struct {
	name   string
	custom bool
}

// parseOptionAssignment parses "NAME = VALUE", as found in option
// statements and in bracketed option lists.
//
// A name such as "(validation.range).min" yields a custom option named
// "validation.range" whose value is a builtin option named "min" holding
// the assigned value.
func (p *parser) parseOptionAssignment() (*ast.Option, error) {
	parts, err := p.parseOptionName()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('='); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	var opt *ast.Option
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].custom {
			opt = ast.NewCustomOption(parts[i].name, value)
		} else {
			opt = ast.NewOption(parts[i].name, value)
		}
		value = opt
	}
	return opt, nil
}

func (p *parser) parseOptionName() ([]optionNamePart, error) {
	var parts []optionNamePart
	for {
		if p.isSymbol('(') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.parseQualifiedName("an option name")
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(')'); err != nil {
				return nil, err
			}
			parts = append(parts, optionNamePart{name: name, custom: true})
		} else {
			tok, err := p.expectIdent("an option name")
			if err != nil {
				return nil, err
			}
			if n := len(parts); n > 0 && !parts[n-1].custom {
				parts[n-1].name += "." + tok.text
			} else {
				parts = append(parts, optionNamePart{name: tok.text})
			}
		}
		if !p.isSymbol('.') {
			return parts, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseOptionList parses a bracketed list of option assignments, as found
// after fields and enum values. Commas between entries are optional, and
// a trailing comma is allowed.
func (p *parser) parseOptionList() ([]*ast.Option, error) {
	open := p.tok
	if err := p.expectSymbol('['); err != nil {
		return nil, err
	}
	var opts []*ast.Option
	for !p.isSymbol(']') {
		if p.tok.kind == tokenEOF {
			return nil, optionErrorf(p.pos(open), "unbalanced '[': option list is never closed")
		}
		opt, err := p.parseOptionAssignment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
		if p.isSymbol(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return opts, p.advance()
}

// parseValue parses an option value: a scalar, a list, or an aggregate.
func (p *parser) parseValue() (ast.Value, error) {
	tok := p.tok
	switch tok.kind {
	case tokenString:
		s, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return ast.String(s), nil
	case tokenInt:
		if tok.intVal > math.MaxInt64 {
			return nil, optionErrorf(p.pos(tok), "value out of range for int: %s", tok.text)
		}
		return ast.Int(int64(tok.intVal)), p.advance()
	case tokenFloat:
		return ast.Float(tok.floatVal), p.advance()
	case tokenIdent:
		switch tok.text {
		case "true":
			return ast.Bool(true), p.advance()
		case "false":
			return ast.Bool(false), p.advance()
		}
		name, err := p.parseQualifiedName("a value")
		if err != nil {
			return nil, err
		}
		switch name {
		case "inf":
			return ast.Float(math.Inf(1)), nil
		case "nan":
			return ast.Float(math.NaN()), nil
		}
		return ast.EnumConstant(name), nil
	case tokenSymbol:
		switch tok.text {
		case "-":
			return p.parseNegative()
		case "[":
			return p.parseList()
		case "{":
			return p.parseAggregate()
		}
	}
	return nil, optionErrorf(p.pos(tok), "expected a value, found %s", describe(tok))
}

func (p *parser) parseNegative() (ast.Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	tok := p.tok
	switch {
	case tok.kind == tokenInt:
		if tok.intVal > 1<<63 {
			return nil, optionErrorf(p.pos(tok), "value out of range for int: -%s", tok.text)
		}
		return ast.Int(-int64(tok.intVal)), p.advance()
	case tok.kind == tokenFloat:
		return ast.Float(-tok.floatVal), p.advance()
	case tok.kind == tokenIdent && tok.text == "inf":
		return ast.Float(math.Inf(-1)), p.advance()
	case tok.kind == tokenIdent && tok.text == "nan":
		return ast.Float(math.NaN()), p.advance()
	default:
		return nil, optionErrorf(p.pos(tok), "expected a number after '-', found %s", describe(tok))
	}
}

func (p *parser) parseList() (ast.Value, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	var values []ast.Value
	for !p.isSymbol(']') {
		if p.tok.kind == tokenEOF {
			return nil, optionErrorf(p.pos(open), "unbalanced '[': list value is never closed")
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.isSymbol(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return ast.NewList(values...), p.advance()
}

// parseAggregate parses a brace-delimited aggregate. A key that appears
// more than once collects its values into a list, in order.
func (p *parser) parseAggregate() (ast.Value, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	var keys []string
	values := make(map[string][]ast.Value)
	for !p.isSymbol('}') {
		if p.tok.kind == tokenEOF {
			return nil, optionErrorf(p.pos(open), "unbalanced '{': aggregate value is never closed")
		}
		key, err := p.parseAggregateKey()
		if err != nil {
			return nil, err
		}
		switch {
		case p.isSymbol(':'):
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isSymbol('{'), p.isSymbol('['):
			// separator is optional before a message or list value
		default:
			return nil, optionErrorf(p.pos(p.tok), "expected ':' after %s, found %s", key, describe(p.tok))
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, ok := values[key]; !ok {
			keys = append(keys, key)
		}
		values[key] = append(values[key], v)
		if p.isSymbol(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	entries := make([]ast.MapEntry, len(keys))
	for i, key := range keys {
		if vals := values[key]; len(vals) == 1 {
			entries[i] = ast.MapEntry{Key: key, Value: vals[0]}
		} else {
			entries[i] = ast.MapEntry{Key: key, Value: ast.NewList(vals...)}
		}
	}
	return ast.NewMap(entries...), p.advance()
}

// parseAggregateKey parses a field name, or a bracketed extension name
// which is returned with its brackets.
func (p *parser) parseAggregateKey() (string, error) {
	if !p.isSymbol('[') {
		tok := p.tok
		if tok.kind != tokenIdent {
			return "", optionErrorf(p.pos(tok), "expected a field name, found %s", describe(tok))
		}
		return tok.text, p.advance()
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	name, err := p.parseQualifiedName("an extension name")
	if err != nil {
		return "", err
	}
	if !p.isSymbol(']') {
		return "", optionErrorf(p.pos(p.tok), "expected ']' after [%s, found %s", name, describe(p.tok))
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(name)
	sb.WriteByte(']')
	return sb.String(), p.advance()
}
