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
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/protoschema/ast"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenInt
	tokenFloat
	tokenSymbol
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenIdent:
		return "IDENT"
	case tokenString:
		return "STRING"
	case tokenInt:
		return "INT"
	case tokenFloat:
		return "FLOAT"
	case tokenSymbol:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// symbols are the single-byte punctuation tokens of the grammar.
const symbols = "{}[]()=;,.:-"

// comment is a comment span. Comments are not tokens; the lexer buffers
// them and hands them to the parser attached to the token that follows.
type comment struct {
	// text is the raw comment, including its delimiters.
	text      string
	startLine int
	endLine   int
}

func (c comment) isBlock() bool {
	return strings.HasPrefix(c.text, "/*")
}

type token struct {
	kind tokenKind
	// text is the raw source text of the token. For strings it includes
	// the quotes, and escapes are not yet decoded.
	text   string
	offset int
	line   int

	intVal   uint64
	floatVal float64

	// comments holds the comments between the previous token and this one.
	comments []comment
	// prevLine is the line on which the previous token appeared, or zero
	// for the first token in the file.
	prevLine int
}

// lexer produces tokens on demand from an in-memory source file. As it
// goes, it records line starts in its FileInfo so that offsets can be
// turned into positions.
type lexer struct {
	info     *ast.FileInfo
	data     []byte
	pos      int
	prevLine int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func newLexer(info *ast.FileInfo) *lexer {
	l := &lexer{info: info, data: info.Data()}
	// if file has UTF8 byte order marker preface, skip it
	if bytes.HasPrefix(l.data, utf8BOM) {
		l.pos = len(utf8BOM)
	}
	return l
}

func (l *lexer) next() (token, error) {
	var comments []comment
	for {
		l.skipWhitespace()
		if l.pos >= len(l.data) {
			return l.finish(token{kind: tokenEOF, offset: l.pos}, comments), nil
		}
		if l.data[l.pos] != '/' {
			break
		}
		switch l.peekByte(1) {
		case '/':
			comments = append(comments, l.lineComment())
		case '*':
			c, err := l.blockComment()
			if err != nil {
				return token{}, err
			}
			comments = append(comments, c)
		default:
			return token{}, lexErrorf(l.info.SourcePos(l.pos), "invalid character '/'")
		}
	}

	start := l.pos
	c := l.data[start]
	var tok token
	switch {
	case isIdentStart(c):
		for l.pos < len(l.data) && isIdentPart(l.data[l.pos]) {
			l.pos++
		}
		tok = token{kind: tokenIdent, text: string(l.data[start:l.pos])}
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		var err error
		tok, err = l.number(start)
		if err != nil {
			return token{}, err
		}
	case c == '"' || c == '\'':
		var err error
		tok, err = l.stringLiteral(start)
		if err != nil {
			return token{}, err
		}
	case strings.IndexByte(symbols, c) >= 0:
		l.pos++
		tok = token{kind: tokenSymbol, text: string(c)}
	default:
		r, _ := utf8.DecodeRune(l.data[start:])
		return token{}, lexErrorf(l.info.SourcePos(start), "invalid character %q", r)
	}
	tok.offset = start
	return l.finish(tok, comments), nil
}

func (l *lexer) finish(tok token, comments []comment) token {
	tok.line = l.info.LineOf(tok.offset)
	tok.comments = comments
	tok.prevLine = l.prevLine
	l.prevLine = tok.line
	return tok
}

func (l *lexer) peekByte(n int) byte {
	if l.pos+n >= len(l.data) {
		return 0
	}
	return l.data[l.pos+n]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\n':
			l.pos++
			l.info.AddLine(l.pos)
		case ' ', '\t', '\r', '\f', '\v':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) lineComment() comment {
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '\n' {
		l.pos++
	}
	line := l.info.LineOf(start)
	return comment{text: string(l.data[start:l.pos]), startLine: line, endLine: line}
}

func (l *lexer) blockComment() (comment, error) {
	start := l.pos
	startLine := l.info.LineOf(start)
	l.pos += 2
	for {
		if l.pos >= len(l.data) {
			return comment{}, lexErrorf(l.info.SourcePos(start), "block comment never terminates, unexpected EOF")
		}
		c := l.data[l.pos]
		l.pos++
		if c == '\n' {
			l.info.AddLine(l.pos)
		} else if c == '*' && l.pos < len(l.data) && l.data[l.pos] == '/' {
			l.pos++
			return comment{
				text:      string(l.data[start:l.pos]),
				startLine: startLine,
				endLine:   l.info.LineOf(l.pos - 1),
			}, nil
		}
	}
}

func (l *lexer) number(start int) (token, error) {
	hex := l.data[start] == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X')
	allowExpSign := false
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '-' || c == '+' {
			if !allowExpSign {
				break
			}
			allowExpSign = false
			l.pos++
			continue
		}
		if c != '.' && !isIdentPart(c) {
			// no more chars in the number token
			break
		}
		// scientific notation char can be followed by an exponent sign
		allowExpSign = !hex && (c == 'e' || c == 'E')
		l.pos++
	}
	text := string(l.data[start:l.pos])
	pos := l.info.SourcePos(start)
	if strings.IndexByte(text, '_') >= 0 {
		return token{}, lexErrorf(pos, "invalid syntax in numeric value: %s", text)
	}
	if hex {
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return token{}, &LexError{posError{pos: pos, err: numError(err, "int", text)}}
		}
		return token{kind: tokenInt, text: text, intVal: v}, nil
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, &LexError{posError{pos: pos, err: numError(err, "float", text)}}
		}
		return token{kind: tokenFloat, text: text, floatVal: f}, nil
	}
	base, digits := 10, text
	if len(text) > 1 && text[0] == '0' {
		base, digits = 8, text[1:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return token{}, &LexError{posError{pos: pos, err: numError(err, "int", text)}}
	}
	return token{kind: tokenInt, text: text, intVal: v}, nil
}

func numError(err error, kind, s string) error {
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		return err
	}
	if errors.Is(ne.Err, strconv.ErrRange) {
		return fmt.Errorf("value out of range for %s: %s", kind, s)
	}
	// syntax error
	return fmt.Errorf("invalid syntax in %s value: %s", kind, s)
}

// stringLiteral scans a quoted string. Escapes are skipped over but not
// decoded; see unquote.
func (l *lexer) stringLiteral(start int) (token, error) {
	quote := l.data[start]
	l.pos++
	for {
		if l.pos >= len(l.data) {
			return token{}, lexErrorf(l.info.SourcePos(start), "unterminated string literal")
		}
		switch c := l.data[l.pos]; c {
		case quote:
			l.pos++
			return token{kind: tokenString, text: string(l.data[start:l.pos])}, nil
		case '\n':
			return token{}, lexErrorf(l.info.SourcePos(start), "encountered end-of-line before end of string literal")
		case '\\':
			if l.peekByte(1) == '\n' {
				return token{}, lexErrorf(l.info.SourcePos(start), "encountered end-of-line before end of string literal")
			}
			l.pos += 2
		default:
			l.pos++
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
