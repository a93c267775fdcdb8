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
	"math"
	"slices"
	"strings"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/reporter"
)

// Parse parses the given source into a file. The filename is recorded in
// the file and used in error positions; it may be empty.
//
// Parsing stops at the first error, which is sent to handler's reporter.
// If the reporter returns nil, Parse still fails, with
// reporter.ErrInvalidSource. A nil handler aborts with the error itself.
func Parse(filename string, source []byte, handler *reporter.Handler) (*ast.File, error) {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	info := ast.NewFileInfo(filename, source)
	p := &parser{
		info:    info,
		lex:     newLexer(info),
		handler: handler,
	}
	file, err := p.parseFile()
	if err != nil {
		if herr := handler.HandleError(err); herr != nil {
			return nil, herr
		}
		return nil, reporter.ErrInvalidSource
	}
	return file, nil
}

// scope identifies where a declaration appears: the file's package and the
// simple names of the enclosing messages. It is passed by value, so each
// recursive step gets its own copy.
type scope struct {
	pkg  string
	path []string
}

// qualify returns the fully-qualified name of a declaration named name in
// this scope.
func (s scope) qualify(name string) string {
	parts := make([]string, 0, len(s.path)+2)
	if s.pkg != "" {
		parts = append(parts, s.pkg)
	}
	parts = append(parts, s.path...)
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

// nested returns the scope for declarations inside a message named name.
func (s scope) nested(name string) scope {
	return scope{pkg: s.pkg, path: append(slices.Clip(s.path), name)}
}

// qualifyExtendee returns the fully-qualified name of the target of an
// extend declaration. Names with a dot are taken as already qualified;
// others are qualified with the package only, even when the declaration
// is nested in a message.
func (s scope) qualifyExtendee(name string) string {
	if strings.Contains(name, ".") {
		return strings.TrimPrefix(name, ".")
	}
	if s.pkg == "" {
		return name
	}
	return s.pkg + "." + name
}

type parser struct {
	info    *ast.FileInfo
	lex     *lexer
	handler *reporter.Handler

	tok    token
	peeked *token

	// extends collects every extend declaration in source order, including
	// those nested in messages.
	extends []*ast.ExtendDeclaration
}

func (p *parser) advance() error {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return nil
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *parser) pos(tok token) ast.SourcePos {
	return p.info.SourcePos(tok.offset)
}

// keyword returns the text of the current token if it is an identifier.
func (p *parser) keyword() string {
	if p.tok.kind != tokenIdent {
		return ""
	}
	return p.tok.text
}

func (p *parser) isSymbol(sym byte) bool {
	return p.tok.kind == tokenSymbol && p.tok.text[0] == sym
}

func (p *parser) expectSymbol(sym byte) error {
	if !p.isSymbol(sym) {
		return p.errExpected(fmt.Sprintf("%q", sym))
	}
	return p.advance()
}

func (p *parser) expectKeyword(kw string) error {
	if p.keyword() != kw {
		return p.errExpected(fmt.Sprintf("%q", kw))
	}
	return p.advance()
}

func (p *parser) expectIdent(what string) (token, error) {
	tok := p.tok
	if tok.kind != tokenIdent {
		return token{}, p.errExpected(what)
	}
	return tok, p.advance()
}

func (p *parser) errExpected(what string) error {
	return syntaxErrorf(p.pos(p.tok), "expected %s, found %s", what, describe(p.tok))
}

func describe(tok token) string {
	if tok.kind == tokenEOF {
		return "end of file"
	}
	if tok.kind == tokenString {
		return "string literal " + tok.text
	}
	return fmt.Sprintf("%q", tok.text)
}

// modelError attaches the position of tok to an error from building a node.
func (p *parser) modelError(tok token, err error) error {
	return reporter.Error(p.pos(tok), err)
}

// parseQualifiedName parses a dotted name such as "foo.Bar", optionally
// with a leading dot.
func (p *parser) parseQualifiedName(what string) (string, error) {
	var sb strings.Builder
	if p.isSymbol('.') {
		sb.WriteByte('.')
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	for {
		tok, err := p.expectIdent(what)
		if err != nil {
			return "", err
		}
		sb.WriteString(tok.text)
		if !p.isSymbol('.') {
			return sb.String(), nil
		}
		sb.WriteByte('.')
		if err := p.advance(); err != nil {
			return "", err
		}
	}
}

// parseStringLiteral parses one or more adjacent string literals and
// returns their decoded, concatenated value.
func (p *parser) parseStringLiteral() (string, error) {
	if p.tok.kind != tokenString {
		return "", p.errExpected("a string literal")
	}
	var sb strings.Builder
	for p.tok.kind == tokenString {
		s, err := unquote(p.tok.text)
		if err != nil {
			return "", &LexError{posError{pos: p.pos(p.tok), err: err}}
		}
		sb.WriteString(s)
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// parseInt parses an integer literal with an optional minus sign, such as
// a field tag or enum value number.
func (p *parser) parseInt(what string, allowNegative bool) (int, error) {
	negative := false
	if allowNegative && p.isSymbol('-') {
		negative = true
		if err := p.advance(); err != nil {
			return 0, err
		}
	}
	tok := p.tok
	if tok.kind != tokenInt {
		return 0, p.errExpected(what)
	}
	if tok.intVal > math.MaxInt32+1 || (!negative && tok.intVal > math.MaxInt32) {
		return 0, syntaxErrorf(p.pos(tok), "value out of range for %s: %s", what, tok.text)
	}
	v := int(tok.intVal)
	if negative {
		v = -v
	}
	return v, p.advance()
}

func (p *parser) parseFile() (*ast.File, error) {
	cfg := ast.FileConfig{Name: p.info.Name()}
	var sc scope
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokenEOF {
		if p.isSymbol(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		switch p.keyword() {
		case "syntax":
			syntax, err := p.parseSyntax()
			if err != nil {
				return nil, err
			}
			cfg.Syntax = syntax
		case "package":
			if cfg.Package != "" {
				return nil, syntaxErrorf(p.pos(p.tok), "multiple package declarations")
			}
			pkg, err := p.parsePackage()
			if err != nil {
				return nil, err
			}
			cfg.Package = pkg
			sc = scope{pkg: pkg}
		case "import":
			path, public, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			if public {
				cfg.PublicImports = append(cfg.PublicImports, path)
			} else {
				cfg.Imports = append(cfg.Imports, path)
			}
		case "option":
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			cfg.Options = append(cfg.Options, opt)
		case "message":
			msg, err := p.parseMessage(sc)
			if err != nil {
				return nil, err
			}
			cfg.Types = append(cfg.Types, msg)
		case "enum":
			enum, err := p.parseEnum(sc)
			if err != nil {
				return nil, err
			}
			cfg.Types = append(cfg.Types, enum)
		case "extend":
			ext, err := p.parseExtend(sc)
			if err != nil {
				return nil, err
			}
			p.extends = append(p.extends, ext)
		case "service":
			svc, err := p.parseService(sc)
			if err != nil {
				return nil, err
			}
			cfg.Services = append(cfg.Services, svc)
		default:
			return nil, p.errExpected("a top-level declaration")
		}
	}
	cfg.ExtendDeclarations = p.extends
	return ast.NewFile(cfg), nil
}

func (p *parser) parseSyntax() (string, error) {
	if err := p.advance(); err != nil {
		return "", err
	}
	if err := p.expectSymbol('='); err != nil {
		return "", err
	}
	valueTok := p.tok
	syntax, err := p.parseStringLiteral()
	if err != nil {
		return "", err
	}
	if syntax != "proto2" && syntax != "proto3" {
		p.handler.HandleWarningf(p.pos(valueTok), "unrecognized syntax %q", syntax)
	}
	return syntax, p.expectSymbol(';')
}

func (p *parser) parsePackage() (string, error) {
	if err := p.advance(); err != nil {
		return "", err
	}
	pkg, err := p.parseQualifiedName("a package name")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(pkg, "."), p.expectSymbol(';')
}

// parseImport parses an import statement. Weak imports are recorded as
// plain imports.
func (p *parser) parseImport() (path string, public bool, err error) {
	if err := p.advance(); err != nil {
		return "", false, err
	}
	switch p.keyword() {
	case "public":
		public = true
		fallthrough
	case "weak":
		if err := p.advance(); err != nil {
			return "", false, err
		}
	}
	path, err = p.parseStringLiteral()
	if err != nil {
		return "", false, err
	}
	return path, public, p.expectSymbol(';')
}

func (p *parser) parseOptionStatement() (*ast.Option, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	opt, err := p.parseOptionAssignment()
	if err != nil {
		return nil, err
	}
	return opt, p.expectSymbol(';')
}

func (p *parser) parseMessage(sc scope) (*ast.Message, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("a message name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('{'); err != nil {
		return nil, err
	}
	inner := sc.nested(nameTok.text)
	cfg := ast.MessageConfig{
		Name:               nameTok.text,
		FullyQualifiedName: sc.qualify(nameTok.text),
		Documentation:      doc,
	}
	for !p.isSymbol('}') {
		if p.isSymbol(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		switch p.keyword() {
		case "required", "optional", "repeated":
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			cfg.Fields = append(cfg.Fields, field)
		case "message":
			msg, err := p.parseMessage(inner)
			if err != nil {
				return nil, err
			}
			cfg.NestedTypes = append(cfg.NestedTypes, msg)
		case "enum":
			enum, err := p.parseEnum(inner)
			if err != nil {
				return nil, err
			}
			cfg.NestedTypes = append(cfg.NestedTypes, enum)
		case "extensions":
			exts, err := p.parseExtensions()
			if err != nil {
				return nil, err
			}
			cfg.Extensions = append(cfg.Extensions, exts...)
		case "extend":
			ext, err := p.parseExtend(inner)
			if err != nil {
				return nil, err
			}
			p.extends = append(p.extends, ext)
		case "option":
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			cfg.Options = append(cfg.Options, opt)
		default:
			return nil, p.errExpected("a field or declaration")
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	msg, err := ast.NewMessage(cfg)
	if err != nil {
		return nil, p.modelError(nameTok, err)
	}
	return msg, nil
}

func (p *parser) parseField() (*ast.Field, error) {
	doc := docComment(p.tok)
	label, _ := ast.LabelFromKeyword(p.tok.text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	typ, err := p.parseQualifiedName("a field type")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("a field name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('='); err != nil {
		return nil, err
	}
	tagTok := p.tok
	tag, err := p.parseInt("a field tag", false)
	if err != nil {
		return nil, err
	}
	var opts []*ast.Option
	if p.isSymbol('[') {
		if opts, err = p.parseOptionList(); err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(';'); err != nil {
		return nil, err
	}
	field, err := ast.NewField(ast.FieldConfig{
		Label:         label,
		Type:          typ,
		Name:          nameTok.text,
		Tag:           tag,
		Documentation: doc,
		Options:       opts,
	})
	if err != nil {
		return nil, p.modelError(tagTok, err)
	}
	return field, nil
}

// parseExtensions parses "extensions 1 to 10, 20, 100 to max;". The
// statement's documentation goes to its first range.
func (p *parser) parseExtensions() ([]*ast.Extensions, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	var exts []*ast.Extensions
	for {
		startTok := p.tok
		start, err := p.parseInt("an extension range start", false)
		if err != nil {
			return nil, err
		}
		end := start
		if p.keyword() == "to" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.keyword() == "max" {
				end = ast.MaxTag
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else if end, err = p.parseInt("an extension range end", false); err != nil {
				return nil, err
			}
		}
		ext, err := ast.NewExtensions(ast.ExtensionsConfig{Documentation: doc, Start: start, End: end})
		if err != nil {
			return nil, p.modelError(startTok, err)
		}
		exts = append(exts, ext)
		doc = ""
		if !p.isSymbol(',') {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return exts, p.expectSymbol(';')
}

func (p *parser) parseExtend(sc scope) (*ast.ExtendDeclaration, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok := p.tok
	name, err := p.parseQualifiedName("a message name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('{'); err != nil {
		return nil, err
	}
	cfg := ast.ExtendConfig{
		Name:               name,
		FullyQualifiedName: sc.qualifyExtendee(name),
		Documentation:      doc,
	}
	for !p.isSymbol('}') {
		switch p.keyword() {
		case "required", "optional", "repeated":
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			cfg.Fields = append(cfg.Fields, field)
		default:
			if !p.isSymbol(';') {
				return nil, p.errExpected("a field")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	ext, err := ast.NewExtendDeclaration(cfg)
	if err != nil {
		return nil, p.modelError(nameTok, err)
	}
	return ext, nil
}

func (p *parser) parseEnum(sc scope) (*ast.Enum, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("an enum name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('{'); err != nil {
		return nil, err
	}
	cfg := ast.EnumConfig{
		Name:               nameTok.text,
		FullyQualifiedName: sc.qualify(nameTok.text),
		Documentation:      doc,
	}
	for !p.isSymbol('}') {
		if p.isSymbol(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind != tokenIdent {
			return nil, p.errExpected("an enum value or option")
		}
		isOption := false
		if p.tok.text == "option" {
			// "option = 1;" declares a value named option
			next, err := p.peek()
			if err != nil {
				return nil, err
			}
			isOption = next.kind != tokenSymbol || next.text != "="
		}
		if isOption {
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			cfg.Options = append(cfg.Options, opt)
			continue
		}
		value, err := p.parseEnumValue()
		if err != nil {
			return nil, err
		}
		cfg.Values = append(cfg.Values, value)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	enum, err := ast.NewEnum(cfg)
	if err != nil {
		return nil, p.modelError(nameTok, err)
	}
	return enum, nil
}

func (p *parser) parseEnumValue() (*ast.EnumValue, error) {
	doc := docComment(p.tok)
	nameTok, err := p.expectIdent("an enum value name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('='); err != nil {
		return nil, err
	}
	tag, err := p.parseInt("an enum value number", true)
	if err != nil {
		return nil, err
	}
	var opts []*ast.Option
	if p.isSymbol('[') {
		if opts, err = p.parseOptionList(); err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(';'); err != nil {
		return nil, err
	}
	return ast.NewEnumValue(ast.EnumValueConfig{
		Name:          nameTok.text,
		Tag:           tag,
		Documentation: doc,
		Options:       opts,
	}), nil
}

func (p *parser) parseService(sc scope) (*ast.Service, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("a service name")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol('{'); err != nil {
		return nil, err
	}
	cfg := ast.ServiceConfig{
		Name:               nameTok.text,
		FullyQualifiedName: sc.qualify(nameTok.text),
		Documentation:      doc,
	}
	for !p.isSymbol('}') {
		if p.isSymbol(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		switch p.keyword() {
		case "option":
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			cfg.Options = append(cfg.Options, opt)
		case "rpc":
			method, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			cfg.Methods = append(cfg.Methods, method)
		default:
			return nil, p.errExpected("an rpc or option")
		}
	}
	return ast.NewService(cfg), p.advance()
}

func (p *parser) parseMethod() (*ast.Method, error) {
	doc := docComment(p.tok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("a method name")
	if err != nil {
		return nil, err
	}
	request, err := p.parseMethodType()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("returns"); err != nil {
		return nil, err
	}
	response, err := p.parseMethodType()
	if err != nil {
		return nil, err
	}
	cfg := ast.MethodConfig{
		Name:          nameTok.text,
		Documentation: doc,
		RequestType:   request,
		ResponseType:  response,
	}
	if !p.isSymbol('{') {
		return ast.NewMethod(cfg), p.expectSymbol(';')
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for !p.isSymbol('}') {
		if p.isSymbol(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.keyword() != "option" {
			return nil, p.errExpected("an option")
		}
		opt, err := p.parseOptionStatement()
		if err != nil {
			return nil, err
		}
		cfg.Options = append(cfg.Options, opt)
	}
	return ast.NewMethod(cfg), p.advance()
}

func (p *parser) parseMethodType() (string, error) {
	if err := p.expectSymbol('('); err != nil {
		return "", err
	}
	name, err := p.parseQualifiedName("a message type")
	if err != nil {
		return "", err
	}
	return name, p.expectSymbol(')')
}
