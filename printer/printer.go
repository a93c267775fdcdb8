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

// Package printer renders AST nodes back to schema source text.
//
// Output is canonical: declarations are laid out in a fixed order with
// two-space indentation, documentation is written as line comments, and
// the original whitespace and comment placement are not preserved. Parsing
// printed output yields a tree equal to the one printed, with the
// exception of a few values that have no source form (see Print).
package printer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bufbuild/protoschema/ast"
)

const indent = "  "

// Print renders node as source text. The node may be any of *ast.File,
// *ast.Message, *ast.Enum, *ast.EnumValue, *ast.Field, *ast.Extensions,
// *ast.ExtendDeclaration, *ast.Service, *ast.Method, *ast.Option or an
// option value. Print panics for any other type.
//
// Infinities and NaN print as "inf", "-inf" and "nan". A builtin option
// nested in another builtin option prints as a single dotted name, which
// parses back as one option.
func Print(node any) string {
	s, err := render(node)
	if err != nil {
		panic(err)
	}
	return s
}

// Fprint writes the source text for node to w. Unlike Print, it returns an
// error for an unsupported node type.
func Fprint(w io.Writer, node any) error {
	s, err := render(node)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func render(node any) (string, error) {
	var p printer
	switch node := node.(type) {
	case *ast.File:
		p.printFile(node)
	case *ast.Message:
		p.printMessage(node)
	case *ast.Enum:
		p.printEnum(node)
	case *ast.EnumValue:
		p.printEnumValue(node)
	case *ast.Field:
		p.printField(node)
	case *ast.Extensions:
		p.printExtensions(node)
	case *ast.ExtendDeclaration:
		p.printExtend(node)
	case *ast.Service:
		p.printService(node)
	case *ast.Method:
		p.printMethod(node)
	case *ast.Option:
		p.printOption(node)
	case ast.Value:
		p.printValue(node)
	default:
		return "", fmt.Errorf("printer: unsupported node type %T", node)
	}
	return p.String(), nil
}

type printer struct {
	bytes.Buffer
}

// indented appends text with every non-empty line prefixed by one level
// of indentation.
func (p *printer) indented(text string) {
	for line := range strings.Lines(text) {
		if line != "\n" {
			p.WriteString(indent)
		}
		p.WriteString(line)
	}
}

// section writes a blank line followed by the indented rendering of each
// node. Nothing is written when nodes is empty.
func section[T any](p *printer, nodes []T, printNode func(*printer, T)) {
	if len(nodes) == 0 {
		return
	}
	p.WriteByte('\n')
	for _, node := range nodes {
		var sub printer
		printNode(&sub, node)
		p.indented(sub.String())
	}
}

func (p *printer) printDocumentation(doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			p.WriteString("//\n")
			continue
		}
		p.WriteString("// ")
		p.WriteString(line)
		p.WriteByte('\n')
	}
}

func (p *printer) printFile(file *ast.File) {
	if name := file.Name(); name != "" {
		fmt.Fprintf(p, "// %s\n", name)
	}
	if syntax := file.Syntax(); syntax != "" {
		fmt.Fprintf(p, "syntax = %s;\n", quote(syntax))
	}
	if pkg := file.Package(); pkg != "" {
		fmt.Fprintf(p, "package %s;\n", pkg)
	}
	if imports, public := file.Imports(), file.PublicImports(); len(imports) > 0 || len(public) > 0 {
		p.WriteByte('\n')
		for _, path := range imports {
			fmt.Fprintf(p, "import %s;\n", quote(path))
		}
		for _, path := range public {
			fmt.Fprintf(p, "import public %s;\n", quote(path))
		}
	}
	topLevel(p, file.Options(), (*printer).printOptionDeclaration)
	topLevel(p, file.Types(), (*printer).printType)
	topLevel(p, file.ExtendDeclarations(), (*printer).printExtend)
	topLevel(p, file.Services(), (*printer).printService)
}

// topLevel is like section but without indentation.
func topLevel[T any](p *printer, nodes []T, printNode func(*printer, T)) {
	if len(nodes) == 0 {
		return
	}
	p.WriteByte('\n')
	for _, node := range nodes {
		printNode(p, node)
	}
}

func (p *printer) printType(typ ast.Type) {
	switch typ := typ.(type) {
	case *ast.Message:
		p.printMessage(typ)
	case *ast.Enum:
		p.printEnum(typ)
	}
}

// openBlock writes "keyword name {" and reports whether the block has a
// body. An empty block is closed on the same line.
func (p *printer) openBlock(keyword, name string, empty bool) bool {
	fmt.Fprintf(p, "%s %s {", keyword, name)
	if empty {
		p.WriteString("}\n")
		return false
	}
	return true
}

func (p *printer) printMessage(msg *ast.Message) {
	p.printDocumentation(msg.Documentation())
	opts, fields, exts, nested := msg.Options(), msg.Fields(), msg.Extensions(), msg.NestedTypes()
	if !p.openBlock("message", msg.Name(), len(opts)+len(fields)+len(exts)+len(nested) == 0) {
		return
	}
	section(p, opts, (*printer).printOptionDeclaration)
	section(p, fields, (*printer).printField)
	section(p, exts, (*printer).printExtensions)
	section(p, nested, (*printer).printType)
	p.WriteString("}\n")
}

func (p *printer) printEnum(enum *ast.Enum) {
	p.printDocumentation(enum.Documentation())
	opts, values := enum.Options(), enum.Values()
	if !p.openBlock("enum", enum.Name(), len(opts)+len(values) == 0) {
		return
	}
	section(p, opts, (*printer).printOptionDeclaration)
	section(p, values, (*printer).printEnumValue)
	p.WriteString("}\n")
}

func (p *printer) printEnumValue(value *ast.EnumValue) {
	p.printDocumentation(value.Documentation())
	fmt.Fprintf(p, "%s = %d", value.Name(), value.Tag())
	p.printOptionList(value.Options())
	p.WriteString(";\n")
}

func (p *printer) printField(field *ast.Field) {
	p.printDocumentation(field.Documentation())
	fmt.Fprintf(p, "%s %s %s = %d", field.Label(), field.Type(), field.Name(), field.Tag())
	p.printOptionList(field.Options())
	p.WriteString(";\n")
}

func (p *printer) printExtensions(ext *ast.Extensions) {
	p.printDocumentation(ext.Documentation())
	switch {
	case ext.Start() == ext.End():
		fmt.Fprintf(p, "extensions %d;\n", ext.Start())
	case ext.End() == ast.MaxTag:
		fmt.Fprintf(p, "extensions %d to max;\n", ext.Start())
	default:
		fmt.Fprintf(p, "extensions %d to %d;\n", ext.Start(), ext.End())
	}
}

func (p *printer) printExtend(ext *ast.ExtendDeclaration) {
	p.printDocumentation(ext.Documentation())
	fields := ext.Fields()
	if !p.openBlock("extend", ext.Name(), len(fields) == 0) {
		return
	}
	p.WriteByte('\n')
	for _, field := range fields {
		var sub printer
		sub.printField(field)
		p.indented(sub.String())
	}
	p.WriteString("}\n")
}

func (p *printer) printService(svc *ast.Service) {
	p.printDocumentation(svc.Documentation())
	opts, methods := svc.Options(), svc.Methods()
	if !p.openBlock("service", svc.Name(), len(opts)+len(methods) == 0) {
		return
	}
	section(p, opts, (*printer).printOptionDeclaration)
	section(p, methods, (*printer).printMethod)
	p.WriteString("}\n")
}

func (p *printer) printMethod(method *ast.Method) {
	p.printDocumentation(method.Documentation())
	fmt.Fprintf(p, "rpc %s (%s) returns (%s)", method.Name(), method.RequestType(), method.ResponseType())
	opts := method.Options()
	if len(opts) == 0 {
		p.WriteString(";\n")
		return
	}
	p.WriteString(" {\n")
	for _, opt := range opts {
		var sub printer
		sub.printOptionDeclaration(opt)
		p.indented(sub.String())
	}
	p.WriteString("};\n")
}

// printOptionDeclaration writes an option statement.
func (p *printer) printOptionDeclaration(opt *ast.Option) {
	p.WriteString("option ")
	p.printOption(opt)
	p.WriteString(";\n")
}

// printOptionList writes the bracketed options that follow a field or
// enum value.
func (p *printer) printOptionList(opts []*ast.Option) {
	if len(opts) == 0 {
		return
	}
	p.WriteString(" [\n")
	for i, opt := range opts {
		var sub printer
		sub.printOption(opt)
		if i < len(opts)-1 {
			sub.WriteByte(',')
		}
		sub.WriteByte('\n')
		p.indented(sub.String())
	}
	p.WriteByte(']')
}

// printOption writes "name = value". A nested option value continues the
// name, as in "(a.b).c = 1".
func (p *printer) printOption(opt *ast.Option) {
	for {
		if opt.IsCustom() {
			fmt.Fprintf(p, "(%s)", opt.Name())
		} else {
			p.WriteString(opt.Name())
		}
		nested, ok := opt.Value().(*ast.Option)
		if !ok {
			break
		}
		p.WriteByte('.')
		opt = nested
	}
	p.WriteString(" = ")
	p.printValue(opt.Value())
}

func (p *printer) printValue(value ast.Value) {
	switch value := value.(type) {
	case ast.String:
		p.WriteString(quote(string(value)))
	case ast.Bool, ast.Int, ast.EnumConstant:
		p.WriteString(ast.ValueText(value))
	case ast.Float:
		p.WriteString(formatFloat(float64(value)))
	case ast.List:
		p.printList(value)
	case *ast.Map:
		p.printMap(value)
	case *ast.Option:
		p.printOption(value)
	}
}

func (p *printer) printList(list ast.List) {
	values := list.Values()
	if len(values) == 0 {
		p.WriteString("[]")
		return
	}
	p.WriteString("[\n")
	for i, value := range values {
		var sub printer
		sub.printValue(value)
		if i < len(values)-1 {
			sub.WriteByte(',')
		}
		sub.WriteByte('\n')
		p.indented(sub.String())
	}
	p.WriteByte(']')
}

func (p *printer) printMap(m *ast.Map) {
	entries := m.Entries()
	if len(entries) == 0 {
		p.WriteString("{}")
		return
	}
	p.WriteString("{\n")
	for i, entry := range entries {
		var sub printer
		sub.WriteString(entry.Key)
		sub.WriteString(": ")
		sub.printValue(entry.Value)
		if i < len(entries)-1 {
			sub.WriteByte(',')
		}
		sub.WriteByte('\n')
		p.indented(sub.String())
	}
	p.WriteByte('}')
}

// formatFloat renders f so that it lexes back as a float rather than an
// integer.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote returns s as a double-quoted string literal.
func quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Escape escapes backslashes, double quotes, tabs, carriage returns and
// newlines in s.
func Escape(s string) string {
	var sb strings.Builder
	for i := range len(s) {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
