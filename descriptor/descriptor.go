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

// Package descriptor converts parsed files into descriptor protos, the
// form consumed by protobuf code generators and registries.
//
// Conversion does not resolve anything. Message and enum references keep
// the names as written (with no type set), extendees likewise, and every
// option is carried as an uninterpreted option, except for a field's
// default and json_name options which have dedicated descriptor fields.
package descriptor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	descriptorv1 "buf.build/gen/go/bufbuild/protodescriptor/protocolbuffers/go/buf/descriptor/v1"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/printer"
	"github.com/bufbuild/protoschema/walk"
)

var fieldTypes = map[string]descriptorpb.FieldDescriptorProto_Type{
	"double":   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"float":    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	"int32":    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"int64":    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"uint32":   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	"uint64":   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	"sint32":   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	"sint64":   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
	"fixed32":  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	"fixed64":  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	"sfixed32": descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	"sfixed64": descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	"bool":     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"string":   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"bytes":    descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

var fieldLabels = map[ast.Label]descriptorpb.FieldDescriptorProto_Label{
	ast.LabelOptional: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
	ast.LabelRequired: descriptorpb.FieldDescriptorProto_LABEL_REQUIRED,
	ast.LabelRepeated: descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
}

// ToFileDescriptorProto converts file into a descriptor proto. Each
// documented declaration gets a source location carrying its leading
// comments; since the tree records no positions, their spans are zero.
// A file without a syntax statement is marked as such in the source code
// info's buf extension, so that consumers can tell it from an explicit
// proto2 file.
//
// It fails for an option whose value cannot be expressed as an
// uninterpreted option, such as a list outside an aggregate.
func ToFileDescriptorProto(file *ast.File) (*descriptorpb.FileDescriptorProto, error) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(file.Name()),
		Dependency: append(file.Imports(), file.PublicImports()...),
	}
	if pkg := file.Package(); pkg != "" {
		fd.Package = proto.String(pkg)
	}
	if syntax := file.Syntax(); syntax != "" {
		fd.Syntax = proto.String(syntax)
	}
	for i := range file.PublicImports() {
		fd.PublicDependency = append(fd.PublicDependency, int32(len(file.Imports())+i))
	}
	if opts := file.Options(); len(opts) > 0 {
		uninterpreted, err := uninterpretedOptions(opts)
		if err != nil {
			return nil, err
		}
		fd.Options = &descriptorpb.FileOptions{UninterpretedOption: uninterpreted}
	}
	for _, typ := range file.Types() {
		switch typ := typ.(type) {
		case *ast.Message:
			msg, err := messageProto(typ)
			if err != nil {
				return nil, err
			}
			fd.MessageType = append(fd.MessageType, msg)
		case *ast.Enum:
			enum, err := enumProto(typ)
			if err != nil {
				return nil, err
			}
			fd.EnumType = append(fd.EnumType, enum)
		}
	}
	for _, ext := range file.ExtendDeclarations() {
		for _, fld := range ext.Fields() {
			fldProto, err := fieldProto(fld)
			if err != nil {
				return nil, err
			}
			fldProto.Extendee = proto.String(ext.Name())
			fd.Extension = append(fd.Extension, fldProto)
		}
	}
	for _, svc := range file.Services() {
		svcProto, err := serviceProto(svc)
		if err != nil {
			return nil, err
		}
		fd.Service = append(fd.Service, svcProto)
	}
	info, err := sourceCodeInfo(file)
	if err != nil {
		return nil, err
	}
	fd.SourceCodeInfo = info
	return fd, nil
}

func messageProto(msg *ast.Message) (*descriptorpb.DescriptorProto, error) {
	md := &descriptorpb.DescriptorProto{Name: proto.String(msg.Name())}
	if opts := msg.Options(); len(opts) > 0 {
		uninterpreted, err := uninterpretedOptions(opts)
		if err != nil {
			return nil, err
		}
		md.Options = &descriptorpb.MessageOptions{UninterpretedOption: uninterpreted}
	}
	for _, fld := range msg.Fields() {
		fldProto, err := fieldProto(fld)
		if err != nil {
			return nil, err
		}
		md.Field = append(md.Field, fldProto)
	}
	for _, typ := range msg.NestedTypes() {
		switch typ := typ.(type) {
		case *ast.Message:
			nested, err := messageProto(typ)
			if err != nil {
				return nil, err
			}
			md.NestedType = append(md.NestedType, nested)
		case *ast.Enum:
			enum, err := enumProto(typ)
			if err != nil {
				return nil, err
			}
			md.EnumType = append(md.EnumType, enum)
		}
	}
	for _, ext := range msg.Extensions() {
		md.ExtensionRange = append(md.ExtensionRange, &descriptorpb.DescriptorProto_ExtensionRange{
			Start: proto.Int32(int32(ext.Start())),
			// descriptor ranges are exclusive of the end
			End: proto.Int32(int32(ext.End()) + 1),
		})
	}
	return md, nil
}

func fieldProto(fld *ast.Field) (*descriptorpb.FieldDescriptorProto, error) {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(fld.Name()),
		Number: proto.Int32(int32(fld.Tag())),
		Label:  fieldLabels[fld.Label()].Enum(),
	}
	if typ, ok := fieldTypes[fld.Type()]; ok {
		fd.Type = typ.Enum()
	} else {
		fd.TypeName = proto.String(fld.Type())
	}
	var rest []*ast.Option
	for _, opt := range fld.Options() {
		switch {
		case !opt.IsCustom() && opt.Name() == "default" && isScalar(opt.Value()):
			fd.DefaultValue = proto.String(ast.ValueText(opt.Value()))
		case !opt.IsCustom() && opt.Name() == "json_name" && isString(opt.Value()):
			fd.JsonName = proto.String(ast.ValueText(opt.Value()))
		default:
			rest = append(rest, opt)
		}
	}
	if len(rest) > 0 {
		uninterpreted, err := uninterpretedOptions(rest)
		if err != nil {
			return nil, err
		}
		fd.Options = &descriptorpb.FieldOptions{UninterpretedOption: uninterpreted}
	}
	return fd, nil
}

func isScalar(v ast.Value) bool {
	switch v.(type) {
	case ast.String, ast.Bool, ast.Int, ast.Float, ast.EnumConstant:
		return true
	default:
		return false
	}
}

func isString(v ast.Value) bool {
	_, ok := v.(ast.String)
	return ok
}

func enumProto(enum *ast.Enum) (*descriptorpb.EnumDescriptorProto, error) {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(enum.Name())}
	if opts := enum.Options(); len(opts) > 0 {
		uninterpreted, err := uninterpretedOptions(opts)
		if err != nil {
			return nil, err
		}
		ed.Options = &descriptorpb.EnumOptions{UninterpretedOption: uninterpreted}
	}
	for _, val := range enum.Values() {
		vd := &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(val.Name()),
			Number: proto.Int32(int32(val.Tag())),
		}
		if opts := val.Options(); len(opts) > 0 {
			uninterpreted, err := uninterpretedOptions(opts)
			if err != nil {
				return nil, err
			}
			vd.Options = &descriptorpb.EnumValueOptions{UninterpretedOption: uninterpreted}
		}
		ed.Value = append(ed.Value, vd)
	}
	return ed, nil
}

func serviceProto(svc *ast.Service) (*descriptorpb.ServiceDescriptorProto, error) {
	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(svc.Name())}
	if opts := svc.Options(); len(opts) > 0 {
		uninterpreted, err := uninterpretedOptions(opts)
		if err != nil {
			return nil, err
		}
		sd.Options = &descriptorpb.ServiceOptions{UninterpretedOption: uninterpreted}
	}
	for _, mtd := range svc.Methods() {
		md := &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(mtd.Name()),
			InputType:  proto.String(mtd.RequestType()),
			OutputType: proto.String(mtd.ResponseType()),
		}
		if opts := mtd.Options(); len(opts) > 0 {
			uninterpreted, err := uninterpretedOptions(opts)
			if err != nil {
				return nil, err
			}
			md.Options = &descriptorpb.MethodOptions{UninterpretedOption: uninterpreted}
		}
		sd.Method = append(sd.Method, md)
	}
	return sd, nil
}

func uninterpretedOptions(opts []*ast.Option) ([]*descriptorpb.UninterpretedOption, error) {
	result := make([]*descriptorpb.UninterpretedOption, len(opts))
	for i, opt := range opts {
		uo, err := uninterpretedOption(opt)
		if err != nil {
			return nil, err
		}
		result[i] = uo
	}
	return result, nil
}

// uninterpretedOption converts opt, following nested option values to
// build up the name.
func uninterpretedOption(opt *ast.Option) (*descriptorpb.UninterpretedOption, error) {
	uo := &descriptorpb.UninterpretedOption{}
	var name []string
	for {
		if opt.IsCustom() {
			uo.Name = append(uo.Name, &descriptorpb.UninterpretedOption_NamePart{
				NamePart:    proto.String(opt.Name()),
				IsExtension: proto.Bool(true),
			})
			name = append(name, "("+opt.Name()+")")
		} else {
			for _, part := range strings.Split(opt.Name(), ".") {
				uo.Name = append(uo.Name, &descriptorpb.UninterpretedOption_NamePart{
					NamePart:    proto.String(part),
					IsExtension: proto.Bool(false),
				})
			}
			name = append(name, opt.Name())
		}
		nested, ok := opt.Value().(*ast.Option)
		if !ok {
			break
		}
		opt = nested
	}
	switch value := opt.Value().(type) {
	case ast.String:
		uo.StringValue = []byte(value)
	case ast.Bool, ast.EnumConstant:
		uo.IdentifierValue = proto.String(ast.ValueText(value))
	case ast.Int:
		if value < 0 {
			uo.NegativeIntValue = proto.Int64(int64(value))
		} else {
			uo.PositiveIntValue = proto.Uint64(uint64(value))
		}
	case ast.Float:
		uo.DoubleValue = proto.Float64(float64(value))
	case *ast.Map:
		text, err := aggregateText(value)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", strings.Join(name, "."), err)
		}
		uo.AggregateValue = proto.String(text)
	default:
		return nil, fmt.Errorf("option %s: %T value cannot be expressed as an uninterpreted option", strings.Join(name, "."), value)
	}
	return uo, nil
}

// aggregateText renders the contents of m, without the enclosing braces,
// in the protobuf text format.
func aggregateText(m *ast.Map) (string, error) {
	var sb strings.Builder
	if err := writeAggregate(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeAggregate(sb *strings.Builder, m *ast.Map) error {
	for i, entry := range m.Entries() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(entry.Key)
		if _, isMap := entry.Value.(*ast.Map); !isMap {
			sb.WriteByte(':')
		}
		sb.WriteByte(' ')
		if err := writeTextValue(sb, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeTextValue(sb *strings.Builder, v ast.Value) error {
	switch v := v.(type) {
	case ast.String:
		sb.WriteString(`"` + printer.Escape(string(v)) + `"`)
	case ast.Bool, ast.Int, ast.EnumConstant:
		sb.WriteString(ast.ValueText(v))
	case ast.Float:
		f := float64(v)
		switch {
		case math.IsInf(f, 1):
			sb.WriteString("inf")
		case math.IsInf(f, -1):
			sb.WriteString("-inf")
		case math.IsNaN(f):
			sb.WriteString("nan")
		default:
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case ast.List:
		sb.WriteByte('[')
		for i, elem := range v.Values() {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeTextValue(sb, elem); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *ast.Map:
		sb.WriteString("{ ")
		if err := writeAggregate(sb, v); err != nil {
			return err
		}
		sb.WriteString(" }")
	default:
		return fmt.Errorf("%T value cannot appear in an aggregate", v)
	}
	return nil
}

// sourceCodeInfo records the documentation of each declaration under the
// source path of the element it was converted into.
func sourceCodeInfo(file *ast.File) (*descriptorpb.SourceCodeInfo, error) {
	var info descriptorpb.SourceCodeInfo
	err := walk.DeclarationsWithPath(file, func(_ protoreflect.FullName, path protoreflect.SourcePath, d walk.Declaration) error {
		doc := d.Documentation()
		if doc == "" {
			return nil
		}
		if _, isExtend := d.(*ast.ExtendDeclaration); isExtend {
			// every extend declaration maps to the same path
			return nil
		}
		info.Location = append(info.Location, &descriptorpb.SourceCodeInfo_Location{
			Path:            append([]int32(nil), path...),
			Span:            []int32{0, 0, 0},
			LeadingComments: proto.String(leadingComments(doc)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if file.Syntax() == "" {
		proto.SetExtension(&info, descriptorv1.E_BufSourceCodeInfoExtension, &descriptorv1.SourceCodeInfoExtension{
			IsSyntaxUnspecified: true,
		})
	} else if len(info.Location) == 0 {
		return nil, nil
	}
	return &info, nil
}

// leadingComments formats doc the way protoc records line comments: each
// line keeps the space that followed the comment marker and ends with a
// newline.
func leadingComments(doc string) string {
	var sb strings.Builder
	for _, line := range strings.Split(doc, "\n") {
		if line != "" {
			sb.WriteByte(' ')
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
