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

package printer_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/parser"
	"github.com/bufbuild/protoschema/printer"
)

func field(t *testing.T, name string, tag int, doc string, opts ...*ast.Option) *ast.Field {
	t.Helper()
	f, err := ast.NewField(ast.FieldConfig{
		Label:         ast.LabelRequired,
		Type:          "Type",
		Name:          name,
		Tag:           tag,
		Documentation: doc,
		Options:       opts,
	})
	require.NoError(t, err)
	return f
}

func message(t *testing.T, cfg ast.MessageConfig) *ast.Message {
	t.Helper()
	msg, err := ast.NewMessage(cfg)
	require.NoError(t, err)
	return msg
}

func TestPrintMessage(t *testing.T) {
	t.Parallel()
	kitKat := ast.NewOption("kit", ast.String("kat"))
	ext1, err := ast.NewExtensions(ast.ExtensionsConfig{Start: 500, End: 501})
	require.NoError(t, err)
	ext2, err := ast.NewExtensions(ast.ExtensionsConfig{Start: 503, End: 503})
	require.NoError(t, err)
	nested := message(t, ast.MessageConfig{Name: "Nested", Fields: []*ast.Field{field(t, "name", 1, "")}})
	otherField, err := ast.NewField(ast.FieldConfig{Label: ast.LabelRequired, Type: "OtherType", Name: "other_name", Tag: 2})
	require.NoError(t, err)

	testCases := []struct {
		name string
		cfg  ast.MessageConfig
		want string
	}{
		{
			name: "empty",
			cfg:  ast.MessageConfig{Name: "Message"},
			want: "message Message {}\n",
		},
		{
			name: "simple",
			cfg:  ast.MessageConfig{Name: "Message", Fields: []*ast.Field{field(t, "name", 1, "")}},
			want: "message Message {\n" +
				"  required Type name = 1;\n" +
				"}\n",
		},
		{
			name: "documentation",
			cfg: ast.MessageConfig{
				Name:          "Message",
				Documentation: "Hello",
				Fields:        []*ast.Field{field(t, "name", 1, "")},
			},
			want: "// Hello\n" +
				"message Message {\n" +
				"  required Type name = 1;\n" +
				"}\n",
		},
		{
			name: "options",
			cfg: ast.MessageConfig{
				Name:    "Message",
				Fields:  []*ast.Field{field(t, "name", 1, "")},
				Options: []*ast.Option{kitKat},
			},
			want: "message Message {\n" +
				"  option kit = \"kat\";\n" +
				"\n" +
				"  required Type name = 1;\n" +
				"}\n",
		},
		{
			name: "nested",
			cfg: ast.MessageConfig{
				Name:        "Message",
				Fields:      []*ast.Field{field(t, "name", 1, "")},
				NestedTypes: []ast.Type{nested},
			},
			want: "message Message {\n" +
				"  required Type name = 1;\n" +
				"\n" +
				"  message Nested {\n" +
				"    required Type name = 1;\n" +
				"  }\n" +
				"}\n",
		},
		{
			name: "extensions",
			cfg: ast.MessageConfig{
				Name:       "Message",
				Fields:     []*ast.Field{field(t, "name", 1, "")},
				Extensions: []*ast.Extensions{ext1},
			},
			want: "message Message {\n" +
				"  required Type name = 1;\n" +
				"\n" +
				"  extensions 500 to 501;\n" +
				"}\n",
		},
		{
			name: "everything",
			cfg: ast.MessageConfig{
				Name:        "Message",
				Fields:      []*ast.Field{field(t, "name", 1, ""), otherField},
				Extensions:  []*ast.Extensions{ext1, ext2},
				NestedTypes: []ast.Type{nested},
				Options:     []*ast.Option{kitKat},
			},
			want: "message Message {\n" +
				"  option kit = \"kat\";\n" +
				"\n" +
				"  required Type name = 1;\n" +
				"  required OtherType other_name = 2;\n" +
				"\n" +
				"  extensions 500 to 501;\n" +
				"  extensions 503;\n" +
				"\n" +
				"  message Nested {\n" +
				"    required Type name = 1;\n" +
				"  }\n" +
				"}\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, printer.Print(message(t, tc.cfg)))
		})
	}
}

func TestPrintField(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "required Type name = 1;\n", printer.Print(field(t, "name", 1, "")))
	assert.Equal(t, "// Hello\nrequired Type name = 1;\n", printer.Print(field(t, "name", 1, "Hello")))
	assert.Equal(t,
		"required Type name = 1 [\n  kit = \"kat\"\n];\n",
		printer.Print(field(t, "name", 1, "", ast.NewOption("kit", ast.String("kat")))),
	)
	assert.Equal(t,
		"required Type name = 1 [\n  default = 20,\n  (validation.range).max = 100\n];\n",
		printer.Print(field(t, "name", 1, "",
			ast.NewOption("default", ast.Int(20)),
			ast.NewCustomOption("validation.range", ast.NewOption("max", ast.Int(100))),
		)),
	)
}

func TestPrintEnum(t *testing.T) {
	t.Parallel()
	values := []*ast.EnumValue{
		ast.NewEnumValue(ast.EnumValueConfig{Name: "ONE", Tag: 1}),
		ast.NewEnumValue(ast.EnumValueConfig{Name: "TWO", Tag: 2}),
		ast.NewEnumValue(ast.EnumValueConfig{Name: "SIX", Tag: 6}),
	}
	newEnum := func(cfg ast.EnumConfig) *ast.Enum {
		enum, err := ast.NewEnum(cfg)
		require.NoError(t, err)
		return enum
	}
	assert.Equal(t, "enum Enum {}\n", printer.Print(newEnum(ast.EnumConfig{Name: "Enum"})))
	assert.Equal(t,
		"enum Enum {\n  ONE = 1;\n  TWO = 2;\n  SIX = 6;\n}\n",
		printer.Print(newEnum(ast.EnumConfig{Name: "Enum", Values: values})),
	)
	assert.Equal(t,
		"enum Enum {\n  option kit = \"kat\";\n\n  ONE = 1;\n  TWO = 2;\n  SIX = 6;\n}\n",
		printer.Print(newEnum(ast.EnumConfig{
			Name:    "Enum",
			Options: []*ast.Option{ast.NewOption("kit", ast.String("kat"))},
			Values:  values,
		})),
	)
	assert.Equal(t,
		"// Hello\nenum Enum {\n  ONE = 1;\n  TWO = 2;\n  SIX = 6;\n}\n",
		printer.Print(newEnum(ast.EnumConfig{Name: "Enum", Documentation: "Hello", Values: values})),
	)
	assert.Equal(t,
		"enum Enum1 {\n  option allow_alias = true;\n\n  VALUE1 = 1;\n  VALUE2 = 1;\n}\n",
		printer.Print(newEnum(ast.EnumConfig{
			Name:               "Enum1",
			FullyQualifiedName: "example.Enum",
			Options:            []*ast.Option{ast.NewOption("allow_alias", ast.Bool(true))},
			Values: []*ast.EnumValue{
				ast.NewEnumValue(ast.EnumValueConfig{Name: "VALUE1", Tag: 1}),
				ast.NewEnumValue(ast.EnumValueConfig{Name: "VALUE2", Tag: 1}),
			},
		})),
	)
}

func TestPrintEnumValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "NAME = 1;\n", printer.Print(ast.NewEnumValue(ast.EnumValueConfig{Name: "NAME", Tag: 1})))
	assert.Equal(t, "// Hello\nNAME = 1;\n", printer.Print(ast.NewEnumValue(ast.EnumValueConfig{
		Name:          "NAME",
		Tag:           1,
		Documentation: "Hello",
	})))
	assert.Equal(t, "NAME = 1 [\n  kit = \"kat\"\n];\n", printer.Print(ast.NewEnumValue(ast.EnumValueConfig{
		Name:    "NAME",
		Tag:     1,
		Options: []*ast.Option{ast.NewOption("kit", ast.String("kat"))},
	})))
}

func TestPrintExtend(t *testing.T) {
	t.Parallel()
	newExtend := func(cfg ast.ExtendConfig) *ast.ExtendDeclaration {
		ext, err := ast.NewExtendDeclaration(cfg)
		require.NoError(t, err)
		return ext
	}
	assert.Equal(t, "extend Name {}\n", printer.Print(newExtend(ast.ExtendConfig{Name: "Name", FullyQualifiedName: "Name"})))
	assert.Equal(t,
		"extend Name {\n  required Type name = 1;\n}\n",
		printer.Print(newExtend(ast.ExtendConfig{Name: "Name", Fields: []*ast.Field{field(t, "name", 1, "")}})),
	)
	assert.Equal(t,
		"// Hello\nextend Name {\n  required Type name = 1;\n}\n",
		printer.Print(newExtend(ast.ExtendConfig{
			Name:          "Name",
			Documentation: "Hello",
			Fields:        []*ast.Field{field(t, "name", 1, "")},
		})),
	)
}

func TestPrintService(t *testing.T) {
	t.Parallel()
	method := ast.NewMethod(ast.MethodConfig{Name: "Name", RequestType: "RequestType", ResponseType: "ResponseType"})
	foo := ast.NewOption("foo", ast.String("bar"))

	assert.Equal(t, "service Service {}\n", printer.Print(ast.NewService(ast.ServiceConfig{Name: "Service"})))
	assert.Equal(t,
		"service Service {\n  rpc Name (RequestType) returns (ResponseType);\n}\n",
		printer.Print(ast.NewService(ast.ServiceConfig{Name: "Service", Methods: []*ast.Method{method}})),
	)
	assert.Equal(t,
		"service Service {\n  option foo = \"bar\";\n\n  rpc Name (RequestType) returns (ResponseType);\n}\n",
		printer.Print(ast.NewService(ast.ServiceConfig{
			Name:    "Service",
			Options: []*ast.Option{foo},
			Methods: []*ast.Method{method},
		})),
	)
	assert.Equal(t,
		"// Hello\nservice Service {\n  rpc Name (RequestType) returns (ResponseType);\n}\n",
		printer.Print(ast.NewService(ast.ServiceConfig{
			Name:          "Service",
			Documentation: "Hello",
			Methods:       []*ast.Method{method},
		})),
	)
	assert.Equal(t,
		"service Service {\n"+
			"  rpc Name (RequestType) returns (ResponseType);\n"+
			"  rpc Name (RequestType) returns (ResponseType);\n"+
			"}\n",
		printer.Print(ast.NewService(ast.ServiceConfig{Name: "Service", Methods: []*ast.Method{method, method}})),
	)

	assert.Equal(t, "rpc Name (RequestType) returns (ResponseType);\n", printer.Print(method))
	assert.Equal(t,
		"// Hello\nrpc Name (RequestType) returns (ResponseType);\n",
		printer.Print(ast.NewMethod(ast.MethodConfig{
			Name:          "Name",
			Documentation: "Hello",
			RequestType:   "RequestType",
			ResponseType:  "ResponseType",
		})),
	)
	assert.Equal(t,
		"rpc Name (RequestType) returns (ResponseType) {\n  option foo = \"bar\";\n};\n",
		printer.Print(ast.NewMethod(ast.MethodConfig{
			Name:         "Name",
			RequestType:  "RequestType",
			ResponseType: "ResponseType",
			Options:      []*ast.Option{foo},
		})),
	)
}

func TestPrintFile(t *testing.T) {
	t.Parallel()
	msg := message(t, ast.MessageConfig{Name: "Message"})
	svc := ast.NewService(ast.ServiceConfig{Name: "Service"})
	testCases := []struct {
		name string
		cfg  ast.FileConfig
		want string
	}{
		{
			name: "empty",
			cfg:  ast.FileConfig{Name: "file.proto"},
			want: "// file.proto\n",
		},
		{
			name: "package",
			cfg:  ast.FileConfig{Name: "file.proto", Package: "example.simple"},
			want: "// file.proto\npackage example.simple;\n",
		},
		{
			name: "syntax",
			cfg:  ast.FileConfig{Name: "file.proto", Syntax: "proto2", Package: "example.simple"},
			want: "// file.proto\nsyntax = \"proto2\";\npackage example.simple;\n",
		},
		{
			name: "type",
			cfg:  ast.FileConfig{Name: "file.proto", Types: []ast.Type{msg}},
			want: "// file.proto\n\nmessage Message {}\n",
		},
		{
			name: "import",
			cfg:  ast.FileConfig{Name: "file.proto", Imports: []string{"example.other"}, Types: []ast.Type{msg}},
			want: "// file.proto\n\nimport \"example.other\";\n\nmessage Message {}\n",
		},
		{
			name: "public import",
			cfg:  ast.FileConfig{Name: "file.proto", PublicImports: []string{"example.other"}, Types: []ast.Type{msg}},
			want: "// file.proto\n\nimport public \"example.other\";\n\nmessage Message {}\n",
		},
		{
			name: "both imports",
			cfg: ast.FileConfig{
				Name:          "file.proto",
				Imports:       []string{"example.thing"},
				PublicImports: []string{"example.other"},
				Types:         []ast.Type{msg},
			},
			want: "// file.proto\n\nimport \"example.thing\";\nimport public \"example.other\";\n\nmessage Message {}\n",
		},
		{
			name: "services",
			cfg:  ast.FileConfig{Name: "file.proto", Types: []ast.Type{msg}, Services: []*ast.Service{svc}},
			want: "// file.proto\n\nmessage Message {}\n\nservice Service {}\n",
		},
		{
			name: "options",
			cfg: ast.FileConfig{
				Name:    "file.proto",
				Options: []*ast.Option{ast.NewOption("kit", ast.String("kat"))},
				Types:   []ast.Type{msg},
			},
			want: "// file.proto\n\noption kit = \"kat\";\n\nmessage Message {}\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, printer.Print(ast.NewFile(tc.cfg)))
		})
	}
}

func TestPrintOption(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		opt  *ast.Option
		want string
	}{
		{name: "string", opt: ast.NewOption("foo", ast.String("bar")), want: `foo = "bar"`},
		{name: "custom", opt: ast.NewCustomOption("foo", ast.String("bar")), want: `(foo) = "bar"`},
		{
			name: "nested",
			opt:  ast.NewCustomOption("foo.boo", ast.NewOption("bar", ast.String("baz"))),
			want: `(foo.boo).bar = "baz"`,
		},
		{
			name: "list of options",
			opt: ast.NewOption("foo", ast.NewList(
				ast.NewCustomOption("ping", ast.String("pong")),
				ast.NewOption("kit", ast.String("kat")),
			)),
			want: "foo = [\n  (ping) = \"pong\",\n  kit = \"kat\"\n]",
		},
		{name: "bool", opt: ast.NewOption("foo", ast.Bool(false)), want: "foo = false"},
		{name: "custom bool", opt: ast.NewCustomOption("foo", ast.Bool(false)), want: "(foo) = false"},
		{name: "negative int", opt: ast.NewOption("foo", ast.Int(-7)), want: "foo = -7"},
		{name: "whole float", opt: ast.NewOption("foo", ast.Float(1000)), want: "foo = 1000.0"},
		{name: "float", opt: ast.NewOption("foo", ast.Float(0.25)), want: "foo = 0.25"},
		{name: "large float", opt: ast.NewOption("foo", ast.Float(1e21)), want: "foo = 1e+21"},
		{name: "negative infinity", opt: ast.NewOption("foo", ast.Float(math.Inf(-1))), want: "foo = -inf"},
		{name: "enum", opt: ast.NewOption("foo", ast.EnumConstant("BAR")), want: "foo = BAR"},
		{
			name: "map",
			opt: ast.NewCustomOption("foo", ast.NewMap(
				ast.MapEntry{Key: "a", Value: ast.Int(1)},
				ast.MapEntry{Key: "[b.c]", Value: ast.NewList(ast.String("x"), ast.String("y"))},
				ast.MapEntry{Key: "d", Value: ast.NewMap(ast.MapEntry{Key: "e", Value: ast.Bool(true)})},
			)),
			want: "(foo) = {\n" +
				"  a: 1,\n" +
				"  [b.c]: [\n" +
				"    \"x\",\n" +
				"    \"y\"\n" +
				"  ],\n" +
				"  d: {\n" +
				"    e: true\n" +
				"  }\n" +
				"}",
		},
		{name: "empty aggregates", opt: ast.NewOption("foo", ast.NewList(ast.NewMap())), want: "foo = [\n  {}\n]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, printer.Print(tc.opt))
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `h\"i`, printer.Escape("h\"i"))
	assert.Equal(t, `h\ti`, printer.Escape("h\ti"))
	assert.Equal(t, `h\ri`, printer.Escape("h\ri"))
	assert.Equal(t, `h\\i`, printer.Escape("h\\i"))
	assert.Equal(t, `h\ni`, printer.Escape("h\ni"))
}

func TestPrintDocumentation(t *testing.T) {
	t.Parallel()
	msg := message(t, ast.MessageConfig{
		Name:          "M",
		Documentation: "First\n\n  indented",
		Fields:        []*ast.Field{field(t, "name", 1, "Two\nlines")},
	})
	want := "// First\n" +
		"//\n" +
		"//   indented\n" +
		"message M {\n" +
		"  // Two\n" +
		"  // lines\n" +
		"  required Type name = 1;\n" +
		"}\n"
	assert.Equal(t, want, printer.Print(msg))
}

func TestFprint(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, printer.Fprint(&buf, ast.String("a\"b")))
	assert.Equal(t, `"a\"b"`, buf.String())

	err := printer.Fprint(&buf, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported node type int")
	assert.Panics(t, func() { printer.Print("not a node") })
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	source := `syntax = "proto2";
package example.roundtrip;

import "other.proto";
import public "public.proto";

option java_package = "com.example";
option (file_opt).nested = { a: 1 b: [ "x", "y" ] };

/**
 * A message with everything in it.
 */
message Everything {
  option (message_opt) = true;

  // The identifier.
  required int64 id = 1;
  optional string name = 2 [default = "tab\there", deprecated = true];
  repeated .example.roundtrip.Everything.Kind kinds = 3 [packed = true, (scale) = -1.5];

  extensions 100 to 199, 1000 to max;

  message Inner {
    optional bytes payload = 1;
    extend Everything {
      optional Inner inner = 100;
    }
  }

  enum Kind {
    option allow_alias = true;
    KIND_UNKNOWN = 0;
    KIND_ONE = 1 [(label) = "one"];
    KIND_FIRST = 1;
    KIND_NEGATIVE = -2;
  }
}

extend Everything {
  optional int32 extra = 1000;
}

// The service.
service EverythingService {
  option (svc_opt) = 0x10;

  rpc Get (Everything) returns (Everything.Inner);
  rpc Put (Everything) returns (Everything) {
    option (idempotency) = IDEMPOTENT;
    option deadline = 2.5;
  }
}
`
	first, err := parser.Parse("everything.proto", []byte(source), nil)
	require.NoError(t, err)
	printed := printer.Print(first)
	second, err := parser.Parse("everything.proto", []byte(printed), nil)
	require.NoError(t, err, printed)
	assert.True(t, first.Equal(second), "first:\n%s\nsecond:\n%s", printed, printer.Print(second))
	assert.Equal(t, printed, printer.Print(second))
}
