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

package walk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoschema/ast"
	"github.com/bufbuild/protoschema/parser"
	"github.com/bufbuild/protoschema/walk"
)

const source = `package foo.bar;
message Outer {
  optional int32 a = 1;
  extensions 100 to max;
  enum Kind { KIND_A = 0; }
  message Inner {
    required string b = 1;
  }
}
enum Top { TOP_A = 1; }
extend Outer {
  optional int32 ext = 100;
}
service Svc {
  rpc Do (Outer) returns (Outer);
}
`

func parse(t *testing.T) *ast.File {
	t.Helper()
	file, err := parser.Parse("test.proto", []byte(source), nil)
	require.NoError(t, err)
	return file
}

func describe(d walk.Declaration) string {
	switch d := d.(type) {
	case *ast.Message:
		return "message " + d.Name()
	case *ast.Enum:
		return "enum " + d.Name()
	case *ast.EnumValue:
		return "value " + d.Name()
	case *ast.Field:
		return "field " + d.Name()
	case *ast.Extensions:
		return fmt.Sprintf("extensions %d", d.Start())
	case *ast.ExtendDeclaration:
		return "extend " + d.Name()
	case *ast.Service:
		return "service " + d.Name()
	case *ast.Method:
		return "rpc " + d.Name()
	default:
		return fmt.Sprintf("%T", d)
	}
}

func TestDeclarationsWithPath(t *testing.T) {
	t.Parallel()
	type visit struct {
		name string
		path string
		decl string
	}
	var visits []visit
	err := walk.DeclarationsWithPath(parse(t), func(name protoreflect.FullName, path protoreflect.SourcePath, d walk.Declaration) error {
		visits = append(visits, visit{name: string(name), path: fmt.Sprint([]int32(path)), decl: describe(d)})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []visit{
		{"foo.bar.Outer", "[4 0]", "message Outer"},
		{"foo.bar.Outer.a", "[4 0 2 0]", "field a"},
		{"foo.bar.Outer.Kind", "[4 0 4 0]", "enum Kind"},
		{"foo.bar.Outer.KIND_A", "[4 0 4 0 2 0]", "value KIND_A"},
		{"foo.bar.Outer.Inner", "[4 0 3 0]", "message Inner"},
		{"foo.bar.Outer.Inner.b", "[4 0 3 0 2 0]", "field b"},
		{"foo.bar.Outer", "[4 0 5 0]", "extensions 100"},
		{"foo.bar.Top", "[5 0]", "enum Top"},
		{"foo.bar.TOP_A", "[5 0 2 0]", "value TOP_A"},
		{"foo.bar.Outer", "[7]", "extend Outer"},
		{"foo.bar.ext", "[7 0]", "field ext"},
		{"foo.bar.Svc", "[6 0]", "service Svc"},
		{"foo.bar.Svc.Do", "[6 0 2 0]", "rpc Do"},
	}, visits)
}

func TestDeclarationsEnterAndExit(t *testing.T) {
	t.Parallel()
	var events []string
	err := walk.DeclarationsEnterAndExit(parse(t),
		func(d walk.Declaration) error {
			events = append(events, "enter "+describe(d))
			return nil
		},
		func(d walk.Declaration) error {
			events = append(events, "exit "+describe(d))
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"enter message Outer",
		"enter field a",
		"exit field a",
		"enter enum Kind",
		"enter value KIND_A",
		"exit value KIND_A",
		"exit enum Kind",
		"enter message Inner",
		"enter field b",
		"exit field b",
		"exit message Inner",
		"enter extensions 100",
		"exit extensions 100",
		"exit message Outer",
		"enter enum Top",
		"enter value TOP_A",
		"exit value TOP_A",
		"exit enum Top",
		"enter extend Outer",
		"enter field ext",
		"exit field ext",
		"exit extend Outer",
		"enter service Svc",
		"enter rpc Do",
		"exit rpc Do",
		"exit service Svc",
	}, events)
}

func TestDeclarationsAbort(t *testing.T) {
	t.Parallel()
	stop := errors.New("stop")
	var count int
	err := walk.Declarations(parse(t), func(d walk.Declaration) error {
		count++
		if _, ok := d.(*ast.Field); ok {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}
