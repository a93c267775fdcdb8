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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/protoschema/ast"
)

func TestFileInfoSourcePos(t *testing.T) {
	t.Parallel()
	data := []byte("package foo;\n\tmessage Bar {}\n// héllo x\n")
	info := ast.NewFileInfo("foo.proto", data)
	for i, b := range data {
		if b == '\n' {
			info.AddLine(i + 1)
		}
	}
	assert.Equal(t, 4, info.LineCount())

	pos := info.SourcePos(8)
	assert.Equal(t, ast.SourcePos{Filename: "foo.proto", Line: 1, Col: 9, Offset: 8}, pos)
	assert.Equal(t, "foo.proto:1:9", pos.String())

	// the tab advances to the next tab stop
	pos = info.SourcePos(14)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 9, pos.Col)

	// multi-byte runes count as a single column
	offset := len("package foo;\n\tmessage Bar {}\n// héllo ")
	pos = info.SourcePos(offset)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 10, pos.Col)
}

func TestUnknownPos(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "foo.proto", ast.UnknownPos("foo.proto").String())
}

func TestFileInfoAddLinePanics(t *testing.T) {
	t.Parallel()
	info := ast.NewFileInfo("foo.proto", []byte("a\nb\n"))
	info.AddLine(2)
	assert.Panics(t, func() { info.AddLine(2) })
	assert.Panics(t, func() { info.AddLine(-1) })
	assert.Panics(t, func() { info.AddLine(10) })
}
