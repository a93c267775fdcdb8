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

package ast

import (
	"fmt"
	"sort"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the number of columns a tab advances to when computing
// column numbers for source positions.
const TabstopWidth = 8

// FileInfo contains information about the contents of a source file. A lexer
// accumulates line offsets as it scans the file contents, which later allows
// byte offsets to be converted into line and column numbers.
type FileInfo struct {
	// The name of the source file.
	name string
	// The raw contents of the source file.
	data []byte
	// The offsets for each line in the file. The value is the zero-based byte
	// offset for a given line. The line is given by its index. So the value at
	// index 0 is the offset for the first line (which is always zero). The
	// value at index 1 is the offset at which the second line begins. Etc.
	lines []int
}

// NewFileInfo creates a new instance for the given file.
func NewFileInfo(filename string, contents []byte) *FileInfo {
	return &FileInfo{
		name:  filename,
		data:  contents,
		lines: []int{0},
	}
}

func (f *FileInfo) Name() string {
	return f.name
}

// Data returns the raw contents of the file.
func (f *FileInfo) Data() []byte {
	return f.data
}

// LineCount returns the number of lines observed so far.
func (f *FileInfo) LineCount() int {
	return len(f.lines)
}

// AddLine adds the offset representing the beginning of the "next" line in the file.
// The first line always starts at offset 0, the second line starts at offset-of-newline-char+1.
func (f *FileInfo) AddLine(offset int) {
	if offset < 0 {
		panic(fmt.Sprintf("invalid offset: %d must not be negative", offset))
	}
	if offset > len(f.data) {
		panic(fmt.Sprintf("invalid offset: %d is greater than file size %d", offset, len(f.data)))
	}

	if len(f.lines) > 0 {
		lastOffset := f.lines[len(f.lines)-1]
		if offset <= lastOffset {
			panic(fmt.Sprintf("invalid offset: %d is not greater than previously observed line offset %d", offset, lastOffset))
		}
	}

	f.lines = append(f.lines, offset)
}

// LineOf returns the one-based line number that contains the given offset.
func (f *FileInfo) LineOf(offset int) int {
	return sort.Search(len(f.lines), func(n int) bool {
		return f.lines[n] > offset
	})
}

// SourcePos converts the given byte offset into a position. Only lines that
// have already been added via AddLine are considered.
func (f *FileInfo) SourcePos(offset int) SourcePos {
	lineNumber := f.LineOf(offset)

	// Columns account for tab stops and for the display width of
	// multi-byte graphemes, so that a caret printed under the
	// offending line lines up in a terminal.
	col := 0
	lineStart := f.lines[lineNumber-1]
	end := min(offset, len(f.data))
	for i := lineStart; i < end; {
		if f.data[i] == '\t' {
			col += TabstopWidth - (col % TabstopWidth)
			i++
			continue
		}
		j := i
		for j < end && f.data[j] != '\t' {
			j++
		}
		col += uniseg.StringWidth(string(f.data[i:j]))
		i = j
	}

	return SourcePos{
		Filename: f.name,
		Offset:   offset,
		Line:     lineNumber,
		// Columns are 1-indexed in this AST
		Col: col + 1,
	}
}

// SourcePos identifies a location in a proto source file.
type SourcePos struct {
	Filename  string
	Line, Col int
	Offset    int
}

// UnknownPos is a placeholder position when only the source file
// name is known.
func UnknownPos(filename string) SourcePos {
	return SourcePos{Filename: filename}
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}
