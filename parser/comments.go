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

import "strings"

// docComment returns the documentation for a declaration whose first token
// is tok. Comments that start on the same line as the previous token are
// trailing comments for it and are skipped. Of the rest, only the group
// that ends on the line before the declaration (or on its line) counts: a
// single block comment, or a run of line comments on consecutive lines.
func docComment(tok token) string {
	comments := tok.comments
	for len(comments) > 0 && tok.prevLine > 0 && comments[0].startLine == tok.prevLine {
		comments = comments[1:]
	}
	if len(comments) == 0 {
		return ""
	}
	last := comments[len(comments)-1]
	if last.endLine < tok.line-1 {
		return ""
	}
	if last.isBlock() {
		return blockCommentText(last.text)
	}
	first := len(comments) - 1
	for first > 0 {
		prev := comments[first-1]
		if prev.isBlock() || prev.endLine != comments[first].startLine-1 {
			break
		}
		first--
	}
	lines := make([]string, 0, len(comments)-first)
	for _, c := range comments[first:] {
		lines = append(lines, lineCommentText(c.text))
	}
	return joinTrimmed(lines)
}

// lineCommentText strips the leading "//" and at most one space.
func lineCommentText(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, " ")
	return strings.TrimRight(text, " \t\r")
}

// blockCommentText normalizes a /* */ comment. When every interior line is
// prefixed with "*", the text after the "*" and one space is kept with its
// indentation. Otherwise each line is trimmed on its own.
func blockCommentText(text string) string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	// doc-style /** comments
	text = strings.TrimPrefix(text, "*")
	lines := strings.Split(text, "\n")
	lines[0] = strings.TrimSpace(lines[0])
	interior := lines[1:]

	check := interior
	if n := len(check); n > 0 && strings.TrimSpace(check[n-1]) == "" {
		check = check[:n-1]
	}
	starred := true
	for _, line := range check {
		if !strings.HasPrefix(strings.TrimLeft(line, " \t"), "*") {
			starred = false
			break
		}
	}
	for i, line := range interior {
		trimmed := strings.TrimLeft(line, " \t")
		if starred && strings.HasPrefix(trimmed, "*") {
			line = strings.TrimPrefix(trimmed[1:], " ")
			interior[i] = strings.TrimRight(line, " \t\r")
		} else {
			interior[i] = strings.TrimSpace(line)
		}
	}
	return joinTrimmed(lines)
}

// joinTrimmed joins lines with "\n", dropping leading and trailing blank
// lines.
func joinTrimmed(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
