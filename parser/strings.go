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
	"errors"
	"fmt"
	"strings"
)

// unquote decodes a raw string token, including its surrounding quotes,
// into the bytes it denotes. The lexer guarantees that the token is
// terminated and that no backslash is the last byte before the closing
// quote.
func unquote(raw string) (string, error) {
	s := raw[1 : len(raw)-1]
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		i++
		c = s[i]
		switch c {
		case 'a':
			buf.WriteByte('\a')
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case 'v':
			buf.WriteByte('\v')
		case '\\', '\'', '"':
			buf.WriteByte(c)
		case 'x', 'X':
			var v, n int
			for n < 2 && i+1 < len(s) && isHexDigit(s[i+1]) {
				i++
				v = v*16 + hexValue(s[i])
				n++
			}
			if n == 0 {
				return "", errors.New(`expected a digit after \x or \X`)
			}
			buf.WriteByte(byte(v))
		case '0', '1', '2', '3', '4', '5', '6', '7':
			start := i
			v := int(c - '0')
			for n := 1; n < 3 && i+1 < len(s) && isOctalDigit(s[i+1]); n++ {
				i++
				v = v*8 + int(s[i]-'0')
			}
			if v > 0xff {
				return "", fmt.Errorf("octal escape is out of range, must be between 0 and 377: \\%s", s[start:i+1])
			}
			buf.WriteByte(byte(v))
		default:
			return "", fmt.Errorf("invalid escape sequence: %q", "\\"+string(c))
		}
	}
	return buf.String(), nil
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= 'a':
		return int(c-'a') + 10
	case c >= 'A':
		return int(c-'A') + 10
	default:
		return int(c - '0')
	}
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}
