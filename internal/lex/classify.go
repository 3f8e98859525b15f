// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lex implements the lexical classifier underlying the source
// loader: byte-level predicates, single-line probes, the brace/paren
// depth tracker, and the two per-line scanners (legacy and modern) that
// the loader drives one physical line at a time.
package lex

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsNondigit reports whether b may start an identifier: an ASCII letter or
// underscore.
func IsNondigit(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsIdentifierStart is an alias for IsNondigit.
func IsIdentifierStart(b byte) bool {
	return IsNondigit(b)
}

// IsIdentifierContinue reports whether b may continue an identifier once
// started: a digit or an IsNondigit byte.
func IsIdentifierContinue(b byte) bool {
	return IsDigit(b) || IsNondigit(b)
}

// IsSpace reports whether b is an ASCII horizontal whitespace byte. Unlike
// unicode.IsSpace this deliberately excludes '\n': callers operate one
// physical line at a time and a newline byte never appears mid-line.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r'
}

// skipWhitespace returns the index of the first byte at or after i that is
// not IsSpace, or len(line) if none remain.
func skipWhitespace(line []byte, i int) int {
	for i < len(line) && IsSpace(line[i]) {
		i++
	}
	return i
}

// SkipWhitespace exposes skipWhitespace for callers outside this package
// that need to compute a diagnostic column (e.g. the source loader locating
// a directive's leading '#').
func SkipWhitespace(line []byte, i int) int {
	return skipWhitespace(line, i)
}

// StartsWithIdentifier returns the length of the maximal identifier prefix
// of s, or 0 if s does not begin with an identifier.
func StartsWithIdentifier(s []byte) int {
	if len(s) == 0 || !IsIdentifierStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && IsIdentifierContinue(s[n]) {
		n++
	}
	return n
}

// encodingPrefixForms lists every opener recognized by IsEncodingPrefixAnd,
// longest first so the search below finds the maximal prefix.
var encodingPrefixForms = []string{"u8R", "uR", "LR", "UR", "u8", "u", "U", "L", "R", ""}

// IsEncodingPrefixAnd returns the length (1-4) of an encoding prefix
// beginning at line[i] and ending in the quote byte q, recognizing exactly
// the opener forms q, uq, u8q, uRq, u8Rq, Uq, URq, Lq, LRq, Rq. It returns 0
// if none match.
func IsEncodingPrefixAnd(line []byte, i int, q byte) int {
	for _, prefix := range encodingPrefixForms {
		end := i + len(prefix)
		if end < len(line) && line[end] == q && string(line[i:end]) == prefix {
			return len(prefix) + 1
		}
	}
	return 0
}

// matchOperatorSymbol recognizes one of the fixed operator lexemes from the
// table in spec section 4.1, trying the longest match for each leading
// byte first. It returns the symbol's length, or 0 if s does not begin
// with a recognized operator symbol.
func matchOperatorSymbol(s []byte) int {
	if len(s) == 0 {
		return 0
	}
	switch s[0] {
	case '/', '=', '!', '*', '%', '^', '~':
		if len(s) >= 2 && s[1] == '=' {
			return 2
		}
		return 1
	case '+':
		if len(s) >= 2 && (s[1] == '+' || s[1] == '=') {
			return 2
		}
		return 1
	case '-':
		if len(s) >= 2 && (s[1] == '-' || s[1] == '=' || s[1] == '>') {
			return 2
		}
		return 1
	case '|':
		if len(s) >= 3 && s[1] == '|' && s[2] == '=' {
			return 3
		}
		if len(s) >= 2 && (s[1] == '|' || s[1] == '=') {
			return 2
		}
		return 1
	case '&':
		if len(s) >= 3 && s[1] == '&' && s[2] == '=' {
			return 3
		}
		if len(s) >= 2 && (s[1] == '&' || s[1] == '=') {
			return 2
		}
		return 1
	case '>':
		if len(s) >= 3 && s[1] == '>' && s[2] == '=' {
			return 3
		}
		if len(s) >= 2 && (s[1] == '>' || s[1] == '=') {
			return 2
		}
		return 1
	case '<':
		if len(s) >= 3 && ((s[1] == '<' && s[2] == '=') || (s[1] == '=' && s[2] == '>')) {
			return 3
		}
		if len(s) >= 2 && (s[1] == '<' || s[1] == '=') {
			return 2
		}
		return 1
	default:
		return 0
	}
}

const operatorKeyword = "operator"

// StartsWithOperator recognizes the keyword "operator" followed by optional
// whitespace and one of the symbol forms from the operator tie-break table.
// It returns the total length of "operator" + whitespace + symbol, or 0 if
// s does not begin with an operator-name lexeme.
func StartsWithOperator(s []byte) int {
	if len(s) < len(operatorKeyword) || string(s[:len(operatorKeyword)]) != operatorKeyword {
		return 0
	}
	i := len(operatorKeyword)
	for i < len(s) && IsSpace(s[i]) {
		i++
	}
	symLen := matchOperatorSymbol(s[i:])
	if symLen == 0 {
		return 0
	}
	return i + symLen
}
