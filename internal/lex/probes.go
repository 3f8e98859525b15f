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

package lex

import "github.com/cpp2run/cpp2load/internal/collections"

// AccessSpecifiers is the keyword set that starts_with_identifier_colon may
// optionally skip before the declared name, lifted from the cppfront
// reference (original_source/source/common.h).
var AccessSpecifiers = collections.SetOf("public", "protected", "private", "export")

// PeekFirstNonWhitespace returns the first non-whitespace byte on the line,
// or 0 if the line is empty or all whitespace.
func PeekFirstNonWhitespace(line []byte) byte {
	i := skipWhitespace(line, 0)
	if i >= len(line) {
		return 0
	}
	return line[i]
}

// StartsWithTokens reports whether line begins with each token in tokens,
// in order, separated by whitespace, with no token immediately followed by
// an identifier-continue byte (so "import" does not match a prefix of
// "importer").
func StartsWithTokens(line []byte, tokens ...string) bool {
	i := skipWhitespace(line, 0)
	for _, tok := range tokens {
		if i+len(tok) > len(line) || string(line[i:i+len(tok)]) != tok {
			return false
		}
		i += len(tok)
		if i < len(line) && IsIdentifierContinue(line[i]) {
			return false
		}
		i = skipWhitespace(line, i)
	}
	return true
}

// matchKeyword reports whether line begins with one of the given keywords
// as a whole token (not followed by an identifier-continue byte), returning
// its length.
func matchKeyword(line []byte, keywords collections.Set[string]) (int, bool) {
	n := StartsWithIdentifier(line)
	if n == 0 {
		return 0, false
	}
	if !keywords.Contains(string(line[:n])) {
		return 0, false
	}
	return n, true
}

// StartsWithIdentifierColon recognizes the modern-declaration shape
// `identifier :` (or `operator@ :`), per spec section 4.2:
//
//  1. skip leading whitespace
//  2. optionally skip one access-specifier keyword followed by whitespace
//  3. recognize either an operator name or a plain identifier
//  4. skip whitespace
//  5. require the next byte to be ':' and the byte after it to not be ':'
//     (so a qualified name like `::x` is rejected)
func StartsWithIdentifierColon(line []byte) bool {
	i := skipWhitespace(line, 0)

	if n, ok := matchKeyword(line[i:], AccessSpecifiers); ok {
		j := i + n
		k := skipWhitespace(line, j)
		if k > j {
			i = k
		}
	}

	if n := StartsWithOperator(line[i:]); n > 0 {
		i += n
	} else if n := StartsWithIdentifier(line[i:]); n > 0 {
		i += n
	} else {
		return false
	}

	i = skipWhitespace(line, i)
	if i >= len(line) || line[i] != ':' {
		return false
	}
	if i+1 < len(line) && line[i+1] == ':' {
		return false
	}
	return true
}

// PreprocessorBranch identifies which of the three brace-tracker-relevant
// preprocessor directives a line opens with, if any.
type PreprocessorBranch int

const (
	PreprocessorNone PreprocessorBranch = iota
	PreprocessorIf
	PreprocessorElse
	PreprocessorEndif
)

// StartsWithPreprocessorIfElseEndif recognizes a leading `#if`/`#ifdef`/
// `#ifndef` (all share the "if" prefix), `#else`, or `#endif` directive.
// `#elif`/`#elifdef`/`#elifndef` are deliberately not recognized here: the
// brace tracker only reconciles the two-armed if/else/endif shape (spec
// section 4.3 names exactly these three tags).
func StartsWithPreprocessorIfElseEndif(line []byte) PreprocessorBranch {
	i := skipWhitespace(line, 0)
	if i >= len(line) || line[i] != '#' {
		return PreprocessorNone
	}
	i = skipWhitespace(line, i+1)
	rest := line[i:]
	switch {
	case hasPrefix(rest, "if"):
		return PreprocessorIf
	case hasPrefix(rest, "else"):
		return PreprocessorElse
	case hasPrefix(rest, "endif"):
		return PreprocessorEndif
	default:
		return PreprocessorNone
	}
}

func hasPrefix(s []byte, prefix string) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == prefix
}

// IsPreprocessor reports whether line is part of a preprocessor directive,
// and whether it ends with a line-continuation backslash. When firstLine is
// true the first non-whitespace byte must be '#'; continuation lines (the
// physical lines following a trailing backslash) are preprocessor lines
// regardless of their own leading byte.
func IsPreprocessor(line []byte, firstLine bool) (isPreprocessor, hasContinuation bool) {
	isPreprocessor = true
	if firstLine {
		isPreprocessor = PeekFirstNonWhitespace(line) == '#'
	}
	hasContinuation = len(line) > 0 && line[len(line)-1] == '\\'
	return isPreprocessor, hasContinuation
}
