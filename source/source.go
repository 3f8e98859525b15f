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

// Package source implements the source-loading front end: it reads a file
// (or stdin) one physical line at a time, classifies each line using
// internal/lex, and assembles the result into a Source object ready for a
// downstream tokenizer/parser this package does not implement.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cpp2run/cpp2load/internal/lex"
)

// maxLineLength is the largest physical line this loader accepts, lifted
// from the cppfront reference (original_source); exceeding it aborts the
// load.
const maxLineLength = 90_000

// Category classifies one physical source line.
type Category int

const (
	CategoryEmpty Category = iota
	CategoryPreprocessor
	CategoryComment
	CategoryModuleDirective
	CategoryModuleDeclaration
	CategoryImport
	CategoryLegacy
	CategoryModern
	CategoryRawString
	CategoryPreprocessorEmitted
)

func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "empty"
	case CategoryPreprocessor:
		return "preprocessor"
	case CategoryComment:
		return "comment"
	case CategoryModuleDirective:
		return "module-directive"
	case CategoryModuleDeclaration:
		return "module-declaration"
	case CategoryImport:
		return "import"
	case CategoryLegacy:
		return "legacy"
	case CategoryModern:
		return "modern"
	case CategoryRawString:
		return "rawstring"
	case CategoryPreprocessorEmitted:
		return "preprocessor-emitted"
	default:
		return "unknown"
	}
}

// SourceLine is one physical line of input plus its classification.
type SourceLine struct {
	Text        []byte
	Category    Category
	DenseTokens bool
}

// Position is a 1-based line/column location, re-exported from internal/lex
// so callers need not import it separately.
type Position = lex.Position

// ErrorKind identifies a diagnostic's category.
type ErrorKind = lex.Kind

// Re-export the error kind constants under the names spec section 7 uses.
const (
	ErrorUnmatchedCloseBrace     = lex.ErrorUnmatchedCloseBrace
	ErrorUnmatchedOpenersAtEOF   = lex.ErrorUnmatchedOpenersAtEOF
	ErrorUnmatchedElse           = lex.ErrorUnmatchedElse
	ErrorDuplicateElse           = lex.ErrorDuplicateElse
	ErrorUnmatchedEndif          = lex.ErrorUnmatchedEndif
	ErrorTrailingBlockComment    = lex.ErrorTrailingBlockComment
	ErrorUnterminatedCharLiteral = lex.ErrorUnterminatedCharLiteral
	ErrorLineTooLong             = lex.ErrorLineTooLong
	ErrorUnexpectedStreamEnd     = lex.ErrorUnexpectedStreamEnd
)

// ErrorEntry is one accumulated diagnostic.
type ErrorEntry = lex.Entry

// ErrLineTooLong is returned by Load when a physical line exceeds
// maxLineLength; it is always fatal, unlike every other diagnostic kind.
var ErrLineTooLong = errors.New("source: line exceeds maximum length")

// Source owns the classified lines and diagnostics produced by one Load
// call.
type Source struct {
	lines                []SourceLine // index 0 is a sentinel
	moduleDirectiveFound bool
	moduleLines          int
	modulePrefixClosed   bool // set once any non-module-prefix line has been appended
	hasLegacy            bool
	hasModern            bool
	isModuleUtil         bool
	sink                 *lex.Sink
}

// Lines returns every line, including the sentinel at index 0.
func (s *Source) Lines() []SourceLine {
	return s.lines
}

// ModuleLines returns the module prefix: the maximal leading run of
// module/import directive lines before any declaration, excluding the
// sentinel.
func (s *Source) ModuleLines() []SourceLine {
	return s.lines[1 : 1+s.moduleLines]
}

// NonModuleLines returns every line after the module prefix.
func (s *Source) NonModuleLines() []SourceLine {
	return s.lines[1+s.moduleLines:]
}

// IsModule reports whether any module-prefix line was seen.
func (s *Source) IsModule() bool {
	return s.moduleLines > 0
}

// HasModuleDirective reports whether a module directive, module declaration,
// or import line was seen.
func (s *Source) HasModuleDirective() bool {
	return s.moduleDirectiveFound
}

// HasLegacy reports whether any preprocessor line or legacy code line was
// seen. Lines the legacy scanner classifies as comment, empty or raw string
// do not set it.
func (s *Source) HasLegacy() bool {
	return s.hasLegacy
}

// HasModern reports whether any modern declaration was recognized.
func (s *Source) HasModern() bool {
	return s.hasModern
}

// IsModuleCpp2Util reports whether this file is exactly the
// `export module cpp2.util;` utility module.
func (s *Source) IsModuleCpp2Util() bool {
	return s.isModuleUtil
}

// Errors returns the accumulated diagnostics.
func (s *Source) Errors() []ErrorEntry {
	return s.sink.Entries()
}

// Load reads path (or stdin, when path is "stdin" or "-") and classifies it
// line by line. ctx is checked between physical lines only, never inside a
// byte-level scanner, so a line currently mid-scan always finishes.
func Load(ctx context.Context, path string) (*Source, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("source: opening %s: %w", path, err)
	}
	defer closeFn()

	src := &Source{
		lines: make([]SourceLine, 1), // sentinel at index 0
		sink:  lex.NewSink(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength+1)
	scanner.Split(bufio.ScanLines)

	legacyState := &lex.LegacyScanState{}
	braces := lex.NewBraceTracker(src.sink)
	lineNo := 0
	lineTooLong := false

	next := func() ([]byte, bool) {
		if err := ctx.Err(); err != nil {
			return nil, false
		}
		if !scanner.Scan() {
			return nil, false
		}
		line := scanner.Bytes()
		if len(line) > maxLineLength {
			src.sink.Add(Position{lineNo + 1, 1}, lex.ErrorLineTooLong,
				"line exceeds maximum length of %d bytes", maxLineLength)
			lineTooLong = true
			return nil, false
		}
		lineNo++
		return append([]byte(nil), line...), true
	}

	appendLine := func(text []byte, cat Category) {
		src.lines = append(src.lines, SourceLine{Text: text, Category: cat})
		switch cat {
		case CategoryModuleDirective, CategoryModuleDeclaration, CategoryImport:
			// still within a potential module prefix; the classifyModuleLine
			// call site decides whether to extend it.
		default:
			src.modulePrefixClosed = true
		}
	}

	for {
		line, ok := next()
		if !ok {
			break
		}

		isPre, hasCont := lex.IsPreprocessor(line, true)
		if isPre && !legacyState.InComment && !legacyState.InRawStringLiteral {
			src.hasLegacy = true
			dispatchPreprocessorTag(line, lineNo, braces)
			appendLine(line, CategoryPreprocessor)
			for hasCont {
				cont, ok := next()
				if !ok {
					break
				}
				appendLine(cont, CategoryPreprocessor)
				_, hasCont = lex.IsPreprocessor(cont, false)
			}
			continue
		}

		braceDepthZero := braces.Depth() == 0
		isModernStart := !legacyState.InComment && !legacyState.InRawStringLiteral &&
			braceDepthZero && lex.StartsWithIdentifierColon(line) &&
			!lex.StartsWithTokens(line, "import") && !lex.StartsWithTokens(line, "export", "import")

		if isModernStart {
			src.hasModern = true
			appendLine(line, CategoryModern)
			promotePrecedingBlankOrComment(src.lines)

			modernState := &lex.ModernScanState{}
			res := lex.ScanModernLine(modernState, lineNo, line, braces, src.sink)
			for !res.Done && !res.Halted {
				cont, ok := next()
				if !ok {
					break
				}
				appendLine(cont, CategoryModern)
				res = lex.ScanModernLine(modernState, lineNo, cont, braces, src.sink)
			}
			continue
		}

		if cat, ok := classifyModuleLine(line); ok {
			src.moduleDirectiveFound = true
			if !src.modulePrefixClosed {
				src.moduleLines = lineNo
			}
			if cat == CategoryModuleDeclaration && isModuleCpp2Util(line) {
				src.isModuleUtil = true
			}
			appendLine(line, cat)
			continue
		}

		result := lex.ScanLegacyLine(legacyState, lineNo, line, braces)
		switch {
		case result.AllRawString:
			appendLine(line, CategoryRawString)
		case result.AllComment:
			appendLine(line, CategoryComment)
		case result.Empty:
			appendLine(line, CategoryEmpty)
		default:
			src.hasLegacy = true
			appendLine(line, CategoryLegacy)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			src.sink.Add(Position{lineNo + 1, 1}, lex.ErrorLineTooLong,
				"line exceeds maximum length of %d bytes", maxLineLength)
			return src, ErrLineTooLong
		}
		return src, fmt.Errorf("source: reading %s: %w", path, err)
	}
	if lineTooLong {
		return src, ErrLineTooLong
	}

	braces.FoundEOF(Position{lineNo + 1, 1})
	if legacyState.InComment || legacyState.InRawStringLiteral {
		src.sink.AddFallback(Position{lineNo + 1, 1}, lex.ErrorUnexpectedStreamEnd,
			"reached end of file while still inside a comment or raw string")
	}

	return src, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "stdin" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func dispatchPreprocessorTag(line []byte, lineNo int, braces *lex.BraceTracker) {
	col := lex.SkipWhitespace(line, 0) + 1
	switch lex.StartsWithPreprocessorIfElseEndif(line) {
	case lex.PreprocessorIf:
		braces.FoundPreIf(lineNo)
	case lex.PreprocessorElse:
		braces.FoundPreElse(Position{lineNo, col})
	case lex.PreprocessorEndif:
		braces.FoundPreEndif(Position{lineNo, col})
	}
}

// promotePrecedingBlankOrComment reclassifies the contiguous run of
// already-appended empty/comment lines immediately before the line just
// appended as modern (spec invariant 5), stopping at the first line of any
// other category.
func promotePrecedingBlankOrComment(lines []SourceLine) {
	for k := len(lines) - 2; k >= 1; k-- {
		switch lines[k].Category {
		case CategoryEmpty, CategoryComment:
			lines[k].Category = CategoryModern
		default:
			return
		}
	}
}

// classifyModuleLine recognizes module/import directive forms. An
// `import`/`export import` line followed by a partition colon reaches this
// function because Load's modern-declaration check excludes import lines,
// and it is classified as CategoryImport here.
func classifyModuleLine(line []byte) (Category, bool) {
	trimmed := bytes.TrimSpace(line)
	switch {
	case lex.StartsWithTokens(trimmed, "export", "module"):
		return CategoryModuleDeclaration, true
	case lex.StartsWithTokens(trimmed, "module"):
		if isBareModuleFragment(trimmed) {
			return CategoryModuleDirective, true
		}
		return CategoryModuleDeclaration, true
	case lex.StartsWithTokens(trimmed, "export", "import"):
		return CategoryImport, true
	case lex.StartsWithTokens(trimmed, "import"):
		return CategoryImport, true
	default:
		return 0, false
	}
}

// isBareModuleFragment reports whether trimmed is exactly the global module
// fragment marker `module;`, as opposed to a module declaration naming a
// module.
func isBareModuleFragment(trimmed []byte) bool {
	rest := bytes.TrimSpace(trimmed[len("module"):])
	return string(rest) == ";"
}

// isModuleCpp2Util reports whether line is exactly the cppfront utility
// module declaration.
func isModuleCpp2Util(line []byte) bool {
	return string(bytes.TrimSpace(line)) == "export module cpp2.util;"
}
