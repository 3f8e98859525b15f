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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanModernLineSimpleDeclaration(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte("main: () = { }"), bt, sink)
	assert.True(t, res.Done)
	assert.False(t, res.Halted)
	assert.Empty(t, sink.Entries())
}

func TestScanModernLineMultiLineBody(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte("main: () -> int = {"), bt, sink)
	assert.False(t, res.Done)

	res = ScanModernLine(state, 2, []byte("  return 0;"), bt, sink)
	assert.False(t, res.Done, "the body's own ';' must not terminate the declaration")

	res = ScanModernLine(state, 3, []byte("}"), bt, sink)
	assert.True(t, res.Done)
}

func TestScanModernLineOperatorDeclarationNoBraces(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte("operator+: (this, that) -> int = 0;"), bt, sink)
	assert.True(t, res.Done, "')' must never terminate the declaration, only the trailing ';'")
}

// TestScanModernLineUnterminatedCharLiteral reproduces spec scenario S6.
func TestScanModernLineUnterminatedCharLiteral(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte("x := 'a"), bt, sink)
	assert.True(t, res.Halted)
	assert.False(t, res.Done)

	entries := sink.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, ErrorUnterminatedCharLiteral, entries[0].Kind)
}

func TestScanModernLineTrailingBlockCommentAfterTerminator(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte("x: int = 0; /* oops */"), bt, sink)
	assert.True(t, res.Halted)

	entries := sink.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, ErrorTrailingBlockComment, entries[0].Kind)
}

func TestScanModernLineEncodingPrefixedCharLiteral(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &ModernScanState{}

	res := ScanModernLine(state, 1, []byte(`x: char = u8'a';`), bt, sink)
	assert.True(t, res.Done)
	assert.Empty(t, sink.Entries())
}
