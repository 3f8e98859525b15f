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

func TestScanLegacyLineComments(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	res := ScanLegacyLine(state, 1, []byte("   // a line comment"), bt)
	assert.True(t, res.AllComment)
	assert.False(t, res.Empty)

	res = ScanLegacyLine(state, 2, []byte("   "), bt)
	assert.True(t, res.Empty)

	res = ScanLegacyLine(state, 3, []byte("/* opens and stays open"), bt)
	assert.True(t, res.AllComment)
	assert.True(t, state.InComment)

	res = ScanLegacyLine(state, 4, []byte("still inside the comment"), bt)
	assert.True(t, res.AllComment)
	assert.True(t, state.InComment)

	res = ScanLegacyLine(state, 5, []byte("closes here */ int x;"), bt)
	assert.False(t, res.AllComment)
	assert.False(t, state.InComment)
}

// TestScanLegacyLineRawStringAcrossLines reproduces spec scenario S3.
func TestScanLegacyLineRawStringAcrossLines(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	res := ScanLegacyLine(state, 1, []byte(`auto s = R"xx(`), bt)
	assert.False(t, res.AllRawString)
	assert.True(t, state.InRawStringLiteral)
	assert.Equal(t, 0, bt.Depth())

	res = ScanLegacyLine(state, 2, []byte(`hello { not a brace }`), bt)
	assert.True(t, res.AllRawString)
	assert.Equal(t, 0, bt.Depth(), "braces inside a raw string must not reach the tracker")

	res = ScanLegacyLine(state, 3, []byte(`)xx";`), bt)
	assert.False(t, res.AllRawString)
	assert.False(t, state.InRawStringLiteral)

	assert.Empty(t, sink.Entries())
}

// TestScanLegacyLineRawStringDelimiterWithParen reproduces spec scenario
// S10: the closing sequence must match the full ")delim\"" run, not an
// incidental ')' inside the raw string's payload text.
func TestScanLegacyLineRawStringDelimiterWithParen(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	res := ScanLegacyLine(state, 1, []byte(`auto s = R"=+=(paren ) inside)=+=";`), bt)
	assert.False(t, res.AllRawString)
	assert.False(t, state.InRawStringLiteral)
	assert.Empty(t, sink.Entries())
}

func TestScanLegacyLineBraceTracking(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	ScanLegacyLine(state, 1, []byte("void f(){"), bt)
	assert.Equal(t, 1, bt.Depth())
	ScanLegacyLine(state, 2, []byte("  if(x){"), bt)
	assert.Equal(t, 2, bt.Depth())
	ScanLegacyLine(state, 3, []byte("  }"), bt)
	assert.Equal(t, 1, bt.Depth())
	ScanLegacyLine(state, 4, []byte("}"), bt)
	assert.Equal(t, 0, bt.Depth())
}

func TestScanLegacyLineCharLiteralSuppressesBracket(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	ScanLegacyLine(state, 1, []byte(`char c = '{';`), bt)
	assert.Equal(t, 0, bt.Depth(), "a brace inside a char literal must not be tracked")
}

func TestScanLegacyLineUsingQualifiedNameIsNotAString(t *testing.T) {
	sink := NewSink()
	bt := NewBraceTracker(sink)
	state := &LegacyScanState{}

	res := ScanLegacyLine(state, 1, []byte(`using ::x;`), bt)
	assert.False(t, res.AllComment)
	assert.False(t, res.Empty)
	assert.False(t, state.InStringLiteral)
}
