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

import "fmt"

// PreIfFrame tracks the net bracket opens contributed by each arm of one
// #if/#else/#endif region, so the two arms' physically-both-present braces
// can be reconciled into a single net effect at #endif.
type PreIfFrame struct {
	IfNetBraces   int
	FoundElse     bool
	ElseNetBraces int
}

func (f *PreIfFrame) active() *int {
	if f.FoundElse {
		return &f.ElseNetBraces
	}
	return &f.IfNetBraces
}

// BraceTracker tracks nested bracket depth across an entire source file,
// reconciling the double-counted braces that appear when both arms of a
// preprocessor conditional are present in the raw text (spec section 4.3).
//
// It tracks exactly one bracket kind at a time ('{' or '('), chosen by the
// first opener seen after the stack last emptied; the other kind is ignored
// until the stack empties again. This mirrors how a file written with one
// dominant bracket style treats the other as noise for unmatched-opener
// purposes.
type BraceTracker struct {
	currentOpenType byte
	openBraces      []int
	preStack        []PreIfFrame
	sink            *Sink
}

// NewBraceTracker returns a tracker with one sentinel PreIfFrame
// representing "outside any #if", reporting diagnostics to sink.
func NewBraceTracker(sink *Sink) *BraceTracker {
	return &BraceTracker{
		preStack: []PreIfFrame{{}},
		sink:     sink,
	}
}

// Depth returns the current count of unmatched openers of the tracked
// bracket kind.
func (bt *BraceTracker) Depth() int {
	return len(bt.openBraces)
}

func closerFor(opener byte) byte {
	if opener == '(' {
		return ')'
	}
	return '}'
}

// FoundOpenBrace records an opening '{' or '(' at the given line.
func (bt *BraceTracker) FoundOpenBrace(line int, ch byte) {
	if len(bt.openBraces) == 0 {
		bt.currentOpenType = ch
	}
	if ch != bt.currentOpenType {
		return
	}
	bt.openBraces = append(bt.openBraces, line)
	top := &bt.preStack[len(bt.preStack)-1]
	*top.active()++
}

// FoundCloseBrace records a closing '}' or ')' at the given position. A
// close that does not match the currently tracked bracket kind is ignored;
// a close with no matching opener on the stack is reported as
// ErrorUnmatchedCloseBrace.
func (bt *BraceTracker) FoundCloseBrace(where Position, ch byte) {
	if ch != closerFor(bt.currentOpenType) {
		return
	}
	if len(bt.openBraces) == 0 {
		bt.sink.Add(where, ErrorUnmatchedCloseBrace,
			"closing '%c' does not match a prior opening '%c'", ch, bt.currentOpenType)
		return
	}
	bt.openBraces = bt.openBraces[:len(bt.openBraces)-1]
	top := &bt.preStack[len(bt.preStack)-1]
	*top.active()--
}

// FoundPreIf pushes a fresh frame for a #if/#ifdef/#ifndef directive.
func (bt *BraceTracker) FoundPreIf(line int) {
	bt.preStack = append(bt.preStack, PreIfFrame{})
}

// FoundPreElse marks the current #if frame as having seen its #else arm.
func (bt *BraceTracker) FoundPreElse(where Position) {
	if len(bt.preStack) < 2 {
		bt.sink.Add(where, ErrorUnmatchedElse, "#else does not match a prior #if")
		return
	}
	top := &bt.preStack[len(bt.preStack)-1]
	if top.FoundElse {
		bt.sink.Add(where, ErrorDuplicateElse, "duplicate #else for the same #if")
		return
	}
	top.FoundElse = true
}

// FoundPreEndif reconciles and pops the current #if frame. If both arms
// opened the same non-negative net bracket count, that many phantom closes
// are applied (via FoundCloseBrace, with a synthetic position) to cancel
// the double counting contributed by the arm that is not actually taken.
// Whatever net count remains is folded into the parent frame so the running
// open_braces stack and the preprocessor_stack sum stay consistent (the
// invariant in spec section 3), even when the two arms did not balance.
func (bt *BraceTracker) FoundPreEndif(where Position) {
	if len(bt.preStack) < 2 {
		bt.sink.Add(where, ErrorUnmatchedEndif, "#endif does not match a prior #if")
		return
	}
	top := bt.preStack[len(bt.preStack)-1]
	if top.FoundElse && top.IfNetBraces == top.ElseNetBraces && top.IfNetBraces >= 0 {
		for i := 0; i < top.IfNetBraces; i++ {
			bt.FoundCloseBrace(where, closerFor(bt.currentOpenType))
		}
		top = bt.preStack[len(bt.preStack)-1]
	}
	bt.preStack = bt.preStack[:len(bt.preStack)-1]
	parent := &bt.preStack[len(bt.preStack)-1]
	*parent.active() += top.IfNetBraces + top.ElseNetBraces
}

// FoundEOF reports any openers left unmatched at end of file, enumerating
// their line numbers.
func (bt *BraceTracker) FoundEOF(where Position) {
	if len(bt.openBraces) == 0 {
		return
	}
	bt.sink.Add(where, ErrorUnmatchedOpenersAtEOF,
		"reached end of file with unmatched opening '%c' at line(s):%s",
		bt.currentOpenType, formatLineList(bt.openBraces))
}

// formatLineList renders a list of line numbers as "N1", "N1 and N2", or
// "N1, N2, ... and Nk" (Oxford comma, only used once there are 3+ items).
func formatLineList(lines []int) string {
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(" %d", lines[0])
	case 2:
		return fmt.Sprintf(" %d and %d", lines[0], lines[1])
	default:
		s := ""
		for _, n := range lines[:len(lines)-1] {
			s += fmt.Sprintf(" %d,", n)
		}
		return fmt.Sprintf("%s and %d", s, lines[len(lines)-1])
	}
}
