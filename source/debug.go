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

package source

import (
	"bufio"
	"fmt"
	"io"
)

var categoryGlyph = map[Category]string{
	CategoryEmpty:               "/*   */",
	CategoryPreprocessor:        "/* # */",
	CategoryComment:             "/* / */",
	CategoryModuleDirective:     "/* m#*/",
	CategoryModuleDeclaration:   "/* m */",
	CategoryImport:              "/* i */",
	CategoryLegacy:              "/* 1 */",
	CategoryModern:              "/* 2 */",
	CategoryRawString:           "/* R */",
	CategoryPreprocessorEmitted: "/* E */",
}

// WriteDebugDump writes one line per non-sentinel SourceLine to w, prefixed
// with its category glyph and a dense-tokens marker ('+' or ' '), per spec
// section 6.
func (s *Source) WriteDebugDump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range s.lines[1:] {
		marker := byte(' ')
		if line.DenseTokens {
			marker = '+'
		}
		if _, err := fmt.Fprintf(bw, "%s%c%s\n", categoryGlyph[line.Category], marker, line.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}
