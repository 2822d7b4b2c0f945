// Copyright 2025 keil2sdcc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"
)

// markerPrefix opens the banner of every generated header. Its presence in
// an input file means the file is already converted and must not be treated
// as a source again.
const markerPrefix = "// SDCC-CONVERTED"

// sdccCompatBlock aliases the five Keil memory-class keywords to their SDCC
// spellings. The __SDCC__ guard keeps the header usable under Keil C51 too.
var sdccCompatBlock = []string{
	"",
	"#ifdef __SDCC__",
	"#define data  __data",
	"#define idata __idata",
	"#define xdata __xdata",
	"#define pdata __pdata",
	"#define code  __code",
	"#endif",
	"",
}

// srcLine is one physical line with its original terminator. Keeping the
// terminator per line lets CRLF vendor files round-trip byte-identically on
// every line the transformer does not rewrite.
type srcLine struct {
	text string
	eol  string // "\r\n", "\n", "\r", or "" for an unterminated final line
}

// splitLines splits raw header bytes into lines. Bytes are never decoded;
// legacy 8-bit comment text passes through untouched.
func splitLines(data []byte) []srcLine {
	var lines []srcLine
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, srcLine{text: string(data[start:i]), eol: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				lines = append(lines, srcLine{text: string(data[start:i]), eol: "\r\n"})
				i++
			} else {
				lines = append(lines, srcLine{text: string(data[start:i]), eol: "\r"})
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, srcLine{text: string(data[start:]), eol: ""})
	}
	return lines
}

// converter holds the state of one transform pass: the profile, the address
// table from the first pass, and the one-shot macro insertion flag.
type converter struct {
	prof      Profile
	table     map[string]int
	report    *Report
	macroDone bool
}

// transform rewrites a single line. num is the 1-based source line number
// used in diagnostics. Most lines map to themselves or to one rewritten
// line; the anchor line additionally expands into the compatibility block.
func (c *converter) transform(num int, ln srcLine) []srcLine {
	if !c.macroDone && strings.HasPrefix(ln.text, c.prof.AnchorPrefix) {
		c.macroDone = true
		eol := ln.eol
		if eol == "" {
			eol = "\n"
			ln.eol = eol
		}
		out := make([]srcLine, 0, len(sdccCompatBlock)+1)
		out = append(out, ln)
		for _, text := range sdccCompatBlock {
			out = append(out, srcLine{text: text, eol: eol})
		}
		return out
	}

	d := classifyLine(ln.text)
	switch d.Kind {
	case lineWideReg:
		c.report.WideRegs++
		return []srcLine{{text: rewriteWideReg(d), eol: ln.eol}}
	case linePlainReg:
		c.report.PlainRegs++
		return []srcLine{{text: rewritePlainReg(d), eol: ln.eol}}
	case lineBitAlias:
		if text, ok := rewriteBitAlias(d, c.table); ok {
			c.report.BitAliases++
			return []srcLine{{text: text, eol: ln.eol}}
		}
		// Unknown base register: keep the line exactly as written and let
		// the report flag it for manual follow-up.
		c.report.Unresolved = append(c.report.Unresolved, unresolvedBit{Line: num, Name: d.Name, Base: d.Base})
		return []srcLine{ln}
	case lineExternAbs:
		c.report.Externs++
		return []srcLine{{text: rewriteExternAbs(d), eol: ln.eol}}
	}

	text := ln.text
	if c.prof.Compat.BitKeyword {
		if t, ok := rewriteBitKeyword(text); ok {
			text = t
			c.report.Compat++
		}
	}
	if c.prof.Compat.StripTypedefSpaces {
		if t, ok := stripTypedefSpaces(text); ok {
			text = t
			c.report.Compat++
		}
	}
	return []srcLine{{text: text, eol: ln.eol}}
}

// Convert translates one Keil-dialect header into its SDCC equivalent.
// outName and srcName are the display names embedded in the banner: the
// file being generated and the file a human should edit instead. The
// returned report carries the address table and every diagnostic; callers
// decide whether and where to print it.
func Convert(src []byte, outName, srcName string, prof Profile) ([]byte, *Report) {
	lines := splitLines(src)
	table, dups := buildRegisterTable(lines)
	report := &Report{SourceName: srcName, Table: table, Duplicates: dups}
	c := &converter{prof: prof, table: table, report: report}

	var builder strings.Builder
	eol := firstEOL(lines)
	for _, text := range bannerLines(outName, srcName) {
		builder.WriteString(text)
		builder.WriteString(eol)
	}
	for i, ln := range lines {
		for _, out := range c.transform(i+1, ln) {
			builder.WriteString(out.text)
			builder.WriteString(out.eol)
		}
	}
	return []byte(builder.String()), report
}

// firstEOL picks the terminator style for inserted banner lines: whatever
// the file itself uses, or "\n" when it cannot be told.
func firstEOL(lines []srcLine) string {
	for _, ln := range lines {
		if ln.eol != "" {
			return ln.eol
		}
	}
	return "\n"
}

func bannerLines(outName, srcName string) []string {
	return []string{
		fmt.Sprintf("%s %s (auto-generated)", markerPrefix, outName),
		"// DO NOT EDIT THIS FILE DIRECTLY.",
		fmt.Sprintf("// Edit %s and re-run keil2sdcc instead.", srcName),
		"",
	}
}
