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
	"regexp"
	"strconv"
	"strings"
)

// rewritePlainReg emits the SDCC form of a one-byte register declaration.
// The address digits are kept at their written width, case-normalized.
func rewritePlainReg(d declaration) string {
	return fmt.Sprintf("%s__sfr __at (0x%s) %s;%s", d.Indent, strings.ToUpper(d.AddrHex), d.Name, d.Comment)
}

// rewriteWideReg emits the SDCC form of a two-byte register pair. The pair
// occupies consecutive addresses with the nominal name bound to the lower
// one, so the combined little-endian word address is ((LL+1)<<8)|LL.
func rewriteWideReg(d declaration) string {
	addr := parseHex(d.AddrHex)
	word := ((addr + 1) << 8) | addr
	return fmt.Sprintf("%s__sfr16 __at (0x%04X) %s;%s", d.Indent, word, d.Name, d.Comment)
}

// rewriteBitAlias emits the SDCC form of a bit declaration, resolving the
// bit address against the register table. Returns false when the base
// register is unknown; the caller must then pass the line through unchanged.
func rewriteBitAlias(d declaration, table map[string]int) (string, bool) {
	base, ok := table[d.Base]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s__sbit __at (0x%02X) %s;%s", d.Indent, base+d.Bit, d.Name, d.Comment), true
}

// rewriteExternAbs emits the SDCC form of an absolute external declaration.
// The type tokens are re-emitted verbatim; the address may be any width.
func rewriteExternAbs(d declaration) string {
	return fmt.Sprintf("%sextern %s __at (0x%s) %s;%s", d.Indent, d.TypeText, strings.ToUpper(d.AddrHex), d.Name, d.Comment)
}

// parseHex parses hex digits already validated by a classifier pattern.
func parseHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// Compatibility rewrites for lines outside the four declaration forms. Both
// are gated by CompatOptions and leave trailing comments untouched.
var (
	bitKeywordRe     = regexp.MustCompile(`\bbit\b`)
	typedefKeywordRe = regexp.MustCompile(`\b(?:data|idata|xdata|pdata|code)\b`)
	spaceRunRe       = regexp.MustCompile(`\s+`)
)

// splitLineComment splits a line at the first "//". The comment part keeps
// its "//" prefix; whitespace before it stays with the code part.
func splitLineComment(line string) (code, comment string) {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}

// rewriteBitKeyword replaces the standalone Keil 'bit' keyword with '__bit'
// in the code part of a line. Comment text is never rewritten.
func rewriteBitKeyword(line string) (string, bool) {
	code, comment := splitLineComment(line)
	if !bitKeywordRe.MatchString(code) {
		return line, false
	}
	return bitKeywordRe.ReplaceAllString(code, "__bit") + comment, true
}

// stripTypedefSpaces removes memory-class keywords from a typedef line, for
// example "typedef unsigned char xdata UINT8X;" becomes
// "typedef unsigned char UINT8X;". Interior whitespace collapses to single
// spaces; the indent and any trailing comment survive.
func stripTypedefSpaces(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "typedef") {
		return line, false
	}
	indent := line[:len(line)-len(trimmed)]
	code, comment := splitLineComment(trimmed)
	if !typedefKeywordRe.MatchString(code) {
		return line, false
	}
	code = typedefKeywordRe.ReplaceAllString(code, "")
	code = strings.TrimRight(spaceRunRe.ReplaceAllString(code, " "), " ")
	if comment != "" {
		comment = " " + comment
	}
	return indent + code + comment, true
}
