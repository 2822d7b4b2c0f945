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

import "regexp"

// lineKind tags a source line with the declaration form it matches.
type lineKind int

const (
	lineUnclassified lineKind = iota
	lineWideReg
	linePlainReg
	lineBitAlias
	lineExternAbs
)

func (k lineKind) String() string {
	switch k {
	case lineWideReg:
		return "sfr16"
	case linePlainReg:
		return "sfr"
	case lineBitAlias:
		return "sbit"
	case lineExternAbs:
		return "extern"
	default:
		return "unclassified"
	}
}

// Keil declaration patterns. The trailing group captures everything after
// the terminating semicolon, usually an inline comment, so rewriters can
// re-emit it byte-for-byte.
var (
	// Match "sfr16 NAME = 0xLL;" (two-byte register pair, low byte given)
	sfr16Re = regexp.MustCompile(`^(\s*)sfr16\s+(\w+)\s*=\s*0x([0-9A-Fa-f]+);(.*)$`)
	// Match "sfr NAME = 0xHH;" (one-byte special function register)
	sfrRe = regexp.MustCompile(`^(\s*)sfr\s+(\w+)\s*=\s*0x([0-9A-Fa-f]+);(.*)$`)
	// Match "sbit NAME = REG^b;" (single bit of a bit-addressable register)
	sbitRe = regexp.MustCompile(`^(\s*)sbit\s+(\w+)\s*=\s*(\w+)\s*\^\s*([0-7]);(.*)$`)
	// Match "EXTERN TYPE... NAME _AT_ 0xADDR;" (absolute external object)
	externRe = regexp.MustCompile(`^(\s*)EXTERN\s+(.+?)\s+(\w+)\s+_AT_\s+0x([0-9A-Fa-f]+);(.*)$`)
)

// declaration is one classified source line with its captured fields. Fields
// that do not apply to the kind are left zero.
type declaration struct {
	Kind     lineKind
	Indent   string
	Name     string
	AddrHex  string // address digits as written, without the 0x prefix
	Base     string // bit-alias base register name
	Bit      int    // bit-alias index, 0-7
	TypeText string // extern type tokens, verbatim
	Comment  string // trailing text after the semicolon, byte-preserved
}

// classifyLine matches a line against the declaration forms in precedence
// order and returns the first match. Lines matching nothing come back as
// lineUnclassified and must never be mutated.
func classifyLine(line string) declaration {
	if m := sfr16Re.FindStringSubmatch(line); m != nil {
		return declaration{Kind: lineWideReg, Indent: m[1], Name: m[2], AddrHex: m[3], Comment: m[4]}
	}
	if m := sfrRe.FindStringSubmatch(line); m != nil {
		return declaration{Kind: linePlainReg, Indent: m[1], Name: m[2], AddrHex: m[3], Comment: m[4]}
	}
	if m := sbitRe.FindStringSubmatch(line); m != nil {
		return declaration{Kind: lineBitAlias, Indent: m[1], Name: m[2], Base: m[3], Bit: int(m[4][0] - '0'), Comment: m[5]}
	}
	if m := externRe.FindStringSubmatch(line); m != nil {
		return declaration{Kind: lineExternAbs, Indent: m[1], TypeText: m[2], Name: m[3], AddrHex: m[4], Comment: m[5]}
	}
	return declaration{Kind: lineUnclassified}
}
