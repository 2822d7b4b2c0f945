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

// duplicateReg records a register name declared more than once. The last
// declaration wins; earlier addresses are kept only for the diagnostic.
type duplicateReg struct {
	Name     string
	Line     int // 1-based line of the redeclaration
	PrevAddr int
	Addr     int
}

// buildRegisterTable scans the whole file for plain-register declarations
// and maps each name to its byte address. Only the plain form enters the
// table: a 16-bit pair is not bit-addressable, so sfr16 names are skipped.
// A file with no matches yields an empty table, never an error. When a name
// recurs, the later address overwrites the earlier one and the collision is
// reported, preserving the tolerance vendor headers rely on.
func buildRegisterTable(lines []srcLine) (map[string]int, []duplicateReg) {
	table := make(map[string]int)
	var dups []duplicateReg
	for i, ln := range lines {
		d := classifyLine(ln.text)
		if d.Kind != linePlainReg {
			continue
		}
		addr := parseHex(d.AddrHex)
		if prev, seen := table[d.Name]; seen {
			dups = append(dups, duplicateReg{Name: d.Name, Line: i + 1, PrevAddr: prev, Addr: addr})
		}
		table[d.Name] = addr
	}
	return table, dups
}
