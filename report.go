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
	"io"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/term"
)

const (
	ansiYellow = "\x1b[1;33m"
	ansiReset  = "\x1b[0m"
)

// unresolvedBit records an sbit alias whose base register never appeared as
// an sfr declaration, so no absolute bit address could be computed.
type unresolvedBit struct {
	Line int // 1-based line in the source header
	Name string
	Base string
}

// Report collects everything one conversion run learned: the register table
// from the first pass, per-kind rewrite counts, and the lines that need a
// human to look at them.
type Report struct {
	SourceName string
	Table      map[string]int
	PlainRegs  int
	WideRegs   int
	BitAliases int
	Externs    int
	Compat     int
	Unresolved []unresolvedBit
	Duplicates []duplicateReg
}

// Print writes warnings and the run summary to w. Warnings use the
// file:line:severity form compilers emit so editors can jump straight to
// the offending declaration. Color is applied only when w is a terminal.
func (r *Report) Print(w io.Writer, verbose bool) {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}

	for _, d := range r.Duplicates {
		r.warnf(w, styled, d.Line, "register %s redeclared, 0x%02X overrides 0x%02X", d.Name, d.Addr, d.PrevAddr)
	}
	for _, u := range r.Unresolved {
		r.warnf(w, styled, u.Line, "sbit %s: unknown base register %s, line left unchanged", u.Name, u.Base)
	}

	if verbose {
		names := lo.Keys(r.Table)
		sort.Strings(names)
		fmt.Fprintf(w, "[INFO] register table (%d entries):\n", len(names))
		for _, name := range names {
			fmt.Fprintf(w, "[INFO]   0x%02X  %s\n", r.Table[name], name)
		}
	}

	fmt.Fprintf(w, "[INFO] converted %d sfr, %d sfr16, %d sbit, %d extern declarations\n",
		r.PlainRegs, r.WideRegs, r.BitAliases, r.Externs)
	if r.Compat > 0 {
		fmt.Fprintf(w, "[INFO] applied %d compatibility rewrites\n", r.Compat)
	}
	if len(r.Unresolved) > 0 {
		bases := lo.Uniq(lo.Map(r.Unresolved, func(u unresolvedBit, _ int) string { return u.Base }))
		fmt.Fprintf(w, "[INFO] %d bit aliases unresolved (unknown bases: %s)\n",
			len(r.Unresolved), strings.Join(bases, ", "))
	}
}

func (r *Report) warnf(w io.Writer, styled bool, line int, format string, args ...any) {
	tag := "warning:"
	if styled {
		tag = ansiYellow + tag + ansiReset
	}
	fmt.Fprintf(w, "%s:%d: %s %s\n", r.SourceName, line, tag, fmt.Sprintf(format, args...))
}
