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
	"os"
	"runtime"

	"modernc.org/cc/v4"
)

// checkPrologue maps the SDCC storage extensions onto constructs a hosted C
// parser accepts. __SDCC__ is defined so the header's own compatibility
// block activates and resolves the Keil memory-class keywords.
const checkPrologue = `#define __SDCC__ 1
#define __data
#define __idata
#define __xdata
#define __pdata
#define __code
#define __at(addr)
#define __sfr volatile unsigned char
#define __sfr16 volatile unsigned short
#define __sbit volatile _Bool
#define __bit _Bool
#define bit _Bool
`

// checkHeader parses a converted header as C and reports whether every
// declaration survived the rewrite in a form a compiler will take.
func checkHeader(path string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cfg, err := cc.NewConfig(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	ast, err := cc.Parse(cfg, []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
		{Name: "<prologue>", Value: checkPrologue},
		{Name: path, Value: f},
	})
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	count := 0
	for tu := ast.TranslationUnit; tu != nil; tu = tu.TranslationUnit {
		d := tu.ExternalDeclaration
		if d == nil || d.Position().Filename != path {
			continue
		}
		count++
		if verbose {
			fmt.Fprintf(os.Stderr, "[INFO]   declaration at line %d\n", d.Position().Line)
		}
	}
	fmt.Fprintf(os.Stderr, "[INFO] %s: syntax OK, %d declarations\n", path, count)
	return nil
}
