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

	"github.com/spf13/cobra"
)

var verbose bool

// convertArgs accepts no positional arguments (regenerate the profile's
// primary header in place from its backup) or exactly two (explicit input
// and output paths).
func convertArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts no arguments or exactly 2, received %d", len(args))
	}
	return nil
}

var command = &cobra.Command{
	Use:   "keil2sdcc [input output]",
	Short: "rewrite Keil C51 register headers for SDCC",
	Args:  convertArgs,
	Run: func(cmd *cobra.Command, args []string) {
		prof := defaultProfile()
		if path, _ := cmd.PersistentFlags().GetString("profile"); path != "" {
			var err error
			if prof, err = loadProfile(path); err != nil {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		if on, _ := cmd.PersistentFlags().GetBool("compat-bit"); on {
			prof.Compat.BitKeyword = true
		}
		if on, _ := cmd.PersistentFlags().GetBool("compat-typedefs"); on {
			prof.Compat.StripTypedefSpaces = true
		}

		var err error
		if len(args) == 2 {
			err = runExplicit(args[0], args[1], prof, verbose)
		} else {
			dir, _ := cmd.PersistentFlags().GetString("dir")
			err = runBackup(dir, prof, verbose)
		}
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var checkCommand = &cobra.Command{
	Use:   "check header",
	Short: "parse a converted header as C to validate the rewrite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkHeader(args[0], verbose); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	command.PersistentFlags().StringP("profile", "p", "", "YAML chip profile overriding the built-in CH559 defaults")
	command.PersistentFlags().StringP("dir", "C", ".", "directory holding the primary header (used when no paths are given)")
	command.PersistentFlags().Bool("compat-bit", false, "rewrite bare bit declarations to __bit")
	command.PersistentFlags().Bool("compat-typedefs", false, "strip Keil memory-class keywords from typedef lines")
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "if set, increase verbosity level")
	command.AddCommand(checkCommand)
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
