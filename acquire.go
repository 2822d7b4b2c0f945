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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

const filePerm = 0o644

// isConverted reports whether data was produced by a previous run. Generated
// headers are never valid conversion input: running the rewrite twice would
// stack banners and macro blocks.
func isConverted(data []byte) bool {
	return bytes.Contains(data, []byte(markerPrefix))
}

func refuseConverted(path string) error {
	return fmt.Errorf("%s already carries the %q marker, refusing to convert a generated file", path, markerPrefix)
}

// runExplicit converts input into output. Both paths are taken as given; no
// renaming happens in this mode.
func runExplicit(input, output string, prof Profile, verbose bool) error {
	if filepath.Clean(input) == filepath.Clean(output) {
		return fmt.Errorf("input and output are the same file, run without arguments to convert in place")
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if isConverted(data) {
		return refuseConverted(input)
	}

	out, report := Convert(data, filepath.Base(output), filepath.Base(input), prof)
	if err := os.WriteFile(output, out, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	report.Print(os.Stderr, verbose)
	fmt.Fprintf(os.Stderr, "[INFO] wrote %s\n", output)
	return nil
}

// runBackup regenerates the profile's primary header from its backup copy
// inside dir. On the first run the vendor file is moved aside to the backup
// name and the primary is generated in its place; after that the backup is
// the only source of truth and the primary can always be rebuilt from it.
func runBackup(dir string, prof Profile, verbose bool) error {
	primary := filepath.Join(dir, prof.Primary)
	backup := filepath.Join(dir, prof.Backup())

	if _, err := os.Stat(backup); errors.Is(err, fs.ErrNotExist) {
		data, err := os.ReadFile(primary)
		if err != nil {
			return fmt.Errorf("no %s and no %s: %w", prof.Backup(), prof.Primary, err)
		}
		if isConverted(data) {
			return fmt.Errorf("%s is already converted and no %s backup exists, restore the vendor header first", primary, prof.Backup())
		}
		if err := os.Rename(primary, backup); err != nil {
			return fmt.Errorf("preserving original: %w", err)
		}
		fmt.Fprintf(os.Stderr, "[INFO] renamed %s -> %s\n", primary, backup)
	} else if err != nil {
		return fmt.Errorf("checking %s: %w", backup, err)
	}

	src, err := os.ReadFile(backup)
	if err != nil {
		return fmt.Errorf("reading %s: %w", backup, err)
	}
	if isConverted(src) {
		return refuseConverted(backup)
	}

	out, report := Convert(src, prof.Primary, prof.Backup(), prof)

	// Skip the write when the primary already matches, so repeated runs do
	// not touch its mtime and trip build systems into rebuilding.
	if prev, err := os.ReadFile(primary); err == nil && xxhash.Sum64(prev) == xxhash.Sum64(out) {
		report.Print(os.Stderr, verbose)
		fmt.Fprintf(os.Stderr, "[INFO] %s already up to date\n", primary)
		return nil
	}

	if err := os.WriteFile(primary, out, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", primary, err)
	}

	report.Print(os.Stderr, verbose)
	fmt.Fprintf(os.Stderr, "[INFO] wrote %s\n", primary)
	return nil
}
